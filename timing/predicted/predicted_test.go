package predicted_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/batbridge/emu"
	"github.com/sarchlab/batbridge/insts"
	"github.com/sarchlab/batbridge/timing/predicted"
	"github.com/sarchlab/batbridge/timing/predictor"
)

func TestPredicted(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Predicted Suite")
}

func word(op insts.OpCode, d, a, b uint8, i int32) int32 {
	return int32(insts.Pack(op.Value(), d, a, b, i))
}

var _ = Describe("Predicted", func() {
	var (
		mem   *emu.Memory
		sink  *emu.BufferSink
		state *emu.State
		pred  *predictor.GShare
		p     *predicted.Pipeline
	)

	BeforeEach(func() {
		mem = emu.NewMemory()
		sink = emu.NewBufferSink()
		state = emu.NewState(mem, sink)
		pred = predictor.New()
		p = predicted.New(state, pred)
	})

	Describe("a tight taken loop", func() {
		It("runs the loop to completion with the correct result", func() {
			// r0 counts down from 3 to 0, in the same conditional-skip
			// plus unconditional-jump-back idiom spec.md's own Factorial
			// scenario uses: the ifne at 8 falls through (pc+4) to the
			// jump-back at 12 while r0 != 0, and branches over it
			// (pc+8, landing on hlt at 16) once r0 == 0.
			mem.Write(0, word(insts.OpAdd, 0, insts.RegZERO, insts.RegIMM, 3))
			mem.Write(4, word(insts.OpSub, 0, 0, insts.RegIMM, 1))
			mem.Write(8, word(insts.OpIfNe, 0, 0, insts.RegZERO, 0))
			// add r_PC, r_PC, r_IMM, -12 -> registers[31] := npc(16) - 12 = 4
			mem.Write(12, word(insts.OpAdd, insts.RegPC, insts.RegPC, insts.RegIMM, -12))
			mem.Write(16, word(insts.OpHlt, 0, 0, 0, 0))

			Expect(emu.Run(p, 10000)).To(Succeed())
			Expect(state.Regs.Read(0)).To(Equal(int32(0)))
		})
	})

	Describe("a condition that is always true", func() {
		It("always falls through to pc+4 and never mispredicts away from it", func() {
			mem.Write(0, word(insts.OpIfEq, 0, insts.RegZERO, insts.RegZERO, 0))
			mem.Write(4, word(insts.OpAdd, 0, insts.RegZERO, insts.RegIMM, 42))
			mem.Write(8, word(insts.OpHlt, 0, 0, 0, 0))

			Expect(emu.Run(p, 100)).To(Succeed())
			Expect(state.Regs.Read(0)).To(Equal(int32(42)))
		})
	})
})
