package pipeline_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/batbridge/emu"
	"github.com/sarchlab/batbridge/insts"
	"github.com/sarchlab/batbridge/timing/pipeline"
)

func TestPipeline(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Pipeline Suite")
}

func word(op insts.OpCode, d, a, b uint8, i int32) int32 {
	return int32(insts.Pack(op.Value(), d, a, b, i))
}

var _ = Describe("Pipeline", func() {
	var (
		mem   *emu.Memory
		sink  *emu.BufferSink
		state *emu.State
		p     *pipeline.Pipeline
	)

	BeforeEach(func() {
		mem = emu.NewMemory()
		sink = emu.NewBufferSink()
		state = emu.NewState(mem, sink)
		p = pipeline.New(state)
	})

	Describe("a program with no hazards", func() {
		It("produces the same architectural result as single-cycle", func() {
			mem.Write(0, word(insts.OpAdd, 0, insts.RegZERO, insts.RegIMM, 3))
			mem.Write(4, word(insts.OpAdd, 1, insts.RegZERO, insts.RegIMM, 4))
			mem.Write(8, word(insts.OpHlt, 0, 0, 0, 0))

			Expect(emu.Run(p, 100)).To(Succeed())
			Expect(state.Regs.Read(0)).To(Equal(int32(3)))
			Expect(state.Regs.Read(1)).To(Equal(int32(4)))
		})
	})

	Describe("a read-after-write hazard", func() {
		It("stalls decode of the dependent instruction until writeback", func() {
			mem.Write(0, word(insts.OpAdd, 0, insts.RegZERO, insts.RegIMM, 5))
			mem.Write(4, word(insts.OpAdd, 1, 0, insts.RegZERO, 0))
			mem.Write(8, word(insts.OpHlt, 0, 0, 0, 0))

			Expect(emu.Run(p, 100)).To(Succeed())
			Expect(state.Regs.Read(1)).To(Equal(int32(5)))
		})
	})

	Describe("an unconditional jump through register 31", func() {
		It("flushes the in-flight fetch and decode results, skipping the next word", func() {
			// add r_PC, r_PC, r_IMM, 4 -> registers[31] := npc + 4 = 8, a
			// jump that writes PC the same way any ordinary ALU op
			// targeting d=31 does (spec.md's "PC as a register" idiom).
			// Reading r_PC as an operand yields this instruction's own
			// npc (4), not its raw pc (0) — see DESIGN.md.
			mem.Write(0, word(insts.OpAdd, insts.RegPC, insts.RegPC, insts.RegIMM, 4))
			mem.Write(4, word(insts.OpAdd, 0, insts.RegZERO, insts.RegIMM, 999))
			mem.Write(8, word(insts.OpHlt, 0, 0, 0, 0))

			Expect(emu.Run(p, 100)).To(Succeed())
			Expect(state.Regs.Read(0)).To(Equal(int32(0)))
		})
	})
})
