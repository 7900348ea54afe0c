package emu_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/batbridge/emu"
	"github.com/sarchlab/batbridge/insts"
)

func TestEmu(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Emu Suite")
}

func wordOf(op insts.OpCode, d, a, b uint8, i int32) insts.Word {
	return insts.Pack(op.Value(), d, a, b, i)
}

var _ = Describe("SingleCycle", func() {
	var (
		mem   *emu.Memory
		sink  *emu.BufferSink
		state *emu.State
		core  *emu.SingleCycle
	)

	BeforeEach(func() {
		mem = emu.NewMemory()
		sink = emu.NewBufferSink()
		state = emu.NewState(mem, sink)
		core = emu.NewSingleCycle(state)
	})

	Describe("arithmetic", func() {
		It("adds an immediate injected through the r_IMM alias", func() {
			mem.Write(0, int32(wordOf(insts.OpAdd, 0, insts.RegZERO, insts.RegIMM, 14)))
			mem.Write(4, int32(wordOf(insts.OpHlt, 0, 0, 0, 0)))

			Expect(emu.Run(core, 100)).To(Succeed())
			Expect(state.Regs.Read(0)).To(Equal(int32(14)))
			Expect(state.Halted).To(BeTrue())
		})

		It("traps on division by zero", func() {
			mem.Write(0, int32(wordOf(insts.OpDiv, 0, insts.RegZERO, insts.RegZERO, 0)))

			err := emu.Run(core, 100)
			Expect(err).To(HaveOccurred())
			var trap *emu.ArithmeticTrap
			Expect(err).To(BeAssignableToTypeOf(trap))
		})

		It("rejects an out-of-range register field rather than masking it", func() {
			// No program image can produce this directly (word-form fields
			// are bit-masked to 0..31 by the codec, and insts.Decode now
			// rejects out-of-range vector-form indices before they reach
			// here); latch it straight into decode.result to exercise
			// Execute's own defense-in-depth check.
			state.Decode.Valid = true
			state.Decode.Inst = &insts.Instruction{Op: insts.OpAdd, D: 40, A: insts.RegZERO, B: insts.RegZERO}

			err := emu.Execute(state)
			Expect(err).To(HaveOccurred())
			var bad *emu.InvalidRegister
			Expect(err).To(BeAssignableToTypeOf(bad))
		})
	})

	Describe("branching", func() {
		It("branches over the next instruction when the condition is false", func() {
			// ifne r_ZERO r_ZERO 0 -> 0 != 0 is false, so this skips the
			// instruction at 4 and lands directly on the hlt at 8.
			mem.Write(0, int32(wordOf(insts.OpIfNe, 0, insts.RegZERO, insts.RegZERO, 0)))
			mem.Write(4, int32(wordOf(insts.OpAdd, 0, insts.RegZERO, insts.RegIMM, 999)))
			mem.Write(8, int32(wordOf(insts.OpHlt, 0, 0, 0, 0)))

			Expect(emu.Run(core, 100)).To(Succeed())
			Expect(state.Regs.Read(0)).To(Equal(int32(0)))
		})

		It("falls through to pc+4 when the condition is true", func() {
			// ifeq r_ZERO r_ZERO 0 -> 0 == 0 is true, falls through normally.
			mem.Write(0, int32(wordOf(insts.OpIfEq, 0, insts.RegZERO, insts.RegZERO, 0)))
			mem.Write(4, int32(wordOf(insts.OpHlt, 0, 0, 0, 0)))

			Expect(core.Step()).To(Succeed())
			Expect(state.Regs.Read(insts.RegPC)).To(Equal(int32(4)))
		})
	})

	Describe("push/pop", func() {
		It("round-trips a value through the stack at register 28", func() {
			// r0 = 1000; r28 = r0 + r0 = 2000; push r0; pop r1; hlt
			mem.Write(0, int32(wordOf(insts.OpAdd, 0, insts.RegZERO, insts.RegIMM, 1000)))
			mem.Write(4, int32(wordOf(insts.OpAdd, 28, 0, 0, 0)))
			mem.Write(8, int32(wordOf(insts.OpPush, 0, 0, 0, 0)))
			mem.Write(12, int32(wordOf(insts.OpPop, 1, 0, 0, 0)))
			mem.Write(16, int32(wordOf(insts.OpHlt, 0, 0, 0, 0)))

			Expect(emu.Run(core, 100)).To(Succeed())
			Expect(state.Regs.Read(28)).To(Equal(int32(2000)))
			Expect(state.Regs.Read(1)).To(Equal(int32(1000)))
		})
	})

	Describe("output side channel", func() {
		It("emits a character on a nonzero r_ZERO write", func() {
			mem.Write(0, int32(wordOf(insts.OpAdd, insts.RegZERO, insts.RegZERO, insts.RegIMM, 65)))
			mem.Write(4, int32(wordOf(insts.OpHlt, 0, 0, 0, 0)))

			Expect(emu.Run(core, 100)).To(Succeed())
			Expect(sink.String()).To(Equal("A"))
		})
	})

	Describe("Run", func() {
		It("reports BoundReached when the program never halts", func() {
			// add r_PC, r_ZERO, r_ZERO, 0 -> registers[31] := 0, an
			// unconditional self-jump that spins forever.
			mem.Write(0, int32(wordOf(insts.OpAdd, insts.RegPC, insts.RegZERO, insts.RegZERO, 0)))
			err := emu.Run(core, 3)
			Expect(err).To(HaveOccurred())
			var bound *emu.BoundReached
			Expect(err).To(BeAssignableToTypeOf(bound))
		})
	})
})
