package emu

import "github.com/sarchlab/batbridge/insts"

// stackReg is the architectural stack-pointer register used by the
// push/pop macro expansion (spec.md §4.4). It is an ordinary
// general-purpose register, not one of the three special indices listed
// in spec.md §3 (PC/ZERO/IMM) — it is fixed by the push/pop expansion
// itself, the same way spec.md's expansion table hardcodes "r28"
// regardless of the issuing instruction's own operand fields.
const stackReg uint8 = 28

// expandMacro returns the fixed two-instruction expansion for push/pop
// (spec.md §4.4, with the Open Question resolution recorded in
// DESIGN.md: the stack pointer is always register 28, decremented/
// incremented by the literal amount 4 via the IMM-register alias trick
// used throughout this ISA for injecting instruction-local immediates).
// inst.D is the value register carried through from the issuing push/pop
// instruction; inst.A/inst.B are not used by this canonical expansion.
func expandMacro(inst *insts.Instruction) []*insts.Instruction {
	switch inst.Op {
	case insts.OpPush:
		return []*insts.Instruction{
			// sub r28, r28, r_IMM, 4  =>  r28 -= 4
			{Op: insts.OpSub, D: stackReg, A: stackReg, B: insts.RegIMM, I: 4},
			// st  d,   r28, r_ZERO, 0 =>  mem[r28] = reg[d]
			{Op: insts.OpSt, D: inst.D, A: stackReg, B: insts.RegZERO, I: 0},
		}
	case insts.OpPop:
		return []*insts.Instruction{
			// ld  d,   r28, r_ZERO, 0 =>  reg[d] = mem[r28]
			{Op: insts.OpLd, D: inst.D, A: stackReg, B: insts.RegZERO, I: 0},
			// add r28, r28, r_IMM, 4  =>  r28 += 4
			{Op: insts.OpAdd, D: stackReg, A: stackReg, B: insts.RegIMM, I: 4},
		}
	default:
		return nil
	}
}
