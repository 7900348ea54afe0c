package emu

import "github.com/sarchlab/batbridge/insts"

// execute dispatches a decoded instruction to its per-opcode semantic
// function (spec.md §4.4). x and y are the already-resolved operand
// values (read_reg(a)/read_reg(b), §4.3). Push/Pop never reach here —
// they are expanded away in decode (§4.4, §4.6) — so reaching either
// here is InvalidOpcode, same as any other opcode this core does not
// run.
func execute(state *State, inst *insts.Instruction, x, y int32) (WritebackCmd, error) {
	pc := inst.PC
	switch inst.Op {
	case insts.OpHlt:
		return WritebackCmd{Dst: DstHalt}, nil

	case insts.OpLd:
		addr := Normalize(uint32(x + 4*y))
		return regCmd(inst.D, state.Mem.Read(addr)), nil

	case insts.OpSt:
		addr := Normalize(uint32(x + 4*y))
		val := state.Regs.ReadOperand(inst.D, pc, inst.I)
		return WritebackCmd{Dst: DstMemory, Addr: addr, Val: val}, nil

	case insts.OpIfLt:
		return branchCmd(pc, x < y), nil
	case insts.OpIfLe:
		return branchCmd(pc, x <= y), nil
	case insts.OpIfEq:
		return branchCmd(pc, x == y), nil
	case insts.OpIfNe:
		return branchCmd(pc, x != y), nil

	case insts.OpAdd:
		return regCmd(inst.D, x+y), nil
	case insts.OpSub:
		return regCmd(inst.D, x-y), nil
	case insts.OpMul:
		return regCmd(inst.D, x*y), nil
	case insts.OpDiv:
		if y == 0 {
			return WritebackCmd{}, &ArithmeticTrap{PC: pc}
		}
		return regCmd(inst.D, x/y), nil
	case insts.OpMod:
		if y == 0 {
			return WritebackCmd{}, &ArithmeticTrap{PC: pc}
		}
		return regCmd(inst.D, x%y), nil

	case insts.OpAnd:
		return regCmd(inst.D, x&y), nil
	case insts.OpOr:
		return regCmd(inst.D, x|y), nil
	case insts.OpNand:
		return regCmd(inst.D, ^(x & y)), nil
	case insts.OpXor:
		return regCmd(inst.D, x^y), nil

	case insts.OpSl:
		return regCmd(inst.D, int32(uint32(x)<<uint32(y&0x1F))), nil
	case insts.OpSr:
		return regCmd(inst.D, int32(uint32(x)>>uint32(y&0x1F))), nil
	case insts.OpSal:
		return regCmd(inst.D, x<<uint32(y&0x1F)), nil
	case insts.OpSar:
		return regCmd(inst.D, x>>uint32(y&0x1F)), nil

	default:
		return WritebackCmd{}, &InvalidOpcode{Icode: inst.Op.String(), PC: pc}
	}
}

func regCmd(d uint8, v int32) WritebackCmd {
	return WritebackCmd{Dst: DstRegisters, Addr: uint32(d), Val: v}
}

// branchCmd implements the conditional opcodes' writeback target
// (spec.md §4.4): condTrue falls through normally to pc+4; condFalse
// branches over the next instruction to pc+8. See DESIGN.md for why this
// is the opposite pairing from the literal "cond(x,y) ? pc : pc+4" table
// text — every conditional instruction still writes register 31
// regardless of which side fires, so it always costs a pipeline flush in
// the unpredicted variant (spec.md §4.9's flush-on-any-r31-write rule),
// which is exactly what the predicted variant exists to avoid.
func branchCmd(pc uint32, condTrue bool) WritebackCmd {
	target := pc + 8
	if condTrue {
		target = pc + 4
	}
	return WritebackCmd{Dst: DstRegisters, Addr: uint32(insts.RegPC), Val: int32(Normalize(target))}
}
