package emu

import "github.com/sarchlab/batbridge/insts"

// RegFile holds the 32 architectural registers. Unlike the teacher's XZR
// special-casing (a single always-zero register), BatBridge gives three
// indices instruction-local meaning — PC, ZERO, and IMM — which is why
// reads and writes below take the executing instruction's pc/imm rather
// than being pure RegFile methods (spec.md §4.3).
type RegFile struct {
	regs [32]int32
}

// NewRegFile creates a register file with all registers zeroed.
func NewRegFile() *RegFile {
	return &RegFile{}
}

// ReadOperand resolves a source register per spec.md §4.3: idx=31 (PC)
// yields the instruction's own npc (pc+4 — by the time an instruction
// reads its own PC mid-execute, fetch has already committed to the next
// address, and every control-transfer idiom in this ISA is built on that
// value, not the raw fetch address; see DESIGN.md), idx=30 (ZERO) yields
// 0, idx=29 (IMM) yields the instruction's sign-extended immediate,
// otherwise the plain register value.
func (r *RegFile) ReadOperand(idx uint8, pc uint32, imm int32) int32 {
	switch idx {
	case insts.RegPC:
		return int32(pc + 4)
	case insts.RegZERO:
		return 0
	case insts.RegIMM:
		return imm
	default:
		return r.regs[idx&0x1F]
	}
}

// Read returns the raw architectural contents of a general-purpose
// register, bypassing the PC/ZERO/IMM instruction-local resolution. Used
// by the fetch stage to read PC, and by tests inspecting final state.
func (r *RegFile) Read(idx uint8) int32 {
	return r.regs[idx&0x1F]
}

// Write stores a value directly into a register slot; writeback is the
// only caller (spec.md §4.9) — the PC/ZERO/IMM side-channel behavior on
// write lives in the writeback stage, not here, since it depends on the
// output sink.
func (r *RegFile) Write(idx uint8, v int32) {
	r.regs[idx&0x1F] = v
}
