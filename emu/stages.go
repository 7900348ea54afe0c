package emu

import "github.com/sarchlab/batbridge/insts"

// Fetch is the shared fetch stage (spec.md §4.5). When halted it emits
// the canonical no-op and makes no other state change; while stalled it
// bubbles (emits nothing, does not advance PC); otherwise it loads the
// word at registers[PC], emits fetch.result, and advances PC.
func Fetch(s *State) {
	if s.Halted {
		pc := uint32(s.Regs.Read(insts.RegPC))
		s.Fetch = FetchLatch{Valid: true, Blob: insts.Word(insts.NoOp), PC: pc, NPC: pc + 4}
		return
	}
	if s.FetchStall > 0 {
		s.Fetch.Clear()
		return
	}

	pc := uint32(s.Regs.Read(insts.RegPC))
	npc := pc + 4
	blob := s.Mem.Read(pc)
	s.Fetch = FetchLatch{Valid: true, Blob: insts.Word(uint32(blob)), PC: pc, NPC: npc}
	s.Regs.Write(insts.RegPC, int32(npc))
}

// bubbleInst is the decoded form of the canonical no-op (spec.md §3),
// used whenever a stage needs a latched value but has nothing real to
// decode (a nil blob, or a stalled/flushed cycle).
func bubbleInst(pc, npc uint32) *insts.Instruction {
	return &insts.Instruction{
		Op: insts.OpAdd, D: insts.RegZERO, A: insts.RegZERO, B: insts.RegZERO,
		PC: pc, NPC: npc,
	}
}

// Decode is the shared single-cycle decode stage (spec.md §4.6). It
// drains the pending macro-op queue before consuming a fresh fetch
// result, expands push/pop into their two-instruction form, and
// back-pressures fetch via FetchStall by (expansion_count-1).
func Decode(s *State) {
	if len(s.PendingOps) > 0 {
		s.Decode = DecodeLatch{Valid: true, Inst: s.PopPendingOp()}
		return
	}

	if !s.Fetch.Valid {
		s.Decode.Clear()
		return
	}

	inst, err := insts.Decode(s.Fetch.Blob)
	if err != nil {
		inst = bubbleInst(s.Fetch.PC, s.Fetch.NPC)
	} else if inst == nil {
		inst = bubbleInst(s.Fetch.PC, s.Fetch.NPC)
	} else {
		inst.PC, inst.NPC = s.Fetch.PC, s.Fetch.NPC
	}

	if inst.Op.IsMacro() {
		micro := expandMacro(inst)
		for _, m := range micro {
			m.PC, m.NPC = inst.PC, inst.NPC
		}
		s.PendingOps = append(s.PendingOps, micro[1:]...)
		s.FetchStall += uint32(len(micro) - 1)
		s.Decode = DecodeLatch{Valid: true, Inst: micro[0]}
	} else {
		s.Decode = DecodeLatch{Valid: true, Inst: inst}
	}

	s.Fetch.Clear()
}

// maxRegIndex picks whichever of an instruction's register fields is
// out of range, for InvalidRegister's error message.
func maxRegIndex(d, a, b uint8) uint8 {
	idx := d
	if a > idx {
		idx = a
	}
	if b > idx {
		idx = b
	}
	return idx
}

// Execute is the shared execute stage (spec.md §4.8): resolve operands,
// dispatch to the opcode semantic function, and latch the resulting
// writeback command. Returns a fatal error (InvalidOpcode,
// ArithmeticTrap) if the opcode's semantic function fails.
func Execute(s *State) error {
	if !s.Decode.Valid {
		s.Execute.Clear()
		return nil
	}

	inst := s.Decode.Inst
	if inst.D > 31 || inst.A > 31 || inst.B > 31 {
		return &InvalidRegister{Index: maxRegIndex(inst.D, inst.A, inst.B)}
	}

	x := s.Regs.ReadOperand(inst.A, inst.PC, inst.I)
	y := s.Regs.ReadOperand(inst.B, inst.PC, inst.I)

	cmd, err := execute(s, inst, x, y)
	if err != nil {
		return err
	}

	s.Execute = ExecuteLatch{Valid: true, Cmd: cmd, PC: inst.PC, NPC: inst.NPC}
	s.Decode.Clear()
	return nil
}

// Writeback is the shared writeback stage (spec.md §4.9) used by the
// single-cycle and plain pipelined drivers: it always flushes fetch and
// decode on a PC branch. The predicted variant uses its own writeback
// wrapper (timing/predicted) that only flushes on misprediction.
func Writeback(s *State) (branched bool) {
	if !s.Execute.Valid {
		return false
	}
	cmd := s.Execute.Cmd

	switch cmd.Dst {
	case DstHalt:
		s.Halted = true
	case DstMemory:
		s.Mem.Write(cmd.Addr, cmd.Val)
	case DstRegisters:
		switch uint8(cmd.Addr) {
		case insts.RegZERO:
			if cmd.Val != 0 {
				s.Sink.WriteChar(byte(cmd.Val))
			}
		case insts.RegIMM:
			if cmd.Val != 0 {
				s.Sink.WriteHex(cmd.Val)
			}
		case insts.RegPC:
			s.Regs.Write(insts.RegPC, int32(Normalize(uint32(cmd.Val))))
			branched = true
		default:
			s.Regs.Write(uint8(cmd.Addr), cmd.Val)
		}
	}

	flushPC := s.Execute.PC
	s.Execute.Clear()
	if branched {
		s.Events.Emit("flush", map[string]any{"pc": flushPC, "target": cmd.Val})
		s.Fetch.Clear()
		s.Decode.Clear()
	}
	return branched
}

// StallDec decrements the fetch stall counter at the end of a pipelined
// step (spec.md §4.10's "stall-dec").
func StallDec(s *State) {
	if s.FetchStall > 0 {
		s.FetchStall--
	}
}
