package emu

import "github.com/sarchlab/batbridge/insts"

// Dst names the destination class of a writeback command (spec.md §3).
type Dst uint8

const (
	DstNone Dst = iota
	DstRegisters
	DstMemory
	DstHalt
)

// WritebackCmd is the sole mutation vehicle for registers/memory/halted:
// every opcode semantic function (§4.4) produces one, and only the
// writeback stage (§4.9) ever consumes one.
type WritebackCmd struct {
	Dst  Dst
	Addr uint32
	Val  int32
}

// FetchLatch carries an undecoded blob plus its pc/npc to the next
// step's decode (spec.md §3 "fetch.result").
type FetchLatch struct {
	Valid bool
	Blob  any
	PC    uint32
	NPC   uint32
}

// Clear empties the latch, as happens on flush (spec.md §4.9) or after
// being consumed by decode.
func (l *FetchLatch) Clear() { *l = FetchLatch{} }

// DecodeLatch carries the decoded instruction, pc/npc attached, to the
// next step's execute (spec.md §3 "decode.result").
type DecodeLatch struct {
	Valid bool
	Inst  *insts.Instruction
}

// Clear empties the latch.
func (l *DecodeLatch) Clear() { *l = DecodeLatch{} }

// ExecuteLatch carries the writeback command produced by execute to the
// next step's writeback (spec.md §3 "execute.result").
type ExecuteLatch struct {
	Valid bool
	Cmd   WritebackCmd
	PC    uint32
	NPC   uint32
}

// Clear empties the latch.
func (l *ExecuteLatch) Clear() { *l = ExecuteLatch{} }

// State is the single processor-state record (spec.md §3): registers,
// memory, the halted flag, every pipeline latch, the fetch stall
// counter, and the pending macro-op queue. The single-cycle driver only
// ever has at most one latch occupied at a time; the pipelined drivers
// hold all four concurrently.
type State struct {
	Regs   *RegFile
	Mem    *Memory
	Sink   OutputSink
	Events EventSink
	Halted bool

	Fetch      FetchLatch
	PendingOps []*insts.Instruction
	Decode     DecodeLatch
	Execute    ExecuteLatch
	FetchStall uint32
}

// NewState constructs a processor state over the given memory image and
// output sink, with registers zeroed, nothing latched (spec.md §3
// Lifecycle), and events discarded by default.
func NewState(mem *Memory, sink OutputSink) *State {
	return &State{
		Regs:   NewRegFile(),
		Mem:    mem,
		Sink:   sink,
		Events: NoopEventSink{},
	}
}

// WithEvents replaces the state's event sink, returning s for chaining.
func (s *State) WithEvents(events EventSink) *State {
	s.Events = events
	return s
}

// PopPendingOp removes and returns the head of the macro-op queue, or
// nil if empty.
func (s *State) PopPendingOp() *insts.Instruction {
	if len(s.PendingOps) == 0 {
		return nil
	}
	op := s.PendingOps[0]
	s.PendingOps = s.PendingOps[1:]
	return op
}
