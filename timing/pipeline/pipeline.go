// Package pipeline implements the stall-only, five-stage BatBridge
// pipelined execution variant (spec.md §4.7/§4.9/§4.10): fetch, decode,
// execute, and writeback run in reverse order each tick over the shared
// emu.State latches, with a hazard unit replacing execute results with
// bubbles when a stall is required. There is no forwarding network and
// no instruction fusion — both present in the teacher's pipeline but not
// called for anywhere in this instruction set.
package pipeline

import "github.com/sarchlab/batbridge/emu"

// Pipeline is the stall-only five-stage driver (spec.md §4.9/§4.10):
// each Step runs the shared emu stages in reverse order — writeback,
// execute, decode, fetch — so that a stage never reads a latch another
// stage is about to overwrite in the same step. Grounded on the
// teacher's tickSingleIssue reverse-stage-order pattern in
// timing/pipeline/pipeline.go, with the forwarding network and
// CMP+branch instruction fusion dropped (see DESIGN.md).
type Pipeline struct {
	State  *emu.State
	hazard HazardUnit
}

// New constructs a pipelined driver over the given state.
func New(s *emu.State) *Pipeline {
	return &Pipeline{State: s}
}

// Step runs one pipeline cycle. The hazard check is evaluated first,
// against the execute result that is about to be written back and the
// decode result about to move into execute. On a hazard (and no branch
// flush) execute, decode and fetch all sit out this cycle.
func (p *Pipeline) Step() error {
	s := p.State
	stall := p.hazard.Detect(s)

	branched := emu.Writeback(s)
	if branched {
		stall = false
	}

	if stall {
		s.Execute.Clear()
	} else if err := emu.Execute(s); err != nil {
		return err
	}

	if !stall {
		emu.Decode(s)
	}
	if !stall {
		emu.Fetch(s)
	}

	emu.StallDec(s)
	return nil
}

// Halted reports whether the underlying state has executed hlt.
func (p *Pipeline) Halted() bool { return p.State.Halted }
