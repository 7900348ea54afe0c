// Package predicted implements the GShare-predicted pipeline variant
// (spec.md §4.5, §4.11): the same stall-only five-stage discipline as
// timing/pipeline, except fetch consults the predictor to choose its
// speculative next pc instead of always assuming pc+4, and writeback
// only flushes on an actual misprediction, retraining the predictor
// either way. Grounded on timing/pipeline.Pipeline's reverse-stage-order
// Step, reused here via the shared emu stage functions for decode,
// execute, and the non-branch-writeback paths.
package predicted

import (
	"github.com/sarchlab/batbridge/emu"
	"github.com/sarchlab/batbridge/insts"
	"github.com/sarchlab/batbridge/timing/pipeline"
	"github.com/sarchlab/batbridge/timing/predictor"
)

// Pipeline is the predicted five-stage driver.
type Pipeline struct {
	State     *emu.State
	Predictor *predictor.GShare
	hazard    pipeline.HazardUnit
}

// New constructs a predicted driver over the given state and predictor.
func New(s *emu.State, p *predictor.GShare) *Pipeline {
	return &Pipeline{State: s, Predictor: p}
}

// fetch is fetch's speculative variant: it consults the predictor for
// the pc about to be fetched and latches the PREDICTED npc (rather than
// the unconditional pc+4 the base variant uses) so that writeback can
// compare the actually-observed branch target against what fetch
// actually committed to.
func (p *Pipeline) fetch() {
	s := p.State
	if s.Halted {
		pc := uint32(s.Regs.Read(insts.RegPC))
		s.Fetch = emu.FetchLatch{Valid: true, Blob: insts.Word(insts.NoOp), PC: pc, NPC: pc + 4}
		return
	}
	if s.FetchStall > 0 {
		s.Fetch.Clear()
		return
	}

	pc := uint32(s.Regs.Read(insts.RegPC))
	blob := s.Mem.Read(pc)

	pred := p.Predictor.Predict(pc)
	npc := pred.Target

	s.Fetch = emu.FetchLatch{Valid: true, Blob: insts.Word(uint32(blob)), PC: pc, NPC: npc}
	s.Regs.Write(insts.RegPC, int32(npc))
}

// writeback mirrors emu.Writeback for every destination except a PC
// write, where it applies the predicted-pipeline's correct/mispredict
// hooks (spec.md §4.11) instead of the base variant's unconditional
// flush.
func (p *Pipeline) writeback() (branched bool) {
	s := p.State
	if !s.Execute.Valid {
		return false
	}
	cmd := s.Execute.Cmd

	if cmd.Dst == emu.DstRegisters && uint8(cmd.Addr) == insts.RegPC {
		pc := s.Execute.PC
		predictedNPC := s.Execute.NPC
		v := uint32(cmd.Val)
		fallthroughPC := pc + 4

		if v == fallthroughPC {
			p.Predictor.TrainNotTaken(pc)
		} else {
			p.Predictor.TrainTaken(pc, v)
		}

		// On a correct prediction fetch has already moved past v, so PC
		// is only redirected (and the pipeline flushed) on a mispredict.
		if v != predictedNPC {
			s.Regs.Write(insts.RegPC, int32(emu.Normalize(v)))
			s.Events.Emit("mispredict", map[string]any{"pc": pc, "predicted": predictedNPC, "actual": v})
			s.Fetch.Clear()
			s.Decode.Clear()
			branched = true
		}

		s.Execute.Clear()
		return branched
	}

	return emu.Writeback(s)
}

// Step runs one predicted-pipeline cycle: writeback, execute, decode,
// speculative fetch, stall-dec — the same reverse order as the base
// pipeline (see timing/pipeline.Pipeline.Step for why).
func (p *Pipeline) Step() error {
	s := p.State
	stall := p.hazard.Detect(s)

	branched := p.writeback()
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
		p.fetch()
	}

	emu.StallDec(s)
	return nil
}

// Halted reports whether the underlying state has executed hlt.
func (p *Pipeline) Halted() bool { return p.State.Halted }
