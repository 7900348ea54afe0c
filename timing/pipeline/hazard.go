package pipeline

import (
	"github.com/sarchlab/batbridge/emu"
	"github.com/sarchlab/batbridge/insts"
)

// HazardUnit implements spec.md §4.7's single stall predicate: a hazard
// exists iff the pending execute result writes a register the currently
// decoded instruction reads as a or b (excluding the IMM/ZERO aliases,
// which never carry a producer/consumer dependency). There is no
// forwarding path — grounded on the teacher's timing/pipeline/hazard.go
// HazardUnit/StallResult shape, stripped of every DetectForwarding/
// GetForwardedValue method, since spec.md is explicit that a hazard is
// always resolved by stalling, never by forwarding a value early.
type HazardUnit struct{}

// Detect reports whether s's currently latched execute result and
// decode result have a register dependency that must stall.
func (HazardUnit) Detect(s *emu.State) bool {
	if !s.Execute.Valid || s.Execute.Cmd.Dst != emu.DstRegisters {
		return false
	}
	if !s.Decode.Valid {
		return false
	}

	addr := uint8(s.Execute.Cmd.Addr)
	if addr == insts.RegIMM || addr == insts.RegZERO {
		return false
	}

	inst := s.Decode.Inst
	return inst.A == addr || inst.B == addr
}
