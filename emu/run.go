package emu

// Stepper is satisfied by every execution variant (single-cycle,
// pipelined, predicted): one call to Step advances the machine by
// exactly one cycle (spec.md §4.10).
type Stepper interface {
	Step() error
	Halted() bool
}

// Run repeatedly steps s until it halts or the cycle bound is exceeded
// (spec.md §7). A bound of 0 means unbounded. Any error returned by Step
// (InvalidOpcode, ArithmeticTrap) is returned immediately, unwrapped.
func Run(s Stepper, bound uint64) error {
	var cycles uint64
	for !s.Halted() {
		if bound > 0 && cycles >= bound {
			return &BoundReached{Cycles: cycles}
		}
		if err := s.Step(); err != nil {
			return err
		}
		cycles++
	}
	return nil
}
