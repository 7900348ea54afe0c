package emu

// SingleCycle drives the four shared stages in program order within one
// call to Step (spec.md §4.10): fetch, decode, execute, writeback all run
// for the same instruction before the next Step begins. There is never
// more than one latch occupied at a time.
type SingleCycle struct {
	State *State
}

// NewSingleCycle constructs a single-cycle driver over the given state.
func NewSingleCycle(s *State) *SingleCycle { return &SingleCycle{State: s} }

// Step runs fetch→decode→execute→writeback once. It returns a fatal
// error (InvalidOpcode, ArithmeticTrap) if execute traps; the caller's
// run loop is responsible for stopping on error or on Halted.
func (c *SingleCycle) Step() error {
	// While a push/pop expansion is still draining, decode takes the
	// queued micro-op, so fetch sits out rather than overwrite a word it
	// already fetched.
	if len(c.State.PendingOps) == 0 {
		Fetch(c.State)
	}
	Decode(c.State)
	if err := Execute(c.State); err != nil {
		return err
	}
	Writeback(c.State)
	StallDec(c.State)
	return nil
}

// Halted reports whether the underlying state has executed hlt.
func (c *SingleCycle) Halted() bool { return c.State.Halted }
