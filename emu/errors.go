package emu

import "fmt"

// InvalidOpcode signals that execute was asked to dispatch an opcode it
// cannot run — an unknown opcode, or a decode-only v1 opcode reached at
// runtime (spec.md §7). Fatal.
type InvalidOpcode struct {
	Icode string
	PC    uint32
}

func (e *InvalidOpcode) Error() string {
	return fmt.Sprintf("invalid opcode %q at pc=0x%x", e.Icode, e.PC)
}

// ArithmeticTrap signals a div or mod by zero (spec.md §7). Fatal.
type ArithmeticTrap struct {
	PC uint32
}

func (e *ArithmeticTrap) Error() string {
	return fmt.Sprintf("arithmetic trap (div/mod by zero) at pc=0x%x", e.PC)
}

// InvalidRegister signals a register index outside 0..31, only reachable
// from a corrupted program image (spec.md §7). Fatal.
type InvalidRegister struct {
	Index uint8
}

func (e *InvalidRegister) Error() string {
	return fmt.Sprintf("invalid register index %d", e.Index)
}

// BoundReached is not an error in the ordinary sense: the run loop
// returns it when an external cycle bound is exceeded before halting
// (spec.md §7). The test harness treats this as a failure to converge.
type BoundReached struct {
	Cycles uint64
}

func (e *BoundReached) Error() string {
	return fmt.Sprintf("cycle bound reached after %d cycles without halting", e.Cycles)
}
