// Package benchmarks runs four of spec.md §8's worked end-to-end programs
// across all three execution variants and reports cycle counts, grounded
// on the teacher's timing_harness.go table-of-programs/Harness shape
// (Benchmark/BenchmarkResult/Harness/RunAll/PrintResults/PrintCSV),
// trimmed to the stats this architecture's drivers actually expose —
// the teacher's ARM64 instruction-encoding helpers and ICache/DCache/
// superscalar options have no BatBridge analogue and are dropped rather
// than adapted, since nothing in this simulator family issues
// multiple instructions per cycle or targets a real ISA encoding; see
// DESIGN.md.
package benchmarks

import (
	"fmt"

	"github.com/sarchlab/batbridge/emu"
	"github.com/sarchlab/batbridge/insts"
)

func word(op insts.OpCode, d, a, b uint8, i int32) int32 {
	return int32(insts.Pack(op.Value(), d, a, b, i))
}

// Scenario is one named program plus the check its final architectural
// state must satisfy.
type Scenario struct {
	Name        string
	Description string
	Words       map[uint32]int32
	CycleBound  uint64
	Check       func(s *emu.State) error
}

// Scenarios returns the four spec.md §8 worked scenarios that are
// runnable programs (Fibonacci, Factorial, memory-fact, push/pop). The
// remaining two — codec round-trip and predictor convergence — are
// properties, not programs. Codec round-trip is covered by the insts and
// properties tests; predictor convergence is not run here, and the
// properties suite only checks the direction of the predictor's training.
func Scenarios() []Scenario {
	return []Scenario{
		fibonacci14(),
		factorial10(),
		memoryFact10(),
		pushPopRoundTrip(),
	}
}

// fibonacci14 runs 14 iterations of the 1,1,2,3,5,... recurrence,
// leaving its 15th term in r1, expecting 610 within 300 cycles (spec.md
// §8 scenario 1).
func fibonacci14() Scenario {
	words := map[uint32]int32{
		0:  word(insts.OpAdd, 0, insts.RegZERO, insts.RegIMM, 14),
		4:  word(insts.OpAdd, 1, insts.RegZERO, insts.RegIMM, 1),
		8:  word(insts.OpAdd, 2, insts.RegZERO, insts.RegIMM, 0),
		12: word(insts.OpIfEq, 0, 0, insts.RegZERO, 0),
		16: word(insts.OpAdd, insts.RegPC, insts.RegPC, insts.RegIMM, 20),
		20: word(insts.OpSub, 0, 0, insts.RegIMM, 1),
		24: word(insts.OpAdd, 3, 1, 2, 0),
		28: word(insts.OpAdd, 2, 1, insts.RegZERO, 0),
		32: word(insts.OpAdd, 1, 3, insts.RegZERO, 0),
		36: word(insts.OpSub, insts.RegPC, insts.RegPC, insts.RegIMM, 28),
		40: word(insts.OpHlt, 0, 0, 0, 0),
	}
	return Scenario{
		Name:        "fibonacci14",
		Description: "14th iterative Fibonacci term, expects r1=610",
		Words:       words,
		CycleBound:  300,
		Check: func(s *emu.State) error {
			return expectReg(s, 1, 610)
		},
	}
}

// factorial10 is spec.md §8 scenario 2's literal worked program: expects
// r0=3628800 (10!).
func factorial10() Scenario {
	words := map[uint32]int32{
		0:  word(insts.OpAdd, 0, insts.RegZERO, insts.RegIMM, 1),
		4:  word(insts.OpAdd, 1, insts.RegZERO, insts.RegIMM, 10),
		8:  word(insts.OpMul, 0, 0, 1, 0),
		12: word(insts.OpSub, 1, 1, insts.RegIMM, 1),
		16: word(insts.OpIfNe, 0, 1, insts.RegZERO, 0),
		20: word(insts.OpAdd, insts.RegPC, insts.RegZERO, insts.RegIMM, 8),
		24: word(insts.OpHlt, 0, 0, 0, 0),
	}
	return Scenario{
		Name:        "factorial10",
		Description: "10! computed iteratively, expects r0=3628800",
		Words:       words,
		CycleBound:  300,
		Check: func(s *emu.State) error {
			return expectReg(s, 0, 3628800)
		},
	}
}

// memoryFact10 is the same 10! loop as factorial10, but additionally
// stores every intermediate product to consecutive memory words at
// 1000, exercising ld/st against the running computation (spec.md §8
// scenario 3 — a distinct worked scenario in the distilled spec, kept
// here as the memory-exercising sibling of factorial10).
func memoryFact10() Scenario {
	words := map[uint32]int32{
		0:  word(insts.OpAdd, 0, insts.RegZERO, insts.RegIMM, 1),
		4:  word(insts.OpAdd, 1, insts.RegZERO, insts.RegIMM, 10),
		8:  word(insts.OpAdd, 2, insts.RegZERO, insts.RegIMM, 1000),
		12: word(insts.OpMul, 0, 0, 1, 0),
		16: word(insts.OpSt, 0, 2, insts.RegZERO, 0),
		20: word(insts.OpAdd, 2, 2, insts.RegIMM, 4),
		24: word(insts.OpSub, 1, 1, insts.RegIMM, 1),
		28: word(insts.OpIfNe, 0, 1, insts.RegZERO, 0),
		32: word(insts.OpAdd, insts.RegPC, insts.RegPC, insts.RegIMM, -24),
		36: word(insts.OpHlt, 0, 0, 0, 0),
	}
	return Scenario{
		Name:        "memory-fact10",
		Description: "10! with every partial product stored to memory starting at 1000",
		Words:       words,
		CycleBound:  400,
		Check: func(s *emu.State) error {
			if err := expectReg(s, 0, 3628800); err != nil {
				return err
			}
			if got := s.Mem.Read(1036); got != 3628800 {
				return fmt.Errorf("memory[1036] = %d, want 3628800 (final stored product)", got)
			}
			return nil
		},
	}
}

// pushPopRoundTrip pushes a value and pops it back through the stack at
// register 28, expecting r28=2000 and r1=1000 (spec.md §8 scenario 4).
func pushPopRoundTrip() Scenario {
	words := map[uint32]int32{
		0:  word(insts.OpAdd, 0, insts.RegZERO, insts.RegIMM, 1000),
		4:  word(insts.OpAdd, 28, 0, 0, 0),
		8:  word(insts.OpPush, 0, 0, 0, 0),
		12: word(insts.OpPop, 1, 0, 0, 0),
		16: word(insts.OpHlt, 0, 0, 0, 0),
	}
	return Scenario{
		Name:        "push-pop-roundtrip",
		Description: "pushes r0 then pops it into r1, expects r28=2000 r1=1000",
		Words:       words,
		CycleBound:  100,
		Check: func(s *emu.State) error {
			if err := expectReg(s, 28, 2000); err != nil {
				return err
			}
			return expectReg(s, 1, 1000)
		},
	}
}

func expectReg(s *emu.State, idx uint8, want int32) error {
	if got := s.Regs.Read(idx); got != want {
		return fmt.Errorf("r%d = %d, want %d", idx, got, want)
	}
	return nil
}
