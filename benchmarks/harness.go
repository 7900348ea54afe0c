package benchmarks

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sarchlab/batbridge/emu"
	"github.com/sarchlab/batbridge/timing/pipeline"
	"github.com/sarchlab/batbridge/timing/predicted"
	"github.com/sarchlab/batbridge/timing/predictor"
)

// Variant names one of the three drivers a scenario can be run under.
type Variant string

const (
	VariantSingle    Variant = "single"
	VariantPipelined Variant = "pipelined"
	VariantPredicted Variant = "predicted"
)

var allVariants = []Variant{VariantSingle, VariantPipelined, VariantPredicted}

// Result is one scenario run under one variant.
type Result struct {
	Scenario string
	Variant  Variant
	Cycles   uint64
	Passed   bool
	Err      error
	WallTime time.Duration
}

// Harness runs a table of scenarios across every variant.
type Harness struct {
	Scenarios []Scenario
	Output    io.Writer
}

// NewHarness builds a harness over the given scenarios, defaulting
// Output to os.Stdout.
func NewHarness(scenarios []Scenario) *Harness {
	return &Harness{Scenarios: scenarios, Output: os.Stdout}
}

// RunAll runs every scenario under every variant and returns one Result
// per (scenario, variant) pair, in scenario-major order.
func (h *Harness) RunAll() []Result {
	results := make([]Result, 0, len(h.Scenarios)*len(allVariants))
	for _, sc := range h.Scenarios {
		for _, v := range allVariants {
			results = append(results, runOne(sc, v))
		}
	}
	return results
}

func runOne(sc Scenario, v Variant) Result {
	mem := emu.NewMemory()
	mem.LoadWords(sc.Words)
	sink := emu.NewBufferSink()
	state := emu.NewState(mem, sink)
	stepper := buildStepper(state, v)
	counting := &countingStepper{Stepper: stepper}

	start := time.Now()
	runErr := emu.Run(counting, sc.CycleBound)
	wall := time.Since(start)

	result := Result{Scenario: sc.Name, Variant: v, Cycles: counting.cycles, WallTime: wall}
	if runErr != nil {
		result.Err = runErr
		return result
	}
	if sc.Check != nil {
		if err := sc.Check(state); err != nil {
			result.Err = err
			return result
		}
	}
	result.Passed = true
	return result
}

// countingStepper wraps a Stepper to count the cycles Run drove it for,
// since Run itself reports only success/failure.
type countingStepper struct {
	emu.Stepper
	cycles uint64
}

func (c *countingStepper) Step() error {
	err := c.Stepper.Step()
	c.cycles++
	return err
}

// buildStepper constructs the requested driver over state.
func buildStepper(state *emu.State, v Variant) emu.Stepper {
	switch v {
	case VariantPipelined:
		return pipeline.New(state)
	case VariantPredicted:
		return predicted.New(state, predictor.New())
	default:
		return emu.NewSingleCycle(state)
	}
}

// PrintResults writes a human-readable report to h.Output.
func (h *Harness) PrintResults(results []Result) {
	fmt.Fprintln(h.Output, "=== BatBridge Scenario Benchmark ===")
	fmt.Fprintln(h.Output)
	for _, r := range results {
		status := "PASS"
		if !r.Passed {
			status = "FAIL"
		}
		fmt.Fprintf(h.Output, "%-20s %-10s %-5s cycles=%-6d wall=%v\n",
			r.Scenario, r.Variant, status, r.Cycles, r.WallTime)
		if r.Err != nil {
			fmt.Fprintf(h.Output, "    %v\n", r.Err)
		}
	}
}

// PrintCSV writes scenario,variant,passed,cycles,wall_time_ns rows to
// h.Output.
func (h *Harness) PrintCSV(results []Result) {
	fmt.Fprintln(h.Output, "scenario,variant,passed,cycles,wall_time_ns")
	for _, r := range results {
		fmt.Fprintf(h.Output, "%s,%s,%t,%d,%d\n",
			r.Scenario, r.Variant, r.Passed, r.Cycles, r.WallTime.Nanoseconds())
	}
}
