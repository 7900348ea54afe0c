// Command batbridge runs a BatBridge program image under one of the
// three execution variants and reports the architectural exit state.
//
// Usage:
//
//	go run ./cmd/batbridge run <program.json> [flags]
//
// Flags:
//
//	-variant string   Execution model: single, pipelined, predicted (default "single")
//	-bound uint       Cycle bound before giving up (default 1000000)
//	-cache-config string  Optional run-config JSON file; only its cache_levels
//	                      are read, and no driver routes memory through them
//	-trace                Emit a JSON event trace to stderr
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/sarchlab/batbridge/config"
	"github.com/sarchlab/batbridge/emu"
	"github.com/sarchlab/batbridge/loader"
	"github.com/sarchlab/batbridge/timing/pipeline"
	"github.com/sarchlab/batbridge/timing/predicted"
	"github.com/sarchlab/batbridge/timing/predictor"
)

func main() {
	if len(os.Args) < 2 || os.Args[1] != "run" {
		fmt.Fprintln(os.Stderr, "usage: batbridge run <program.json> [flags]")
		os.Exit(2)
	}

	fs := flag.NewFlagSet("run", flag.ExitOnError)
	variant := fs.String("variant", "single", "execution model: single, pipelined, predicted")
	bound := fs.Uint64("bound", 1_000_000, "cycle bound before giving up")
	cachePath := fs.String("cache-config", "", "optional cache hierarchy config path")
	trace := fs.Bool("trace", false, "emit a JSON event trace to stderr")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: batbridge run <program.json> [flags]")
		os.Exit(2)
	}
	programPath := fs.Arg(0)

	cfg := config.DefaultRunConfig()
	cfg.Variant = config.Variant(*variant)
	cfg.CycleBound = *bound
	if *cachePath != "" {
		loaded, err := config.LoadConfig(*cachePath)
		if err != nil {
			fatal(err)
		}
		cfg.CacheLevels = loaded.CacheLevels
	}
	if err := cfg.Validate(); err != nil {
		fatal(err)
	}

	prog, err := loader.Load(programPath)
	if err != nil {
		fatal(err)
	}

	mem := emu.NewMemory()
	regs := emu.NewRegFile()
	prog.InstallInto(mem, regs)

	state := &emu.State{Regs: regs, Mem: mem, Sink: emu.DefaultOutputSink(), Events: emu.NoopEventSink{}}
	if *trace {
		state.Events = emu.NewJSONEventSink(os.Stderr)
	}

	stepper := buildStepper(state, cfg.Variant)

	runErr := emu.Run(stepper, cfg.CycleBound)
	if runErr != nil {
		if _, ok := runErr.(*emu.BoundReached); !ok {
			fatal(runErr)
		}
		fmt.Fprintln(os.Stderr, runErr)
	}

	report := map[string]any{
		"halted":   stepper.Halted(),
		"register": registerDump(state.Regs),
	}
	out, _ := json.MarshalIndent(report, "", "  ")
	fmt.Println(string(out))
}

func buildStepper(state *emu.State, v config.Variant) emu.Stepper {
	switch v {
	case config.VariantPipelined:
		return pipeline.New(state)
	case config.VariantPredicted:
		return predicted.New(state, predictor.New())
	default:
		return emu.NewSingleCycle(state)
	}
}

func registerDump(regs *emu.RegFile) [32]int32 {
	var dump [32]int32
	for i := 0; i < 32; i++ {
		dump[i] = regs.Read(uint8(i))
	}
	return dump
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "batbridge:", err)
	os.Exit(1)
}
