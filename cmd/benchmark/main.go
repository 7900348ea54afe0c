// Command benchmark runs the BatBridge scenario benchmark harness across
// all three execution variants.
//
// Usage:
//
//	go run ./cmd/benchmark [flags]
//
// Flags:
//
//	-csv  Output results in CSV format (default: human-readable)
//
// Example:
//
//	# Run all scenarios with human-readable output
//	go run ./cmd/benchmark
//
//	# Output CSV for spreadsheet comparison
//	go run ./cmd/benchmark -csv > results.csv
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sarchlab/batbridge/benchmarks"
)

func main() {
	csvOutput := flag.Bool("csv", false, "Output results in CSV format")
	flag.Parse()

	harness := benchmarks.NewHarness(benchmarks.Scenarios())
	harness.Output = os.Stdout

	if !*csvOutput {
		fmt.Println("BatBridge Scenario Benchmark Harness")
		fmt.Println("=====================================")
		fmt.Println()
	}

	results := harness.RunAll()

	if *csvOutput {
		harness.PrintCSV(results)
		return
	}

	harness.PrintResults(results)

	failed := 0
	for _, r := range results {
		if !r.Passed {
			failed++
		}
	}
	if failed > 0 {
		fmt.Printf("\n%d of %d runs failed\n", failed, len(results))
		os.Exit(1)
	}
}
