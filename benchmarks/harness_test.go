package benchmarks_test

import (
	"bytes"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/batbridge/benchmarks"
)

func TestBenchmarks(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Benchmarks Suite")
}

var _ = Describe("Harness", func() {
	It("runs every scenario to completion under all three variants", func() {
		h := benchmarks.NewHarness(benchmarks.Scenarios())
		results := h.RunAll()

		Expect(results).To(HaveLen(len(benchmarks.Scenarios()) * 3))
		for _, r := range results {
			Expect(r.Passed).To(BeTrue(), "%s/%s: %v", r.Scenario, r.Variant, r.Err)
		}
	})

	It("passes the push/pop round-trip scenario under all three variants", func() {
		h := benchmarks.NewHarness([]benchmarks.Scenario{pushPopOnly()})
		results := h.RunAll()
		Expect(results).To(HaveLen(3))
		for _, r := range results {
			Expect(r.Passed).To(BeTrue(), "%s: %v", r.Variant, r.Err)
		}
	})

	It("prints a human-readable report", func() {
		var buf bytes.Buffer
		h := benchmarks.NewHarness(benchmarks.Scenarios())
		h.Output = &buf
		h.PrintResults(h.RunAll())
		Expect(buf.String()).To(ContainSubstring("fibonacci14"))
	})

	It("prints a CSV report with a header row", func() {
		var buf bytes.Buffer
		h := benchmarks.NewHarness(benchmarks.Scenarios())
		h.Output = &buf
		h.PrintCSV(h.RunAll())
		Expect(buf.String()).To(ContainSubstring("scenario,variant,passed,cycles,wall_time_ns"))
	})
})

func pushPopOnly() benchmarks.Scenario {
	for _, sc := range benchmarks.Scenarios() {
		if sc.Name == "push-pop-roundtrip" {
			return sc
		}
	}
	panic("push-pop-roundtrip scenario not found")
}
