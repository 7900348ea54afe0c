// Package config holds the ambient run configuration for a BatBridge
// simulation: which execution variant to drive, the cycle bound, and
// the memory cache hierarchy shape. Grounded on the teacher's
// timing/latency.TimingConfig/LoadConfig/SaveConfig (same
// encoding/json + os.ReadFile/os.WriteFile shape), re-keyed to
// BatBridge's run parameters instead of M2 instruction latencies.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sarchlab/batbridge/timing/cache"
)

// Variant names one of the three interchangeable execution models
// (spec.md §2).
type Variant string

const (
	VariantSingle    Variant = "single"
	VariantPipelined Variant = "pipelined"
	VariantPredicted Variant = "predicted"
)

// RunConfig holds everything a run needs beyond the program image
// itself: which driver to build, how many cycles to allow before
// treating non-termination as failure, and the cache hierarchy levels (if
// any). No driver in this module routes memory accesses through
// CacheLevels.
type RunConfig struct {
	Variant     Variant        `json:"variant"`
	CycleBound  uint64         `json:"cycle_bound"`
	CacheLevels []cache.Config `json:"cache_levels,omitempty"`
}

// DefaultRunConfig returns the single-cycle variant, a generous default
// cycle bound, and no cache hierarchy (plain memory backing).
func DefaultRunConfig() *RunConfig {
	return &RunConfig{
		Variant:    VariantSingle,
		CycleBound: 1_000_000,
	}
}

// LoadConfig reads a RunConfig from a JSON file, starting from
// DefaultRunConfig's values for any field the file omits.
func LoadConfig(path string) (*RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read run config file: %w", err)
	}

	cfg := DefaultRunConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse run config: %w", err)
	}

	return cfg, nil
}

// SaveConfig writes c to path as indented JSON.
func (c *RunConfig) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize run config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write run config file: %w", err)
	}

	return nil
}

// Validate checks that the configured variant is one this module knows
// how to build.
func (c *RunConfig) Validate() error {
	switch c.Variant {
	case VariantSingle, VariantPipelined, VariantPredicted:
	default:
		return fmt.Errorf("unknown variant %q", c.Variant)
	}
	if c.CycleBound == 0 {
		return fmt.Errorf("cycle_bound must be > 0")
	}
	return nil
}
