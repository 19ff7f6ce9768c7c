// Copyright 2026 The Puminer Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package mining implements the closure-aware, best-first search over an
// uncertain transaction database that produces its top-k frequent closed
// itemsets.
package mining

import (
	"fmt"

	"puminer/pkg/puminer"
)

// Config configures a single run of the mining engine.
type Config struct {
	// MinSupport is the minimum probabilistic support (minsup) a candidate
	// must reach before it is considered for the result set.
	MinSupport int

	// Tau is the frequentness probability threshold in (0, 1]: a pattern's
	// reported support is the largest s such that P(support >= s) >= Tau.
	Tau float64

	// K is the number of top patterns to retain, ranked by (support,
	// probability) descending.
	K int

	// Calculator names the support-distribution calculator to use. Empty
	// defaults to the in-place DP implementation.
	Calculator string

	// Workers bounds the number of goroutines used for the data-parallel
	// first phase. Zero or negative selects a sensible default.
	Workers int
}

// Validate checks the configuration for internally-consistent values and
// returns a *puminer.Error with kind InvalidConfig describing the first
// problem found.
func (c Config) Validate() error {
	if c.MinSupport < 1 {
		return puminer.NewConfigError("minsup must be >= 1, got %d", c.MinSupport)
	}
	if c.Tau <= 0 || c.Tau > 1 {
		return puminer.NewConfigError("tau must be in (0, 1], got %v", c.Tau)
	}
	if c.K < 1 {
		return puminer.NewConfigError("k must be >= 1, got %d", c.K)
	}
	return nil
}

// resolvedWorkers returns the effective worker count for Phase 1, applying
// the same default the command-line entry point uses.
func (c Config) resolvedWorkers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return defaultWorkerCount()
}

func (c Config) String() string {
	return fmt.Sprintf("Config{minsup=%d tau=%v k=%d calculator=%q workers=%d}",
		c.MinSupport, c.Tau, c.K, c.Calculator, c.Workers)
}
