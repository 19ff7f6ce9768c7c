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

package mining

import (
	"errors"
	"testing"

	"puminer/pkg/puminer"
)

func TestConfig_ValidateRejectsOutOfRangeFields(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
	}{
		{"zero minsup", Config{MinSupport: 0, Tau: 0.5, K: 5}},
		{"negative minsup", Config{MinSupport: -1, Tau: 0.5, K: 5}},
		{"zero tau", Config{MinSupport: 1, Tau: 0, K: 5}},
		{"tau above one", Config{MinSupport: 1, Tau: 1.1, K: 5}},
		{"zero k", Config{MinSupport: 1, Tau: 0.5, K: 0}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.cfg.Validate()
			if err == nil {
				t.Fatalf("expected a validation error")
			}
			var pErr *puminer.Error
			if !errors.As(err, &pErr) || pErr.Kind != puminer.InvalidConfig {
				t.Fatalf("expected an InvalidConfig error, got %v", err)
			}
		})
	}
}

func TestConfig_ValidateAcceptsWellFormedConfig(t *testing.T) {
	cfg := Config{MinSupport: 2, Tau: 0.7, K: 10, Calculator: "poly-dp"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestConfig_ResolvedWorkersDefaultsWhenUnset(t *testing.T) {
	cfg := Config{MinSupport: 1, Tau: 0.5, K: 1}
	if cfg.resolvedWorkers() <= 0 {
		t.Fatalf("expected a positive default worker count")
	}
	cfg.Workers = 7
	if cfg.resolvedWorkers() != 7 {
		t.Fatalf("expected the explicit worker count to be honored")
	}
}
