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
	"sync"
	"time"

	"puminer/internal/telemetry/minestats"
)

func (r PruneReason) String() string {
	switch r {
	case PruneItemSupport:
		return "item-support"
	case PruneUpperBound:
		return "upper-bound"
	case PruneTidsetSize:
		return "tidset-size"
	case PruneNotCanonical:
		return "not-canonical"
	default:
		return "unknown"
	}
}

// TelemetryObserver forwards mining progress notifications to minestats.
// It is a no-op whenever minestats.Enable has not turned collection on, so
// wiring it in unconditionally costs nothing in the common case.
type TelemetryObserver struct {
	NoopObserver

	mu          sync.Mutex
	phaseStarts map[string]time.Time
}

// NewTelemetryObserver creates an observer ready to register with a Reporter.
func NewTelemetryObserver() *TelemetryObserver {
	return &TelemetryObserver{phaseStarts: make(map[string]time.Time)}
}

func (t *TelemetryObserver) OnPhaseStart(phase string) {
	t.mu.Lock()
	t.phaseStarts[phase] = time.Now()
	t.mu.Unlock()
}

func (t *TelemetryObserver) OnPhaseComplete(phase string, elapsedCandidates int) {
	t.mu.Lock()
	start, ok := t.phaseStarts[phase]
	t.mu.Unlock()
	if ok {
		minestats.ObservePhaseDuration(phase, time.Since(start))
	}
	_ = elapsedCandidates
}

func (t *TelemetryObserver) OnPatternFound(Pattern) {
	minestats.ObservePatternFound()
}

func (t *TelemetryObserver) OnCandidatePruned(_ Candidate, reason PruneReason) {
	minestats.ObserveCandidatePruned(reason.String())
}
