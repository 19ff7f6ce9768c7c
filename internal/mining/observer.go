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

import "sync"

// PruneReason classifies why a candidate was dropped without being
// evaluated, for observers that want to report pruning effectiveness.
type PruneReason int

const (
	// PruneItemSupport: a singleton failed the minsup check in Phase 1.
	PruneItemSupport PruneReason = iota
	// PruneUpperBound: the candidate's upper bound cannot reach the
	// current top-k threshold.
	PruneUpperBound
	// PruneTidsetSize: the candidate's tidset is smaller than the current
	// top-k threshold.
	PruneTidsetSize
	// PruneNotCanonical: the extension item does not exceed the parent's
	// maximum item, so it is generated by another parent instead.
	PruneNotCanonical
)

// Observer receives progress notifications from a mining run. All methods
// are optional: an Observer embedding NoopObserver only needs to implement
// the ones it cares about. Handlers must not block; Reporter calls them
// synchronously on the goroutine that raised the notification, which in
// Phase 1 may be any of the parallel workers.
type Observer interface {
	OnPhaseStart(phase string)
	OnPhaseComplete(phase string, elapsedCandidates int)
	OnPatternFound(p Pattern)
	OnCandidatePruned(c Candidate, reason PruneReason)
}

// NoopObserver implements Observer with no-op methods so callers can embed
// it and override only the notifications they need.
type NoopObserver struct{}

func (NoopObserver) OnPhaseStart(string)                     {}
func (NoopObserver) OnPhaseComplete(string, int)             {}
func (NoopObserver) OnPatternFound(Pattern)                  {}
func (NoopObserver) OnCandidatePruned(Candidate, PruneReason) {}

// Reporter fans a mining run's notifications out to zero or more
// registered observers. It is safe for concurrent registration and use
// from multiple goroutines during Phase 1's parallel scan; a panic inside
// an observer is recovered and discarded so one bad handler cannot abort
// the run. The observer stays registered.
type Reporter struct {
	mu        sync.Mutex
	observers []Observer
}

// NewReporter creates a reporter fanning out to the given observers.
func NewReporter(observers ...Observer) *Reporter {
	return &Reporter{observers: append([]Observer(nil), observers...)}
}

// Register adds an observer to the fan-out list.
func (r *Reporter) Register(o Observer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.observers = append(r.observers, o)
}

func (r *Reporter) each(f func(Observer)) {
	r.mu.Lock()
	observers := append([]Observer(nil), r.observers...)
	r.mu.Unlock()

	for _, o := range observers {
		safeCall(func() { f(o) })
	}
}

func safeCall(f func()) {
	defer func() { _ = recover() }()
	f()
}

func (r *Reporter) phaseStart(phase string) {
	r.each(func(o Observer) { o.OnPhaseStart(phase) })
}

func (r *Reporter) phaseComplete(phase string, n int) {
	r.each(func(o Observer) { o.OnPhaseComplete(phase, n) })
}

func (r *Reporter) patternFound(p Pattern) {
	r.each(func(o Observer) { o.OnPatternFound(p) })
}

func (r *Reporter) candidatePruned(c Candidate, reason PruneReason) {
	r.each(func(o Observer) { o.OnCandidatePruned(c, reason) })
}
