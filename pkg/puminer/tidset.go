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

package puminer

import (
	"math"
	"sort"
)

// MinProb is the underflow clamp applied to any probability that would
// otherwise round to (or below) zero during intersection.
const MinProb = 1e-300

// Epsilon absorbs floating-point drift in frequentness comparisons.
const Epsilon = 1e-9

// TIDProb pairs a transaction id with the joint probability that the owning
// itemset occurs in that transaction.
type TIDProb struct {
	TID  int
	Prob float64
}

// Tidset is a sorted sparse vector of TIDProb, strictly ascending by TID with
// no duplicate TIDs. It represents the transactions in which the owning
// itemset occurs, paired with the joint probability of co-occurrence.
type Tidset struct {
	entries []TIDProb
}

// NewTidset validates and wraps entries, which must already be strictly
// ascending by TID. Use Build if entries are unsorted or need validation
// during accumulation.
func NewTidset(entries []TIDProb) (Tidset, error) {
	for i, e := range entries {
		if err := validateTIDProb(e); err != nil {
			return Tidset{}, err
		}
		if i > 0 && entries[i-1].TID >= e.TID {
			if entries[i-1].TID == e.TID {
				return Tidset{}, newError(InvalidTid, "duplicate tid %d", e.TID)
			}
			return Tidset{}, newError(InvalidTid, "tidset not strictly ascending at tid %d", e.TID)
		}
	}
	return Tidset{entries: entries}, nil
}

func validateTIDProb(e TIDProb) error {
	if e.TID < 0 {
		return newError(InvalidTid, "negative tid %d", e.TID)
	}
	if math.IsNaN(e.Prob) || math.IsInf(e.Prob, 0) {
		return newError(InvalidProbability, "prob for tid %d is NaN or infinite", e.TID)
	}
	if e.Prob < 0 || e.Prob > 1 {
		return newError(InvalidProbability, "prob %v for tid %d outside [0,1]", e.Prob, e.TID)
	}
	return nil
}

// TidsetBuilder accumulates (tid, prob) pairs out of order and produces a
// sorted, validated Tidset via Build. Used by VerticalStore while collecting
// per-item occurrences before sealing.
type TidsetBuilder struct {
	entries []TIDProb
	seen    map[int]bool
}

// Add appends a (tid, prob) pair, validating it eagerly.
func (b *TidsetBuilder) Add(tid int, prob float64) error {
	e := TIDProb{TID: tid, Prob: prob}
	if err := validateTIDProb(e); err != nil {
		return err
	}
	if b.seen == nil {
		b.seen = make(map[int]bool)
	}
	if b.seen[tid] {
		return newError(InvalidTid, "duplicate tid %d", tid)
	}
	b.seen[tid] = true
	b.entries = append(b.entries, e)
	return nil
}

// Build sorts the accumulated entries by TID and returns the finished
// Tidset. The builder must not be reused after Build.
func (b *TidsetBuilder) Build() Tidset {
	sortTIDProbs(b.entries)
	return Tidset{entries: b.entries}
}

func sortTIDProbs(entries []TIDProb) {
	sort.Slice(entries, func(i, j int) bool { return entries[i].TID < entries[j].TID })
}

// Len returns the number of entries.
func (t Tidset) Len() int { return len(t.entries) }

// Entries returns the underlying ascending-by-tid slice. Callers must treat
// it as read-only.
func (t Tidset) Entries() []TIDProb { return t.entries }

// Probs returns just the probability column, in tid order. Used to feed a
// SupportCalculator.
func (t Tidset) Probs() []float64 {
	out := make([]float64, len(t.entries))
	for i, e := range t.entries {
		out[i] = e.Prob
	}
	return out
}

// Intersect returns the merge-join intersection of a and b: one entry per
// tid present in both, with probability a.Prob*b.Prob clamped up to MinProb
// if it would otherwise underflow. Both inputs must already be sorted
// ascending by tid (guaranteed by construction); the result remains sorted
// and has length at most min(|a|,|b|).
func Intersect(a, b Tidset) Tidset {
	out := make([]TIDProb, 0, minInt(len(a.entries), len(b.entries)))
	i, j := 0, 0
	for i < len(a.entries) && j < len(b.entries) {
		ae, be := a.entries[i], b.entries[j]
		switch {
		case ae.TID < be.TID:
			i++
		case ae.TID > be.TID:
			j++
		default:
			p := ae.Prob * be.Prob
			if p < MinProb {
				p = MinProb
			}
			out = append(out, TIDProb{TID: ae.TID, Prob: p})
			i++
			j++
		}
	}
	return Tidset{entries: out}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
