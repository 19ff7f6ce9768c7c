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
	"container/heap"
	"sort"
)

// rankedPattern is a Pattern with its memoized itemset hash, stored in the
// min-heap ordered by (support, probability) ascending so the root is
// always the weakest pattern currently retained.
type rankedPattern struct {
	pattern Pattern
	hash    uint64
}

func less(a, b rankedPattern) bool {
	if a.pattern.Support != b.pattern.Support {
		return a.pattern.Support < b.pattern.Support
	}
	return a.pattern.Probability < b.pattern.Probability
}

// patternHeap implements container/heap.Interface over rankedPattern,
// ordered so Pop always removes the current weakest retained pattern.
type patternHeap []rankedPattern

func (h patternHeap) Len() int            { return len(h) }
func (h patternHeap) Less(i, j int) bool  { return less(h[i], h[j]) }
func (h patternHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *patternHeap) Push(x interface{}) { *h = append(*h, x.(rankedPattern)) }
func (h *patternHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// TopKHeap retains the K strongest patterns seen so far, ranked by
// (support, probability) descending, deduplicated by itemset identity. It
// is not safe for concurrent use; Phase 3 serializes access to it.
type TopKHeap struct {
	k    int
	h    patternHeap
	seen map[uint64]int // itemset hash -> index into h; evicted hashes are deleted
}

// NewTopKHeap creates a heap that retains at most k patterns.
func NewTopKHeap(k int) *TopKHeap {
	return &TopKHeap{k: k, seen: make(map[uint64]int)}
}

// Insert offers a candidate pattern to the heap. It is accepted if the
// heap has room, or if it beats the current weakest retained pattern. A
// duplicate itemset (by hash) is always rejected, regardless of how it
// compares to the entry already held. Insert reports whether the pattern
// was accepted.
func (t *TopKHeap) Insert(p Pattern) bool {
	key := p.Itemset.Hash()
	rp := rankedPattern{pattern: p, hash: key}

	if _, ok := t.seen[key]; ok {
		return false
	}

	if t.h.Len() < t.k {
		heap.Push(&t.h, rp)
		t.reindex()
		return true
	}

	if t.h.Len() > 0 && less(t.h[0], rp) {
		evicted := t.h[0]
		delete(t.seen, evicted.hash)
		heap.Pop(&t.h)
		heap.Push(&t.h, rp)
		t.reindex()
		return true
	}
	return false
}

// reindex rebuilds the hash-to-index map after operations that can move
// several elements at once (container/heap does not report moved indices).
func (t *TopKHeap) reindex() {
	for i, e := range t.h {
		t.seen[e.hash] = i
	}
}

// IsFull reports whether the heap is holding k patterns.
func (t *TopKHeap) IsFull() bool {
	return t.h.Len() >= t.k
}

// MinSupport returns the support of the weakest retained pattern. Callers
// use this as the dynamic pruning threshold once the heap is full: any
// candidate whose upper-bound support cannot reach this value can never
// unseat the current top-k and is pruned without further evaluation. It
// returns 0 if the heap is not yet full.
func (t *TopKHeap) MinSupport() int {
	if !t.IsFull() || t.h.Len() == 0 {
		return 0
	}
	return t.h[0].pattern.Support
}

// MinProbability returns the probability of the weakest retained pattern
// (the heap root) when the heap is full; 0 if the heap is not yet full.
func (t *TopKHeap) MinProbability() float64 {
	if !t.IsFull() || t.h.Len() == 0 {
		return 0
	}
	return t.h[0].pattern.Probability
}

// Len returns the number of patterns currently retained.
func (t *TopKHeap) Len() int {
	return t.h.Len()
}

// Snapshot returns the retained patterns sorted by (support, probability)
// descending, the order in which results are reported.
func (t *TopKHeap) Snapshot() []Pattern {
	out := make([]Pattern, len(t.h))
	for i, e := range t.h {
		out[i] = e.pattern
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Support != out[j].Support {
			return out[i].Support > out[j].Support
		}
		return out[i].Probability > out[j].Probability
	})
	return out
}
