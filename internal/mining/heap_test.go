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
	"testing"

	"puminer/pkg/puminer"
)

func patternOf(items []int, support int, prob float64) Pattern {
	return Pattern{Itemset: puminer.NewItemsetOf(items...), Support: support, Probability: prob}
}

func TestTopKHeap_FillsToCapacityThenEvictsWeakest(t *testing.T) {
	h := NewTopKHeap(2)

	if !h.Insert(patternOf([]int{1}, 5, 0.9)) {
		t.Fatalf("first insert into a non-full heap must be accepted")
	}
	if !h.Insert(patternOf([]int{2}, 3, 0.9)) {
		t.Fatalf("second insert into a non-full heap must be accepted")
	}
	if !h.IsFull() {
		t.Fatalf("heap should be full at capacity 2 with 2 entries")
	}
	if h.MinSupport() != 3 {
		t.Fatalf("expected min support 3, got %d", h.MinSupport())
	}

	if h.Insert(patternOf([]int{3}, 1, 0.9)) {
		t.Fatalf("a weaker pattern than the current minimum must be rejected")
	}
	if !h.Insert(patternOf([]int{4}, 10, 0.9)) {
		t.Fatalf("a stronger pattern must evict the weakest entry")
	}
	if h.MinSupport() != 5 {
		t.Fatalf("expected the new min support 5 after eviction, got %d", h.MinSupport())
	}
}

func TestTopKHeap_DuplicateItemsetIsAlwaysRejected(t *testing.T) {
	h := NewTopKHeap(3)
	items := []int{1, 2}
	h.Insert(patternOf(items, 4, 0.5))

	if h.Insert(patternOf(items, 2, 0.9)) {
		t.Fatalf("a weaker duplicate must be rejected")
	}
	if h.Insert(patternOf(items, 9, 0.5)) {
		t.Fatalf("a stronger duplicate must also be rejected: duplicates are unconditionally rejected")
	}
	if h.Len() != 1 {
		t.Fatalf("duplicate itemsets must not increase the retained count, got %d", h.Len())
	}
	snap := h.Snapshot()
	if snap[0].Support != 4 {
		t.Fatalf("expected the original entry's support 4 to be retained unchanged, got %d", snap[0].Support)
	}
}

func TestTopKHeap_SnapshotSortedDescending(t *testing.T) {
	h := NewTopKHeap(5)
	h.Insert(patternOf([]int{1}, 3, 0.2))
	h.Insert(patternOf([]int{2}, 7, 0.9))
	h.Insert(patternOf([]int{3}, 7, 0.4))
	h.Insert(patternOf([]int{4}, 1, 0.9))

	snap := h.Snapshot()
	for i := 1; i < len(snap); i++ {
		prev, cur := snap[i-1], snap[i]
		if prev.Support < cur.Support {
			t.Fatalf("snapshot not sorted by support descending at %d", i)
		}
		if prev.Support == cur.Support && prev.Probability < cur.Probability {
			t.Fatalf("snapshot not sorted by probability descending within a support tie at %d", i)
		}
	}
}

func TestTopKHeap_EmptyHeapReportsNotFull(t *testing.T) {
	h := NewTopKHeap(3)
	if h.IsFull() {
		t.Fatalf("an empty heap must not report full")
	}
	if h.MinSupport() != 0 || h.MinProbability() != 0 {
		t.Fatalf("an empty heap's min values should be the zero value")
	}
}
