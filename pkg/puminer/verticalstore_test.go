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
	"testing"
)

func TestVerticalStore_SpecScenarioS2(t *testing.T) {
	vs := NewVerticalStore(2)
	const A, B = 0, 1
	mustAdd := func(tid, item int, prob float64) {
		t.Helper()
		if err := vs.Add(tid, item, prob); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	mustAdd(1, A, 0.8)
	mustAdd(1, B, 0.6)
	mustAdd(2, A, 0.5)
	mustAdd(3, B, 0.4)
	vs.Seal()

	tsA, _ := vs.TidsetForItem(A)
	if tsA.Len() != 2 {
		t.Fatalf("expected 2 entries for A, got %d", tsA.Len())
	}

	ab, err := vs.TidsetForItemset(NewItemsetOf(A, B))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ab.Len() != 1 || ab.Entries()[0].TID != 1 {
		t.Fatalf("expected single shared tid 1, got %v", ab.Entries())
	}
	if math.Abs(ab.Entries()[0].Prob-0.48) > 1e-12 {
		t.Fatalf("expected joint probability 0.48, got %v", ab.Entries()[0].Prob)
	}
}

func TestVerticalStore_SealSealViolation(t *testing.T) {
	vs := NewVerticalStore(1)
	vs.Seal()
	if err := vs.Add(0, 0, 0.5); err == nil {
		t.Fatalf("expected a SealViolation after sealing")
	}

	vs2 := NewVerticalStore(1)
	if _, err := vs2.TidsetForItem(0); err == nil {
		t.Fatalf("expected a SealViolation for a lookup before sealing")
	}
}

func TestVerticalStore_EmptyItemsetAndMissingItem(t *testing.T) {
	vs := NewVerticalStore(2)
	_ = vs.Add(0, 0, 0.9)
	vs.Seal()

	empty, err := vs.TidsetForItemset(NewItemset())
	if err != nil || empty.Len() != 0 {
		t.Fatalf("empty itemset should yield an empty tidset with no error, got %v err=%v", empty, err)
	}

	ts, err := vs.TidsetForItem(1)
	if err != nil || ts.Len() != 0 {
		t.Fatalf("an item with no occurrences should yield an empty tidset, got %v err=%v", ts, err)
	}
}

func TestVerticalStore_ThreeWayIntersectionEarlyExit(t *testing.T) {
	vs := NewVerticalStore(3)
	const A, B, C = 0, 1, 2
	_ = vs.Add(1, A, 0.9)
	_ = vs.Add(1, B, 0.9)
	_ = vs.Add(2, A, 0.9)
	_ = vs.Add(2, C, 0.9) // no transaction has all of A, B, C
	vs.Seal()

	abc, err := vs.TidsetForItemset(NewItemsetOf(A, B, C))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if abc.Len() != 0 {
		t.Fatalf("expected empty intersection, got %v", abc.Entries())
	}
}
