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
	"reflect"
	"testing"
)

func TestItemset_InsertContainsLen(t *testing.T) {
	s := NewItemset()
	if !s.IsEmpty() {
		t.Fatalf("new itemset should be empty")
	}
	s = s.Insert(3).Insert(70).Insert(3)
	if s.Len() != 2 {
		t.Fatalf("expected cardinality 2, got %d", s.Len())
	}
	if !s.Contains(3) || !s.Contains(70) {
		t.Fatalf("expected 3 and 70 to be members")
	}
	if s.Contains(4) {
		t.Fatalf("4 should not be a member")
	}
}

func TestItemset_InsertDoesNotMutateOriginal(t *testing.T) {
	base := NewItemsetOf(1, 2)
	extended := base.Insert(3)
	if base.Contains(3) {
		t.Fatalf("Insert must not mutate the receiver's original value")
	}
	if !extended.Contains(3) {
		t.Fatalf("the returned itemset must contain the inserted id")
	}
}

func TestItemset_ItemsAscendingOrder(t *testing.T) {
	s := NewItemsetOf(65, 2, 0, 130, 1)
	got := s.Items()
	want := []int{0, 1, 2, 65, 130}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Items() = %v, want %v", got, want)
	}
}

func TestItemset_Max(t *testing.T) {
	if NewItemset().Max() != -1 {
		t.Fatalf("empty itemset should report Max() == -1")
	}
	s := NewItemsetOf(5, 200, 3)
	if s.Max() != 200 {
		t.Fatalf("expected Max() == 200, got %d", s.Max())
	}
}

func TestItemset_UnionAndEqual(t *testing.T) {
	a := NewItemsetOf(1, 3, 5)
	b := NewItemsetOf(3, 4)
	u := a.Union(b)
	want := NewItemsetOf(1, 3, 4, 5)
	if !u.Equal(want) {
		t.Fatalf("Union mismatch: got items %v, want %v", u.Items(), want.Items())
	}
	if a.Equal(b) {
		t.Fatalf("distinct itemsets should not compare equal")
	}
}

func TestItemset_EqualAcrossDifferentWordWidths(t *testing.T) {
	// An itemset whose backing slice carries trailing all-zero words must
	// compare equal to one built directly from the same members.
	a := Itemset{words: []uint64{1 << 1, 0, 0}}
	b := NewItemsetOf(1)
	if !a.Equal(b) {
		t.Fatalf("itemsets with the same members must compare equal regardless of internal width")
	}

	wide := NewItemsetOf(1, 999)
	if wide.Equal(b) {
		t.Fatalf("itemsets with different members must not be equal")
	}
}

func TestItemset_HashConsistentWithEqual(t *testing.T) {
	a := NewItemsetOf(1, 2, 3)
	b := NewItemsetOf(3, 2, 1)
	if a.Hash() != b.Hash() {
		t.Fatalf("equal itemsets must hash identically regardless of insertion order")
	}
	c := NewItemsetOf(1, 2, 4)
	if a.Hash() == c.Hash() {
		t.Fatalf("distinct itemsets should hash differently (not a strict requirement, but true for this input)")
	}
}
