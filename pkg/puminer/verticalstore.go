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
	"sort"
	"sync/atomic"
)

// VerticalStore holds, per item-id, the sorted tidset of transactions the
// item occurs in with its existence probability. It is built once from a
// horizontal transaction view, then sealed: after sealing, further adds
// fail with a SealViolation error and lookups become available.
//
// The two-phase build (mutable collect -> sealed queries) models the "no
// modification after first lookup" requirement as an explicit state
// transition rather than an implicit convention.
type VerticalStore struct {
	builders []TidsetBuilder
	tidsets  []Tidset
	nItems   int
	nTx      int
	sealed   atomic.Bool
}

// NewVerticalStore allocates a store for nItems distinct item-ids.
func NewVerticalStore(nItems int) *VerticalStore {
	return &VerticalStore{
		builders: make([]TidsetBuilder, nItems),
		nItems:   nItems,
	}
}

// Add records that item occurred in transaction tid with probability prob.
// It fails with a SealViolation error once the store has been sealed.
func (vs *VerticalStore) Add(tid, item int, prob float64) error {
	if vs.sealed.Load() {
		return newError(SealViolation, "Add called after VerticalStore was sealed")
	}
	if item < 0 || item >= vs.nItems {
		return newError(InvalidTid, "item id %d out of range [0,%d)", item, vs.nItems)
	}
	if err := vs.builders[item].Add(tid, prob); err != nil {
		return err
	}
	if tid+1 > vs.nTx {
		vs.nTx = tid + 1
	}
	return nil
}

// Seal finishes construction: every bucket is sorted by tid and the store
// becomes read-only. Seal is idempotent.
func (vs *VerticalStore) Seal() {
	if vs.sealed.Swap(true) {
		return
	}
	vs.tidsets = make([]Tidset, vs.nItems)
	for i := range vs.builders {
		vs.tidsets[i] = vs.builders[i].Build()
	}
	vs.builders = nil
}

// Sealed reports whether the store has been sealed.
func (vs *VerticalStore) Sealed() bool { return vs.sealed.Load() }

// NumTransactions returns the transaction count, taken as the largest tid
// seen plus one (tids that never occur still count).
func (vs *VerticalStore) NumTransactions() int { return vs.nTx }

// NumItems returns the number of distinct item-ids the store was allocated
// for, i.e. the size of the vocabulary it was built from.
func (vs *VerticalStore) NumItems() int { return vs.nItems }

// TidsetForItem returns the stored tidset for a single item, or an empty
// tidset if the item never occurred. It requires the store to be sealed.
func (vs *VerticalStore) TidsetForItem(item int) (Tidset, error) {
	if !vs.sealed.Load() {
		return Tidset{}, newError(SealViolation, "TidsetForItem called before Seal")
	}
	if item < 0 || item >= vs.nItems {
		return Tidset{}, nil
	}
	return vs.tidsets[item], nil
}

// TidsetForItemset computes the tidset for an itemset by intersecting its
// members' tidsets in ascending-size order: the smallest tidset is
// intersected with the rest in turn, stopping early once the running
// intersection is empty. Size-ascending order minimizes intermediate tidset
// sizes, since |intersection| <= min(|a|,|b|).
func (vs *VerticalStore) TidsetForItemset(s Itemset) (Tidset, error) {
	if !vs.sealed.Load() {
		return Tidset{}, newError(SealViolation, "TidsetForItemset called before Seal")
	}
	items := s.Items()
	switch len(items) {
	case 0:
		return Tidset{}, nil
	case 1:
		return vs.TidsetForItem(items[0])
	}

	tidsets := make([]Tidset, len(items))
	for i, it := range items {
		ts, err := vs.TidsetForItem(it)
		if err != nil {
			return Tidset{}, err
		}
		tidsets[i] = ts
	}
	sortTidsetsBySize(tidsets)

	result := tidsets[0]
	for i := 1; i < len(tidsets) && result.Len() > 0; i++ {
		result = Intersect(result, tidsets[i])
	}
	return result, nil
}

func sortTidsetsBySize(ts []Tidset) {
	sort.Slice(ts, func(i, j int) bool { return ts[i].Len() < ts[j].Len() })
}
