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

// Package ingest turns a text-file transaction listing into the sealed,
// vertical form the mining engine consumes: a Vocabulary assigning dense
// item-ids and a VerticalStore of per-item tidsets.
package ingest

import "puminer/pkg/puminer"

// UncertainDatabase is the contract the mining engine needs from a loaded
// transaction source. Implementations are expected to be backed by an
// already-sealed puminer.VerticalStore.
type UncertainDatabase interface {
	// Size returns the total number of transactions.
	Size() int
	// Vocabulary returns the item-name <-> id registry used to load this
	// database.
	Vocabulary() *puminer.Vocabulary
	// TidsetFor returns the already-sorted, already-intersected tidset for
	// an itemset, per the VerticalStore.TidsetForItemset contract.
	TidsetFor(s puminer.Itemset) (puminer.Tidset, error)
	// Store exposes the underlying vertical store, which the mining engine
	// needs directly for its Phase 1 per-item scan.
	Store() *puminer.VerticalStore
}

// TextDatabase is an in-memory UncertainDatabase built by parsing the line
// grammar in textformat.go.
type TextDatabase struct {
	vocab *puminer.Vocabulary
	store *puminer.VerticalStore
	size  int
}

// NewTextDatabase pairs store with vocab, producing a ready-to-query
// database. It does not seal store; the caller must have already Sealed it.
func NewTextDatabase(vocab *puminer.Vocabulary, store *puminer.VerticalStore) *TextDatabase {
	return &TextDatabase{vocab: vocab, store: store, size: store.NumTransactions()}
}

func (d *TextDatabase) Size() int                        { return d.size }
func (d *TextDatabase) Vocabulary() *puminer.Vocabulary   { return d.vocab }
func (d *TextDatabase) Store() *puminer.VerticalStore     { return d.store }
func (d *TextDatabase) TidsetFor(s puminer.Itemset) (puminer.Tidset, error) {
	return d.store.TidsetForItemset(s)
}
