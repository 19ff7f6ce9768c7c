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

package ingest

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"puminer/pkg/puminer"
)

// rawEntry is a single parsed (transaction, item, probability) triple,
// before the item name has been resolved to a dense id via Vocabulary.
type rawEntry struct {
	tid    int
	item   string
	itemID int
	prob   float64
}

// Parse reads the line-oriented transaction grammar: an optional header
// line of exactly two integers (ignored beyond validating its shape), then
// data lines of the form "<tid> <item>:<prob> <item>:<prob> ...". Blank or
// all-whitespace lines and any line that does not parse as a data line are
// skipped silently. Parse returns a fresh Vocabulary and a sealed
// VerticalStore built from every well-formed line.
func Parse(r io.Reader) (*puminer.Vocabulary, *puminer.VerticalStore, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	vocab := puminer.NewVocabulary()
	var entries []rawEntry

	firstLine := true
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			firstLine = false
			continue
		}

		if firstLine {
			firstLine = false
			if isHeaderLine(trimmed) {
				continue
			}
		}

		parsed, ok := parseDataLine(trimmed)
		if !ok {
			continue
		}
		entries = append(entries, parsed...)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("ingest: reading input: %w", err)
	}

	for i := range entries {
		entries[i].itemID = vocab.Intern(entries[i].item)
	}

	store := puminer.NewVerticalStore(vocab.Size())
	for _, e := range entries {
		if err := store.Add(e.tid, e.itemID, e.prob); err != nil {
			return nil, nil, err
		}
	}
	store.Seal()

	return vocab, store, nil
}

// isHeaderLine reports whether a line parses as exactly two whitespace
// separated integers, the shape of the optional header line.
func isHeaderLine(line string) bool {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return false
	}
	for _, f := range fields {
		if _, err := strconv.Atoi(f); err != nil {
			return false
		}
	}
	return true
}

// parseDataLine parses "<tid> <item>:<prob> <item>:<prob> ..." into raw
// entries. It returns ok=false for anything that does not fit that shape,
// so the caller can skip it silently rather than aborting the whole parse.
func parseDataLine(line string) ([]rawEntry, bool) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return nil, false
	}
	tid, err := strconv.Atoi(fields[0])
	if err != nil {
		return nil, false
	}

	entries := make([]rawEntry, 0, len(fields)-1)
	for _, f := range fields[1:] {
		item, probStr, found := strings.Cut(f, ":")
		if !found || item == "" {
			return nil, false
		}
		prob, err := strconv.ParseFloat(probStr, 64)
		if err != nil {
			return nil, false
		}
		entries = append(entries, rawEntry{tid: tid, item: item, prob: prob})
	}
	return entries, true
}

// Format writes a canonical text rendering of store, one line per
// transaction, with items ordered by ascending item-id for determinism. It
// requires store to be sealed.
func Format(w io.Writer, vocab *puminer.Vocabulary, store *puminer.VerticalStore) error {
	nTx := store.NumTransactions()
	nItems := store.NumItems()

	perTx := make([][]formattedItem, nTx)
	for item := 0; item < nItems; item++ {
		ts, err := store.TidsetForItem(item)
		if err != nil {
			return err
		}
		for _, e := range ts.Entries() {
			perTx[e.TID] = append(perTx[e.TID], formattedItem{item: item, prob: e.Prob})
		}
	}

	for tid := 0; tid < nTx; tid++ {
		items := perTx[tid]
		if len(items) == 0 {
			continue
		}
		sort.Slice(items, func(i, j int) bool { return items[i].item < items[j].item })

		var b strings.Builder
		fmt.Fprintf(&b, "%d", tid)
		for _, it := range items {
			fmt.Fprintf(&b, " %s:%s", vocab.Name(it.item), strconv.FormatFloat(it.prob, 'g', -1, 64))
		}
		b.WriteByte('\n')
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
	}
	return nil
}

type formattedItem struct {
	item int
	prob float64
}
