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
	"context"
	"fmt"
	"sort"
	"sync"

	"puminer/internal/telemetry/minestats"
	"puminer/pkg/puminer"
)

// MiningEngine drives the three-phase search described for this package: a
// data-parallel scan for frequent 1-itemsets, seeding of the search
// frontier, and a closure-aware best-first enumeration bounded by a top-k
// heap. One engine serves exactly one run; build a new one per call.
type MiningEngine struct {
	cfg      Config
	store    *puminer.VerticalStore
	calc     puminer.SupportCalculator
	cache    *EvaluationCache
	reporter *Reporter
}

// NewEngine validates cfg, resolves the configured calculator, and wires a
// cache sized to the configured parallelism.
func NewEngine(cfg Config, store *puminer.VerticalStore, reporter *Reporter) (*MiningEngine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	calc, err := puminer.NewCalculator(cfg.Calculator)
	if err != nil {
		return nil, err
	}
	if reporter == nil {
		reporter = NewReporter()
	}
	return &MiningEngine{
		cfg:      cfg,
		store:    store,
		calc:     calc,
		cache:    NewEvaluationCache(cfg.resolvedWorkers()),
		reporter: reporter,
	}, nil
}

// itemStats holds the per-item results of Phase 1, indexed by item-id.
type itemStats struct {
	singletons []puminer.Itemset
	support    []int // -1 for items that did not pass minsup (or never occurred)
	prob       []float64
	tidset     []puminer.Tidset
}

// Run executes all three phases and returns the top-k closed patterns
// sorted by (support desc, probability desc, itemset lexicographic asc).
// It honors ctx cancellation cooperatively between Phase 3 iterations. If
// ctx is cancelled before the search completes, Run returns the patterns
// accepted into the heap so far together with an error wrapping
// context.Canceled; the cache, heap, and queue are left in a valid partial
// state.
func (e *MiningEngine) Run(ctx context.Context) ([]Pattern, error) {
	stats := e.runPhase1(ctx)
	frequentItems := e.runPhase2(stats)
	topK := e.runPhase3(ctx, stats, frequentItems)
	patterns := finalizeSnapshot(topK)
	if err := ctx.Err(); err != nil {
		return patterns, fmt.Errorf("mining cancelled with %d pattern(s) accepted: %w", len(patterns), context.Canceled)
	}
	return patterns, nil
}

// runPhase1 evaluates every item-id's singleton itemset in parallel,
// bounded by cfg.resolvedWorkers() concurrent goroutines, and seeds the
// cache with every itemset that clears minsup.
func (e *MiningEngine) runPhase1(ctx context.Context) *itemStats {
	e.reporter.phaseStart("phase-1")

	nItems := e.store.NumItems()
	nTx := e.store.NumTransactions()
	stats := &itemStats{
		singletons: make([]puminer.Itemset, nItems),
		support:    make([]int, nItems),
		prob:       make([]float64, nItems),
		tidset:     make([]puminer.Tidset, nItems),
	}
	for i := 0; i < nItems; i++ {
		stats.support[i] = -1
		stats.singletons[i] = puminer.NewItemsetOf(i)
	}

	sem := make(chan struct{}, e.cfg.resolvedWorkers())
	var wg sync.WaitGroup
	wg.Add(nItems)
	for i := 0; i < nItems; i++ {
		sem <- struct{}{}
		go func(id int) {
			defer wg.Done()
			defer func() { <-sem }()
			if ctx.Err() != nil {
				return
			}
			e.evaluateSingleton(stats, nTx, id)
		}(i)
	}
	wg.Wait()

	accepted := 0
	for _, s := range stats.support {
		if s >= 0 {
			accepted++
		}
	}
	e.reporter.phaseComplete("phase-1", accepted)
	return stats
}

func (e *MiningEngine) evaluateSingleton(stats *itemStats, nTx, id int) {
	ts, err := e.store.TidsetForItem(id)
	if err != nil || ts.Len() == 0 {
		return
	}
	s, p := e.calc.SupportAndProbabilitySparse(ts, nTx, e.cfg.Tau)
	if s < e.cfg.MinSupport {
		e.reporter.candidatePruned(Candidate{Itemset: stats.singletons[id], Tidset: ts, Support: s, Probability: p}, PruneItemSupport)
		return
	}
	stats.support[id] = s
	stats.prob[id] = p
	stats.tidset[id] = ts
	e.cache.GetOrCompute(stats.singletons[id].Hash(), func() *CacheEntry {
		return &CacheEntry{Tidset: ts, Support: s, Probability: p}
	})
}

// runPhase2 builds the frequent-item list (sorted by support descending,
// ties by id for determinism) that Phase 3's closure check iterates over.
func (e *MiningEngine) runPhase2(stats *itemStats) []int {
	e.reporter.phaseStart("phase-2")

	frequentItems := make([]int, 0, len(stats.support))
	for id, s := range stats.support {
		if s >= 0 {
			frequentItems = append(frequentItems, id)
		}
	}
	sort.SliceStable(frequentItems, func(i, j int) bool {
		a, b := frequentItems[i], frequentItems[j]
		if stats.support[a] != stats.support[b] {
			return stats.support[a] > stats.support[b]
		}
		return a < b
	})

	e.reporter.phaseComplete("phase-2", len(frequentItems))
	return frequentItems
}

// runPhase3 runs the closure-aware best-first enumeration to completion (or
// until ctx is cancelled) and returns the populated top-k heap. It seeds the
// frontier with the frequent 1-itemsets, per the singleton-only seeding
// decision recorded in DESIGN.md.
func (e *MiningEngine) runPhase3(ctx context.Context, stats *itemStats, frequentItems []int) *TopKHeap {
	seeds := make([]Candidate, 0, len(frequentItems))
	for _, id := range frequentItems {
		seeds = append(seeds, Candidate{
			Itemset:     stats.singletons[id],
			Tidset:      stats.tidset[id],
			Support:     stats.support[id],
			Probability: stats.prob[id],
		})
	}
	return e.enumerate(ctx, stats, frequentItems, seeds)
}

// enumerate runs the closure-aware best-first search starting from an
// arbitrary set of seed candidates, against a freshly allocated top-k heap.
// It is factored out of runPhase3 so alternative seeding strategies (for
// example, seeding from 2-itemsets instead of singletons, per the
// regression test required by spec.md §9) can be driven through the
// identical search loop and compared for output equivalence.
func (e *MiningEngine) enumerate(ctx context.Context, stats *itemStats, frequentItems []int, seeds []Candidate) *TopKHeap {
	return e.enumerateInto(ctx, stats, frequentItems, NewTopKHeap(e.cfg.K), seeds)
}

// enumerateInto is enumerate but against a caller-supplied heap, letting a
// caller pre-populate results (for example, closed singletons found by an
// out-of-band closure check) before the frontier runs.
func (e *MiningEngine) enumerateInto(ctx context.Context, stats *itemStats, frequentItems []int, topK *TopKHeap, seeds []Candidate) *TopKHeap {
	e.reporter.phaseStart("phase-3")

	pq := &candidatePQ{}
	for _, seed := range seeds {
		heap.Push(pq, candidatePQItem{seed})
	}

	processed := 0
	for pq.Len() > 0 {
		if ctx.Err() != nil {
			break
		}
		X := heap.Pop(pq).(candidatePQItem).Candidate
		processed++
		minestats.ObserveCandidateProcessed()

		threshold := e.threshold(topK)
		if topK.IsFull() && X.Support < threshold {
			break
		}

		isClosed, extensions := e.closureCheckAndExtend(X, stats, frequentItems, topK, threshold)
		if isClosed {
			if topK.Insert(Pattern{Itemset: X.Itemset, Support: X.Support, Probability: X.Probability}) {
				e.reporter.patternFound(Pattern{Itemset: X.Itemset, Support: X.Support, Probability: X.Probability})
			}
		}

		threshold = e.threshold(topK)
		for _, ext := range extensions {
			if ext.Support >= threshold || !topK.IsFull() {
				heap.Push(pq, candidatePQItem{ext})
			} else {
				e.reporter.candidatePruned(ext, PruneUpperBound)
			}
		}
	}

	e.reporter.phaseComplete("phase-3", processed)
	minestats.ObserveCacheSize(e.cache.Len())
	minestats.ObserveTopKMinSupport(topK.MinSupport())
	return topK
}

// threshold returns the current dynamic pruning threshold: minsup while the
// heap has room, otherwise the larger of minsup and the heap's current
// minimum retained support.
func (e *MiningEngine) threshold(topK *TopKHeap) int {
	if !topK.IsFull() {
		return e.cfg.MinSupport
	}
	if m := topK.MinSupport(); m > e.cfg.MinSupport {
		return m
	}
	return e.cfg.MinSupport
}

// closureCheckAndExtend implements the per-candidate closure check and
// extension generation: it determines whether X is closed with respect to
// every remaining frequent item, and collects the canonical extensions
// (those adding an item greater than X's maximum member) worth enqueuing.
func (e *MiningEngine) closureCheckAndExtend(X Candidate, stats *itemStats, frequentItems []int, topK *TopKHeap, threshold int) (bool, []Candidate) {
	isClosed := true
	var extensions []Candidate
	closureCheckDone := false
	maxX := X.Itemset.Max()
	members := X.Itemset.Items()
	nTx := e.store.NumTransactions()

	for _, id := range frequentItems {
		if X.Itemset.Contains(id) {
			continue
		}
		sE := stats.support[id]
		if !closureCheckDone && sE < X.Support {
			closureCheckDone = true
		}
		needClosureCheck := !closureCheckDone && isClosed
		needExtension := id > maxX

		if !needClosureCheck && !needExtension {
			continue
		}

		upperBound := sE
		if X.Support < upperBound {
			upperBound = X.Support
		}
		if len(members) >= 3 && topK.IsFull() && needExtension {
			for _, xj := range members {
				pair := stats.singletons[xj].Union(stats.singletons[id])
				entry, ok := e.cache.Get(pair.Hash())
				if !ok {
					continue
				}
				if entry.Support < upperBound {
					upperBound = entry.Support
				}
				if upperBound < threshold {
					break
				}
			}
		}

		if !needClosureCheck && !(needExtension && (upperBound >= threshold || !topK.IsFull())) {
			continue
		}

		xe := X.Itemset.Union(stats.singletons[id])
		key := xe.Hash()

		var sXe int
		var pXe float64
		var tXe puminer.Tidset
		if entry, ok := e.cache.Get(key); ok {
			sXe, pXe, tXe = entry.Support, entry.Probability, entry.Tidset
		} else {
			tXe = puminer.Intersect(X.Tidset, stats.tidset[id])

			if tXe.Len() < threshold && topK.IsFull() && !needClosureCheck {
				e.cache.GetOrCompute(key, func() *CacheEntry { return &CacheEntry{Tidset: tXe} })
				e.reporter.candidatePruned(Candidate{Itemset: xe, Tidset: tXe}, PruneTidsetSize)
				continue
			}
			if needClosureCheck && tXe.Len() < X.Support {
				if !needExtension {
					e.cache.GetOrCompute(key, func() *CacheEntry { return &CacheEntry{Tidset: tXe} })
					continue
				}
				needClosureCheck = false
			}

			sXe, pXe = e.calc.SupportAndProbabilitySparse(tXe, nTx, e.cfg.Tau)
			e.cache.GetOrCompute(key, func() *CacheEntry {
				return &CacheEntry{Tidset: tXe, Support: sXe, Probability: pXe}
			})
		}

		if needClosureCheck && sXe == X.Support {
			isClosed = false
		}
		if needExtension && sXe >= e.cfg.MinSupport {
			extensions = append(extensions, Candidate{Itemset: xe, Tidset: tXe, Support: sXe, Probability: pXe})
		}
	}

	return isClosed, extensions
}

// finalizeSnapshot orders the heap's contents for reporting: (support,
// probability) descending per the heap's own ordering, with ties broken by
// ascending lexicographic itemset order for determinism across runs.
func finalizeSnapshot(topK *TopKHeap) []Pattern {
	patterns := topK.Snapshot()
	sort.SliceStable(patterns, func(i, j int) bool {
		a, b := patterns[i], patterns[j]
		if a.Support != b.Support {
			return a.Support > b.Support
		}
		if a.Probability != b.Probability {
			return a.Probability > b.Probability
		}
		return lexLess(a.Itemset.Items(), b.Itemset.Items())
	})
	return patterns
}

func lexLess(a, b []int) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}

// candidatePQItem wraps a Candidate for use in candidatePQ.
type candidatePQItem struct {
	Candidate
}

// candidatePQ is a max-heap over candidates ordered by (support desc,
// probability desc, itemset size asc), matching the priority queue
// described for Phase 3.
type candidatePQ []candidatePQItem

func (pq candidatePQ) Len() int { return len(pq) }

func (pq candidatePQ) Less(i, j int) bool {
	a, b := pq[i].Candidate, pq[j].Candidate
	if a.Support != b.Support {
		return a.Support > b.Support
	}
	if a.Probability != b.Probability {
		return a.Probability > b.Probability
	}
	return a.Itemset.Len() < b.Itemset.Len()
}

func (pq candidatePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *candidatePQ) Push(x interface{}) {
	*pq = append(*pq, x.(candidatePQItem))
}

func (pq *candidatePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}
