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
	"strconv"
	"sync"

	"github.com/dgryski/go-rendezvous"

	"puminer/pkg/puminer"
)

// CacheEntry is the memoized result of evaluating a candidate itemset's
// tidset and support once, so that the closure check and any later
// extension attempt never recompute it.
type CacheEntry struct {
	Tidset      puminer.Tidset
	Support     int
	Probability float64
}

// shard is a single lock-protected partition of the cache. Splitting the
// cache into shards lets the goroutines of Phase 1's parallel singleton scan
// populate different itemsets concurrently without contending on one global
// lock.
type shard struct {
	mu      sync.RWMutex
	entries map[uint64]*CacheEntry
}

// EvaluationCache memoizes per-itemset evaluation results across the
// search, keyed by the itemset's bitset hash. It is sharded and the shard
// for a given key is chosen by rendezvous (highest random weight) hashing,
// so the assignment stays stable as the cache is read from many goroutines
// and requires no central directory.
type EvaluationCache struct {
	shards []*shard
	nodes  []string
	rv     *rendezvous.Rendezvous
}

// NewEvaluationCache builds a cache with the given number of shards. A
// non-positive count defaults to the number of Phase 1 workers so shard
// contention scales with the configured parallelism.
func NewEvaluationCache(shardCount int) *EvaluationCache {
	if shardCount < 1 {
		shardCount = defaultWorkerCount()
	}
	nodes := make([]string, shardCount)
	shards := make([]*shard, shardCount)
	for i := range shards {
		nodes[i] = strconv.Itoa(i)
		shards[i] = &shard{entries: make(map[uint64]*CacheEntry)}
	}
	return &EvaluationCache{
		shards: shards,
		nodes:  nodes,
		rv:     rendezvous.New(nodes, rendezvousHash),
	}
}

func rendezvousHash(s string) uint64 {
	var h uint64 = 14695981039346656037
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= 1099511628211
	}
	return h
}

func (c *EvaluationCache) shardFor(key uint64) *shard {
	node := c.rv.Lookup(strconv.FormatUint(key, 16))
	idx, _ := strconv.Atoi(node)
	return c.shards[idx]
}

// Get returns the cached entry for an itemset's hash, if present.
func (c *EvaluationCache) Get(key uint64) (*CacheEntry, bool) {
	s := c.shardFor(key)
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[key]
	return e, ok
}

// GetOrCompute returns the cached entry for key, computing and storing it on
// a miss. compute runs without a lock held, so concurrent callers racing on
// the same key may each run it; only the first result is stored, and the
// losers discard their own computation and return the winner's entry.
func (c *EvaluationCache) GetOrCompute(key uint64, compute func() *CacheEntry) *CacheEntry {
	s := c.shardFor(key)

	s.mu.RLock()
	if e, ok := s.entries[key]; ok {
		s.mu.RUnlock()
		return e
	}
	s.mu.RUnlock()

	entry := compute()

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.entries[key]; ok {
		return existing
	}
	s.entries[key] = entry
	return entry
}

// Len returns the total number of memoized entries across all shards.
func (c *EvaluationCache) Len() int {
	total := 0
	for _, s := range c.shards {
		s.mu.RLock()
		total += len(s.entries)
		s.mu.RUnlock()
	}
	return total
}
