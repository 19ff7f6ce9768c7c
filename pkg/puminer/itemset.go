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

import "math/bits"

const wordBits = 64

// Itemset is a dense bitset over item-ids. Ids are expected to be dense
// (assigned by a Vocabulary), so a bitset scales far better than a hash set.
// An Itemset is safe to copy; Union and Insert on a value copy do not affect
// the original. Treat an Itemset placed into a cache or heap as immutable.
type Itemset struct {
	words []uint64
}

// NewItemset returns an empty itemset.
func NewItemset() Itemset {
	return Itemset{}
}

// NewItemsetOf returns an itemset containing exactly the given ids.
func NewItemsetOf(ids ...int) Itemset {
	var s Itemset
	for _, id := range ids {
		s = s.Insert(id)
	}
	return s
}

func wordIndex(id int) int { return id / wordBits }
func bitMask(id int) uint64 { return uint64(1) << uint(id%wordBits) }

// Insert returns a copy of the itemset with id added.
func (s Itemset) Insert(id int) Itemset {
	wi := wordIndex(id)
	words := s.words
	if wi >= len(words) {
		grown := make([]uint64, wi+1)
		copy(grown, words)
		words = grown
	} else {
		// Copy-on-write: never mutate the caller's backing array.
		cp := make([]uint64, len(words))
		copy(cp, words)
		words = cp
	}
	words[wi] |= bitMask(id)
	return Itemset{words: words}
}

// Contains reports whether id is a member of the itemset.
func (s Itemset) Contains(id int) bool {
	wi := wordIndex(id)
	if wi >= len(s.words) {
		return false
	}
	return s.words[wi]&bitMask(id) != 0
}

// Len returns the number of members (cardinality).
func (s Itemset) Len() int {
	n := 0
	for _, w := range s.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// IsEmpty reports whether the itemset has no members.
func (s Itemset) IsEmpty() bool {
	for _, w := range s.words {
		if w != 0 {
			return false
		}
	}
	return true
}

// Items returns the members in ascending id order.
func (s Itemset) Items() []int {
	out := make([]int, 0, s.Len())
	for wi, w := range s.words {
		for w != 0 {
			tz := bits.TrailingZeros64(w)
			out = append(out, wi*wordBits+tz)
			w &= w - 1
		}
	}
	return out
}

// Max returns the largest member id, or -1 if the itemset is empty. This is
// max_i(X) from the canonical-order rule: extensions are only generated for
// items greater than this value.
func (s Itemset) Max() int {
	for wi := len(s.words) - 1; wi >= 0; wi-- {
		if s.words[wi] != 0 {
			return wi*wordBits + (63 - bits.LeadingZeros64(s.words[wi]))
		}
	}
	return -1
}

// Union returns a new itemset containing every member of s and other.
func (s Itemset) Union(other Itemset) Itemset {
	n := len(s.words)
	if len(other.words) > n {
		n = len(other.words)
	}
	words := make([]uint64, n)
	copy(words, s.words)
	for i, w := range other.words {
		words[i] |= w
	}
	return Itemset{words: words}
}

// Equal reports set equality: the same members, regardless of internal word
// length (trailing all-zero words do not affect equality).
func (s Itemset) Equal(other Itemset) bool {
	n := len(s.words)
	if len(other.words) > n {
		n = len(other.words)
	}
	for i := 0; i < n; i++ {
		var a, b uint64
		if i < len(s.words) {
			a = s.words[i]
		}
		if i < len(other.words) {
			b = other.words[i]
		}
		if a != b {
			return false
		}
	}
	return true
}

// Hash returns a stable hash consistent with Equal: two equal itemsets always
// hash identically regardless of internal representation (trailing zero
// words are trimmed before folding).
func (s Itemset) Hash() uint64 {
	end := len(s.words)
	for end > 0 && s.words[end-1] == 0 {
		end--
	}
	var h uint64 = 14695981039346656037 // FNV-1a offset basis
	const prime uint64 = 1099511628211
	for i := 0; i < end; i++ {
		w := s.words[i]
		for b := 0; b < 8; b++ {
			h ^= (w >> (8 * uint(b))) & 0xff
			h *= prime
		}
	}
	return h
}
