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

import "sync"

// Vocabulary is a monotonically growing, thread-safe registry mapping item
// names to dense, non-negative integer ids. It is built up during load and
// then used read-only for the rest of a mining run.
type Vocabulary struct {
	mu      sync.RWMutex
	byName  map[string]int
	byID    []string
}

// NewVocabulary returns an empty vocabulary.
func NewVocabulary() *Vocabulary {
	return &Vocabulary{
		byName: make(map[string]int),
	}
}

// Intern returns the id for name, assigning the next unused id if name has
// not been seen before.
func (v *Vocabulary) Intern(name string) int {
	v.mu.RLock()
	if id, ok := v.byName[name]; ok {
		v.mu.RUnlock()
		return id
	}
	v.mu.RUnlock()

	v.mu.Lock()
	defer v.mu.Unlock()
	// Re-check under the write lock: another goroutine may have interned
	// this name between the RUnlock above and taking the write lock.
	if id, ok := v.byName[name]; ok {
		return id
	}
	id := len(v.byID)
	v.byName[name] = id
	v.byID = append(v.byID, name)
	return id
}

// Name returns the name registered for id. It is total for any id returned
// by Intern on this vocabulary; callers must not pass an unknown id.
func (v *Vocabulary) Name(id int) string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.byID[id]
}

// Size returns the number of distinct items interned so far.
func (v *Vocabulary) Size() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.byID)
}

// Lookup returns the id for name without interning it, reporting whether name
// is known.
func (v *Vocabulary) Lookup(name string) (int, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	id, ok := v.byName[name]
	return id, ok
}
