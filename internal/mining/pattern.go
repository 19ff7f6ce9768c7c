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
	"runtime"

	"puminer/pkg/puminer"
)

// Pattern is a single mined result: a closed itemset together with the
// support and probability reported for it under the configured tau.
type Pattern struct {
	Itemset     puminer.Itemset
	Support     int
	Probability float64
}

// Candidate is an itemset under consideration during the search, carrying
// the vertical data needed to evaluate and extend it without recomputing
// the tidset intersection from scratch.
type Candidate struct {
	Itemset     puminer.Itemset
	Tidset      puminer.Tidset
	Support     int
	Probability float64
}

// defaultWorkerCount picks the Phase 1 fan-out width when the caller does
// not specify one, mirroring the stripe-sizing default used elsewhere in
// this codebase: clamp GOMAXPROCS into a sane range.
func defaultWorkerCount() int {
	p := runtime.GOMAXPROCS(0)
	if p < 1 {
		return 1
	}
	if p > 64 {
		return 64
	}
	return p
}
