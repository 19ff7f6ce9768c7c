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

// polyDPDistribution computes the Poisson-binomial distribution via the
// textbook in-place dynamic program over the generating function
// G(x) = prod_i ((1-p_i) + p_i*x). Coefficients grow the active degree by
// one per transaction; iterating each update back-to-front (high degree to
// low) lets every c[i] read the previous round's c[i-1] before it is
// overwritten in this round. Time O(n^2), space O(n).
func polyDPDistribution(probs []float64) []float64 {
	n := len(probs)
	c := make([]float64, n+1)
	c[0] = 1
	degree := 0
	for _, p := range probs {
		if p < MinProb {
			// (1-p) ~= 1: this transaction contributes no real mass to the
			// distribution, so skip it entirely rather than widen degree.
			continue
		}
		for i := degree + 1; i >= 1; i-- {
			c[i] = c[i]*(1-p) + c[i-1]*p
		}
		c[0] = c[0] * (1 - p)
		degree++
	}
	return c[:n+1]
}
