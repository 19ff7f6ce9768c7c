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

// divideConquerDistribution builds the same merge tree for both
// FFTDivideConquer and NaiveDivideConquer: each transaction becomes the
// length-2 polynomial [1-p, p] (transactions with p < MinProb or p > 1 are
// filtered out first, same skip rule as the DP form), and the tree merges
// pairs of polynomials bottom-up using the supplied multiply function.
// Depth is O(log n); multiply determines per-level cost.
func divideConquerDistribution(probs []float64, multiply func(a, b []float64) []float64) []float64 {
	n := len(probs)
	polys := make([][]float64, 0, n)
	for _, p := range probs {
		if p < MinProb || p > 1 {
			continue
		}
		polys = append(polys, []float64{1 - p, p})
	}
	if len(polys) == 0 {
		dist := make([]float64, n+1)
		dist[0] = 1
		return dist
	}

	for len(polys) > 1 {
		merged := make([][]float64, 0, (len(polys)+1)/2)
		for i := 0; i < len(polys); i += 2 {
			if i+1 < len(polys) {
				merged = append(merged, multiply(polys[i], polys[i+1]))
			} else {
				merged = append(merged, polys[i])
			}
		}
		polys = merged
	}

	dist := make([]float64, n+1)
	copy(dist, polys[0])
	return dist
}

// fftDCDistribution is the FFT-accelerated divide-and-conquer calculator:
// each merge multiplies two polynomials via multiplyPolynomials (Cooley-Tukey
// FFT, pointwise product, inverse FFT). Total time O(n log^2 n).
func fftDCDistribution(probs []float64) []float64 {
	return divideConquerDistribution(probs, multiplyPolynomials)
}

// naiveDCDistribution uses the identical merge tree but convolves directly
// in O(|a|*|b|) per merge, for a total of O(n^2 log n). It exists to
// cross-check FFTDivideConquer and as a simpler, still-parallelizable
// structure.
func naiveDCDistribution(probs []float64) []float64 {
	return divideConquerDistribution(probs, convolve)
}

// convolve multiplies two real polynomials directly: the classic O(|a|*|b|)
// textbook convolution.
func convolve(a, b []float64) []float64 {
	out := make([]float64, len(a)+len(b)-1)
	for i, av := range a {
		if av == 0 {
			continue
		}
		for j, bv := range b {
			out[i+j] += av * bv
		}
	}
	return out
}
