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
	"math"
	"math/rand"
	"testing"
)

func TestMultiplyPolynomials_SpecScenarioS4(t *testing.T) {
	got := multiplyPolynomials([]float64{1, 2}, []float64{3, 4})
	want := []float64{3, 10, 8}
	assertFloatSliceClose(t, got, want, 1e-9)
}

func TestMultiplyPolynomials_AgainstNaiveConvolve(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 30; trial++ {
		a := randomPoly(rng, 1+rng.Intn(20))
		b := randomPoly(rng, 1+rng.Intn(20))

		got := multiplyPolynomials(a, b)
		want := convolve(a, b)
		assertFloatSliceClose(t, got, want, 1e-6)
	}
}

func randomPoly(rng *rand.Rand, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = rng.Float64()*4 - 2
	}
	return out
}

func assertFloatSliceClose(t *testing.T, got, want []float64, tol float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d (got=%v want=%v)", len(got), len(want), got, want)
	}
	for i := range got {
		if math.Abs(got[i]-want[i]) > tol {
			t.Fatalf("index %d: got %v, want %v (tol %v)", i, got[i], want[i], tol)
		}
	}
}

func TestNextPowerOfTwo(t *testing.T) {
	cases := map[int]int{1: 1, 2: 2, 3: 4, 4: 4, 5: 8, 1023: 1024, 1024: 1024}
	for in, want := range cases {
		if got := nextPowerOfTwo(in); got != want {
			t.Fatalf("nextPowerOfTwo(%d) = %d, want %d", in, got, want)
		}
	}
}
