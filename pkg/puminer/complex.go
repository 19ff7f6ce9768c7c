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

// complexNum is a minimal complex number used by the FFT primitive. We roll
// our own rather than using the builtin complex128 so the FFT's internal
// butterfly arithmetic reads the same way the generating-function math in
// this package is specified: as explicit real/imaginary pairs.
type complexNum struct {
	re, im float64
}

func (a complexNum) add(b complexNum) complexNum {
	return complexNum{a.re + b.re, a.im + b.im}
}

func (a complexNum) sub(b complexNum) complexNum {
	return complexNum{a.re - b.re, a.im - b.im}
}

func (a complexNum) mul(b complexNum) complexNum {
	return complexNum{
		re: a.re*b.re - a.im*b.im,
		im: a.re*b.im + a.im*b.re,
	}
}

func (a complexNum) conj() complexNum {
	return complexNum{a.re, -a.im}
}
