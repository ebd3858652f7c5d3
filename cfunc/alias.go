// Copyright 2026 go-cfunc Authors
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

package cfunc

// zeroCopyEligible decides whether kernels may read and write caller memory
// directly. Eligibility requires every involved array to be canonical
// row-major contiguous and no pair of them to overlap. The strided kernels
// iterate element by element with no ordering guarantee against aliasing
// hazards, so a write for one point could corrupt a not-yet-consumed read of
// another; the buffered path is immune because each point's inputs are fully
// gathered into scratch before any output is scattered back.
//
// The overlap test is conservative: a "maybe overlapping" verdict counts as
// overlapping and only ever costs the copy through scratch. For the
// arbitrary-precision kind the array elements are pointers, so two disjoint
// slices can still alias element storage that range comparison cannot see;
// that kind always takes the buffered path.
func zeroCopyEligible[T Elem](out *Array[T], req Request[T]) bool {
	if KindOf[T]() == KindBig {
		return false
	}

	views := make([]*Array[T], 0, 4)
	views = append(views, req.Inputs, out)
	if req.Pars != nil {
		views = append(views, req.Pars)
	}
	if req.Time != nil {
		views = append(views, req.Time.array())
	}

	for _, v := range views {
		if !v.Contiguous() {
			return false
		}
	}
	for i := 0; i < len(views); i++ {
		for j := i + 1; j < len(views); j++ {
			if views[i].overlaps(views[j]) {
				return false
			}
		}
	}
	return true
}
