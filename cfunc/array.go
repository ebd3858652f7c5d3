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

import (
	"fmt"
	"unsafe"
)

// Array is a rank-1 or rank-2 strided view over a flat backing slice, in the
// style of a row-major ndarray. Rank-2 arrays are indexed [row, column]; for
// evaluation requests rows are variables/outputs/parameters and columns are
// evaluation points.
//
// A view is canonical when its elements are laid out row-major contiguous
// with no padding; only canonical views are eligible for zero-copy
// evaluation. Views produced by Transpose or Step share storage with their
// parent and are generally not canonical.
type Array[T Elem] struct {
	data    []T
	ndim    int
	shape   [2]int
	strides [2]int
	ro      bool
}

// NewArray allocates a contiguous zero-valued array of the given shape
// (one or two dimensions). For the arbitrary-precision kind the elements are
// left unconstructed; use NewArrayPrec instead.
func NewArray[T Elem](shape ...int) (*Array[T], error) {
	a, err := newShaped[T](shape)
	if err != nil {
		return nil, err
	}
	a.data = make([]T, a.size())
	return a, nil
}

// NewArrayPrec allocates a contiguous zero-valued array whose elements are
// constructed with the given significand width. prec is ignored for the
// hardware kinds.
func NewArrayPrec[T Elem](prec uint, shape ...int) (*Array[T], error) {
	a, err := NewArray[T](shape...)
	if err != nil {
		return nil, err
	}
	if KindOf[T]() == KindBig {
		for i := range a.data {
			a.data[i] = newElem[T](prec)
		}
	}
	return a, nil
}

// FromSlice wraps an existing flat slice as a canonical row-major array of
// the given shape. The slice is aliased, not copied.
func FromSlice[T Elem](data []T, shape ...int) (*Array[T], error) {
	a, err := newShaped[T](shape)
	if err != nil {
		return nil, err
	}
	if len(data) != a.size() {
		return nil, fmt.Errorf("cfunc: slice of length %d cannot be shaped as %v (need %d elements)", len(data), shape, a.size())
	}
	a.data = data
	return a, nil
}

// NewStrided wraps a flat slice as a view with explicit shape and element
// strides. Strides must be positive for every non-empty dimension, and the
// view must fit within the slice.
func NewStrided[T Elem](data []T, shape, strides []int) (*Array[T], error) {
	a, err := newShaped[T](shape)
	if err != nil {
		return nil, err
	}
	if len(strides) != a.ndim {
		return nil, fmt.Errorf("cfunc: %d strides supplied for a rank-%d view", len(strides), a.ndim)
	}
	maxOff := 0
	for d := 0; d < a.ndim; d++ {
		if strides[d] <= 0 {
			return nil, fmt.Errorf("cfunc: stride %d in dimension %d, strides must be positive", strides[d], d)
		}
		a.strides[d] = strides[d]
		if shape[d] > 0 {
			maxOff += (shape[d] - 1) * strides[d]
		}
	}
	if a.size() > 0 && maxOff >= len(data) {
		return nil, fmt.Errorf("cfunc: view of shape %v with strides %v exceeds slice of length %d", shape, strides, len(data))
	}
	a.data = data
	return a, nil
}

func newShaped[T Elem](shape []int) (*Array[T], error) {
	if len(shape) < 1 || len(shape) > 2 {
		return nil, fmt.Errorf("cfunc: arrays must have 1 or 2 dimensions, not %d", len(shape))
	}
	a := &Array[T]{ndim: len(shape)}
	for d, s := range shape {
		if s < 0 {
			return nil, fmt.Errorf("cfunc: negative size %d in dimension %d", s, d)
		}
		a.shape[d] = s
	}
	// Canonical row-major strides; NewStrided overwrites them.
	if a.ndim == 1 {
		a.strides[0] = 1
	} else {
		a.strides[0] = a.shape[1]
		a.strides[1] = 1
	}
	return a, nil
}

// Rank returns the number of dimensions (1 or 2).
func (a *Array[T]) Rank() int { return a.ndim }

// Shape returns the size of dimension d.
func (a *Array[T]) Shape(d int) int { return a.shape[d] }

// Writable reports whether the array accepts writes.
func (a *Array[T]) Writable() bool { return !a.ro }

// Freeze marks the array read-only. Writes through Set panic afterwards.
func (a *Array[T]) Freeze() { a.ro = true }

// Contiguous reports whether the view is canonical row-major contiguous.
// Empty views are trivially contiguous.
func (a *Array[T]) Contiguous() bool {
	if a.size() == 0 {
		return true
	}
	if a.ndim == 1 {
		return a.strides[0] == 1
	}
	return a.strides[1] == 1 && a.strides[0] == a.shape[1]
}

// Data returns the flat backing slice of a canonical view, or nil when the
// view is not contiguous.
func (a *Array[T]) Data() []T {
	if !a.Contiguous() {
		return nil
	}
	return a.data[:a.size()]
}

// At returns the element at the given indices, one per dimension.
func (a *Array[T]) At(ix ...int) T {
	if len(ix) != a.ndim {
		panic(fmt.Sprintf("cfunc: %d indices into a rank-%d array", len(ix), a.ndim))
	}
	if a.ndim == 1 {
		return a.at1(ix[0])
	}
	return a.at2(ix[0], ix[1])
}

// Set stores v at the given indices. Panics if the array is frozen.
func (a *Array[T]) Set(v T, ix ...int) {
	if a.ro {
		panic("cfunc: write to a read-only array")
	}
	if len(ix) != a.ndim {
		panic(fmt.Sprintf("cfunc: %d indices into a rank-%d array", len(ix), a.ndim))
	}
	if a.ndim == 1 {
		a.set1(ix[0], v)
	} else {
		a.set2(ix[0], ix[1], v)
	}
}

// Transpose returns a rank-2 view with the axes swapped, sharing storage
// with the receiver.
func (a *Array[T]) Transpose() (*Array[T], error) {
	if a.ndim != 2 {
		return nil, fmt.Errorf("cfunc: transpose of a rank-%d array", a.ndim)
	}
	t := *a
	t.shape[0], t.shape[1] = a.shape[1], a.shape[0]
	t.strides[0], t.strides[1] = a.strides[1], a.strides[0]
	return &t, nil
}

// Step returns a view selecting every step-th index along dimension d,
// sharing storage with the receiver.
func (a *Array[T]) Step(d, step int) (*Array[T], error) {
	if d < 0 || d >= a.ndim {
		return nil, fmt.Errorf("cfunc: dimension %d out of range for a rank-%d array", d, a.ndim)
	}
	if step <= 0 {
		return nil, fmt.Errorf("cfunc: step must be positive, not %d", step)
	}
	s := *a
	s.shape[d] = (a.shape[d] + step - 1) / step
	s.strides[d] = a.strides[d] * step
	return &s, nil
}

func (a *Array[T]) size() int {
	n := a.shape[0]
	if a.ndim == 2 {
		n *= a.shape[1]
	}
	return n
}

func (a *Array[T]) at1(i int) T    { return a.data[i*a.strides[0]] }
func (a *Array[T]) at2(i, j int) T { return a.data[i*a.strides[0]+j*a.strides[1]] }

func (a *Array[T]) set1(i int, v T) { assignElem(&a.data[i*a.strides[0]], v) }
func (a *Array[T]) set2(i, j int, v T) {
	assignElem(&a.data[i*a.strides[0]+j*a.strides[1]], v)
}

// overlaps conservatively reports whether the backing stores of a and b may
// share memory. The test compares the address ranges of the full backing
// slices, so views over disjoint parts of one slice still count as
// overlapping. It is a best-effort safety check, not a proof of disjointness;
// a true result only ever forces the slower buffered path.
func (a *Array[T]) overlaps(b *Array[T]) bool {
	if a.size() == 0 || b.size() == 0 || len(a.data) == 0 || len(b.data) == 0 {
		return false
	}
	aLo, aHi := sliceRange(a.data)
	bLo, bHi := sliceRange(b.data)
	return aLo < bHi && bLo < aHi
}

func sliceRange[T Elem](s []T) (lo, hi uintptr) {
	lo = uintptr(unsafe.Pointer(unsafe.SliceData(s)))
	hi = lo + uintptr(len(s))*unsafe.Sizeof(s[0])
	return lo, hi
}
