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

// Time carries the time argument of an evaluation: either a single scalar or
// a sequence with one value per evaluation point. Single evaluations require
// the scalar form; multi evaluations require a sequence of length n_evals.
// The value is normalized to a flat slice before it reaches the dispatcher.
type Time[T Elem] struct {
	vals   []T
	scalar bool
}

// ScalarTime wraps a single time value.
func ScalarTime[T Elem](v T) *Time[T] {
	return &Time[T]{vals: []T{v}, scalar: true}
}

// TimeSeq wraps one time value per evaluation point. The slice is aliased,
// not copied.
func TimeSeq[T Elem](vals []T) *Time[T] {
	return &Time[T]{vals: vals}
}

// Scalar reports whether the value was supplied in scalar form.
func (t *Time[T]) Scalar() bool { return t.scalar }

// Len returns the number of time values after normalization (1 for the
// scalar form).
func (t *Time[T]) Len() int { return len(t.vals) }

// array views the normalized values as a rank-1 canonical array, for the
// layout and overlap checks shared with the other request arrays.
func (t *Time[T]) array() *Array[T] {
	return &Array[T]{data: t.vals, ndim: 1, shape: [2]int{len(t.vals)}, strides: [2]int{1}}
}
