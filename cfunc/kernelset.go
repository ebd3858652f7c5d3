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

import "fmt"

// Kernel is the fixed-size compiled kernel form:
//
//	out[i]  receives output i
//	in[i]   holds variable i
//	pars[i] holds parameter i
//	tm[0]   holds the time value
//
// The scalar form processes exactly one evaluation point per call. The batch
// form processes exactly SIMDWidth consecutive points, laid out lane-minor:
// variable i, lane j lives at in[i*width+j]. A nil slice stands in for an
// unused dimension (no variables, no parameters, not time-dependent); a
// kernel must never index a nil slice for a dimension it does not use.
type Kernel[T Elem] func(out, in, pars, tm []T)

// StridedKernel is the strided compiled kernel form. It reads and writes
// directly out of row-major multi-evaluation storage: variable i, point j
// lives at in[i*stride+j], with stride the total number of evaluation points
// in the arrays. The slices passed are offset to the first point the call
// should process.
type StridedKernel[T Elem] func(out, in, pars, tm []T, stride int)

// FuncInfo describes the compiled function's fixed dimensions, derived from
// the expression graph by the layer that requests compilation.
type FuncInfo struct {
	NumVars       int
	NumOutputs    int
	NumParams     int
	TimeDependent bool
}

// Meta is the full metadata of a compiled kernel set: the function dimensions
// plus the batch width and, for the arbitrary-precision kind, the significand
// width every element must carry.
type Meta struct {
	FuncInfo
	SIMDWidth int
	Precision uint
}

// KernelSet owns the four compiled kernel variants of one function: the
// scalar and batch forms and their strided counterparts. It is immutable
// after construction and freely shareable; a set with any missing variant is
// never constructed.
type KernelSet[T Elem] struct {
	scalar        Kernel[T]
	scalarStrided StridedKernel[T]
	batch         Kernel[T]
	batchStrided  StridedKernel[T]
	meta          Meta
}

// NewKernelSet assembles a kernel set from its four variants. All four must
// be non-nil and the metadata dimensions must be non-negative with a batch
// width of at least one.
func NewKernelSet[T Elem](meta Meta, scalar Kernel[T], scalarStrided StridedKernel[T], batch Kernel[T], batchStrided StridedKernel[T]) (*KernelSet[T], error) {
	if scalar == nil || scalarStrided == nil || batch == nil || batchStrided == nil {
		return nil, &ValidationError{
			Code: CodeBadMeta, Dim: -1, Expected: -1, Actual: -1,
			Message: "cfunc: a kernel set requires all four kernel variants",
		}
	}
	if err := checkMeta[T](meta); err != nil {
		return nil, err
	}
	return &KernelSet[T]{
		scalar:        scalar,
		scalarStrided: scalarStrided,
		batch:         batch,
		batchStrided:  batchStrided,
		meta:          meta,
	}, nil
}

// Meta returns the kernel set metadata.
func (ks *KernelSet[T]) Meta() Meta { return ks.meta }

func checkMeta[T Elem](meta Meta) error {
	for _, d := range []struct {
		name string
		n    int
	}{
		{"variables", meta.NumVars},
		{"outputs", meta.NumOutputs},
		{"parameters", meta.NumParams},
	} {
		if d.n < 0 {
			return &ValidationError{
				Code: CodeBadMeta, Dim: -1, Expected: 0, Actual: d.n,
				Message: fmt.Sprintf("cfunc: negative number of %s (%d) in kernel metadata", d.name, d.n),
			}
		}
	}
	if meta.SIMDWidth < 1 {
		return &ValidationError{
			Code: CodeBadMeta, Dim: -1, Expected: 1, Actual: meta.SIMDWidth,
			Message: fmt.Sprintf("cfunc: batch width must be at least 1, not %d", meta.SIMDWidth),
		}
	}
	// Every arbitrary-precision element flows through scratch slots sized at
	// construction; with no significand width to size them, the slots would
	// silently take the precision of whatever value is first stored.
	if KindOf[T]() == KindBig && meta.Precision == 0 {
		return &ValidationError{
			Code: CodeBadMeta, Dim: -1, Expected: 1, Actual: 0,
			Message: "cfunc: a positive precision is required for arbitrary-precision kernels",
		}
	}
	return nil
}
