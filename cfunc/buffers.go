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
	"math/bits"
)

// scratchPool holds the staging buffers for the buffered evaluation path.
// The buffers are exactly sized from the kernel metadata: num_vars*width,
// num_outputs*width, num_params*width and width elements, with no slack.
//
// A pool belongs to exactly one Evaluator and is mutated in place on every
// call. For the arbitrary-precision kind every slot is constructed once here
// with the configured significand width; evaluation only ever writes values
// through Set, never replaces a slot, so the precision and the allocations
// survive across calls.
type scratchPool[T Elem] struct {
	in, out, pars, tm []T
}

func newScratchPool[T Elem](meta Meta) (*scratchPool[T], error) {
	nIn, err := checkedMul(meta.NumVars, meta.SIMDWidth)
	if err != nil {
		return nil, poolSizeErr("input", err)
	}
	nOut, err := checkedMul(meta.NumOutputs, meta.SIMDWidth)
	if err != nil {
		return nil, poolSizeErr("output", err)
	}
	nPars, err := checkedMul(meta.NumParams, meta.SIMDWidth)
	if err != nil {
		return nil, poolSizeErr("parameter", err)
	}

	p := &scratchPool[T]{
		in:   make([]T, nIn),
		out:  make([]T, nOut),
		pars: make([]T, nPars),
		tm:   make([]T, meta.SIMDWidth),
	}
	if KindOf[T]() == KindBig {
		for _, buf := range [][]T{p.in, p.out, p.pars, p.tm} {
			for i := range buf {
				buf[i] = newElem[T](meta.Precision)
			}
		}
	}
	return p, nil
}

func poolSizeErr(which string, err error) error {
	return &ValidationError{
		Code: CodeBadMeta, Dim: -1, Expected: -1, Actual: -1,
		Message: fmt.Sprintf("cfunc: cannot size the %s scratch buffer: %v", which, err),
	}
}

// checkedMul multiplies two non-negative ints, rejecting overflow. Kernel
// dimensions are caller-influenced via the expression size, so buffer sizing
// must not wrap.
func checkedMul(a, b int) (int, error) {
	hi, lo := bits.Mul64(uint64(a), uint64(b))
	if hi != 0 || lo > uint64(maxInt) {
		return 0, fmt.Errorf("%d * %d overflows", a, b)
	}
	return int(lo), nil
}

const maxInt = int(^uint(0) >> 1)
