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
	"math/big"

	"github.com/seba0018/go-cfunc/internal/cpufeat"
)

// Elem is the closed set of element kinds an evaluator can be instantiated
// with. float32 and float64 are plain hardware types. *big.Float is the
// arbitrary-precision kind: every element carries its own significand width,
// and the evaluator requires all elements to match the precision configured
// at build time.
type Elem interface {
	float32 | float64 | *big.Float
}

// Kind identifies one of the supported element kinds at runtime.
type Kind uint8

const (
	KindFloat32 Kind = iota
	KindFloat64
	KindBig
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindFloat32:
		return "float32"
	case KindFloat64:
		return "float64"
	case KindBig:
		return "big"
	default:
		return "unknown"
	}
}

// KindOf reports the Kind corresponding to the type parameter T.
func KindOf[T Elem]() Kind {
	var z T
	switch any(z).(type) {
	case float32:
		return KindFloat32
	case float64:
		return KindFloat64
	default:
		return KindBig
	}
}

// RecommendedSIMDWidth returns the batch size one batch-kernel invocation
// should process for T on this machine. Only float64 kernels batch more than
// one point per call; every other kind evaluates point by point.
func RecommendedSIMDWidth[T Elem]() int {
	if KindOf[T]() != KindFloat64 {
		return 1
	}
	return cpufeat.Float64Lanes()
}

// assignElem copies src into the element slot dst. For the hardware kinds
// this is plain assignment. For *big.Float the pointee is mutated in place
// via Set, preserving the slot's identity and allocation: slots are
// constructed once at the configured precision and never replaced.
func assignElem[T Elem](dst *T, src T) {
	switch d := any(dst).(type) {
	case **big.Float:
		(*d).Set(any(src).(*big.Float))
	default:
		*dst = src
	}
}

// newElem constructs a zero element. For *big.Float the value is allocated
// with the given significand width; prec is ignored for hardware kinds.
func newElem[T Elem](prec uint) T {
	var z T
	if _, ok := any(z).(*big.Float); ok {
		return any(new(big.Float).SetPrec(prec)).(T)
	}
	return z
}

// elemPrec reports the significand width of v in bits, or 0 when v is not an
// arbitrary-precision element or is an unconstructed (nil) slot.
func elemPrec[T Elem](v T) uint {
	if f, ok := any(v).(*big.Float); ok && f != nil {
		return f.Prec()
	}
	return 0
}
