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
	"testing"
)

func TestKindOf(t *testing.T) {
	if k := KindOf[float32](); k != KindFloat32 {
		t.Errorf("KindOf[float32] = %s", k)
	}
	if k := KindOf[float64](); k != KindFloat64 {
		t.Errorf("KindOf[float64] = %s", k)
	}
	if k := KindOf[*big.Float](); k != KindBig {
		t.Errorf("KindOf[*big.Float] = %s", k)
	}
	if KindFloat64.String() != "float64" || KindBig.String() != "big" {
		t.Error("kind names are wrong")
	}
}

func TestAssignElemMutatesBigInPlace(t *testing.T) {
	dst := []*big.Float{new(big.Float).SetPrec(113)}
	orig := dst[0]

	assignElem(&dst[0], big.NewFloat(2.75).SetPrec(113))
	if dst[0] != orig {
		t.Fatal("assignElem replaced the slot instead of mutating it")
	}
	if f, _ := dst[0].Float64(); f != 2.75 {
		t.Errorf("slot value = %v, want 2.75", f)
	}
	if dst[0].Prec() != 113 {
		t.Errorf("slot precision = %d, want 113", dst[0].Prec())
	}
}

func TestAssignElemCopiesHardwareKinds(t *testing.T) {
	dst := []float64{0}
	assignElem(&dst[0], 1.5)
	if dst[0] != 1.5 {
		t.Errorf("dst[0] = %v, want 1.5", dst[0])
	}
}

func TestNewElem(t *testing.T) {
	f := newElem[*big.Float](237)
	if f == nil || f.Prec() != 237 {
		t.Fatalf("newElem[*big.Float](237) = %v", f)
	}
	if v := newElem[float64](237); v != 0 {
		t.Errorf("newElem[float64] = %v, want 0", v)
	}
	if p := elemPrec(f); p != 237 {
		t.Errorf("elemPrec = %d, want 237", p)
	}
	if p := elemPrec(3.5); p != 0 {
		t.Errorf("elemPrec(float64) = %d, want 0", p)
	}
	var nilBig *big.Float
	if p := elemPrec(nilBig); p != 0 {
		t.Errorf("elemPrec(nil) = %d, want 0", p)
	}
}
