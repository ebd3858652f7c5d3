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
	"context"
	"errors"
	"math/big"
	"testing"
)

const testPrec = 113

// bigIdentityCompiler registers width-1 identity kernels for the
// arbitrary-precision kind. Values move through Set only: slots keep their
// allocation and precision.
func bigIdentityCompiler(nv int, counts *callCounts) *StaticCompiler[*big.Float] {
	cc := NewStaticCompiler[*big.Float]()
	cc.Module(1).
		Register("cfunc", func(out, in, pars, tm []*big.Float) {
			counts.fixed++
			for i := 0; i < nv; i++ {
				out[i].Set(in[i])
			}
		}).
		RegisterStrided("cfunc"+StridedSuffix, func(out, in, pars, tm []*big.Float, stride int) {
			counts.strided++
			for i := 0; i < nv; i++ {
				out[i*stride].Set(in[i*stride])
			}
		})
	return cc
}

func buildBigIdentity(t *testing.T, nv int, counts *callCounts) *Evaluator[*big.Float] {
	t.Helper()
	opts := DefaultBuildOptions()
	opts.Precision = testPrec
	info := FuncInfo{NumVars: nv, NumOutputs: nv}
	ev, err := Build(context.Background(), bigIdentityCompiler(nv, counts), info, opts)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return ev
}

func bigVal(t *testing.T, s string, prec uint) *big.Float {
	t.Helper()
	f, _, err := big.ParseFloat(s, 10, prec, big.ToNearestEven)
	if err != nil {
		t.Fatalf("ParseFloat(%q): %v", s, err)
	}
	return f
}

func TestBigIdentityRoundTrip(t *testing.T) {
	var counts callCounts
	ev := buildBigIdentity(t, 2, &counts)

	vals := []*big.Float{
		bigVal(t, "1.1000000000000000000000000000000000001", testPrec),
		bigVal(t, "-2.5", testPrec),
	}
	in, err := FromSlice(vals, 2)
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}

	out, err := ev.Evaluate(Request[*big.Float]{Inputs: in})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	for i := 0; i < 2; i++ {
		got := out.At(i)
		if got.Prec() != testPrec {
			t.Errorf("out[%d] precision = %d, want %d", i, got.Prec(), testPrec)
		}
		if got.Cmp(vals[i]) != 0 {
			t.Errorf("out[%d] = %v, want %v", i, got, vals[i])
		}
	}
}

func TestBigMultiEvaluation(t *testing.T) {
	const nv, nEvals = 2, 5
	var counts callCounts
	ev := buildBigIdentity(t, nv, &counts)

	vals := make([]*big.Float, nv*nEvals)
	for i := range vals {
		vals[i] = big.NewFloat(float64(i) + 0.5).SetPrec(testPrec)
	}
	in, err := FromSlice(vals, nv, nEvals)
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}

	counts.reset()
	out, err := ev.Evaluate(Request[*big.Float]{Inputs: in})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}

	// The arbitrary-precision kind always stages through scratch: its
	// elements are pointers, so range comparison cannot prove two arrays
	// disjoint.
	if counts.strided != 0 {
		t.Errorf("arbitrary-precision evaluation took the zero-copy path (%d strided calls)", counts.strided)
	}

	for i := 0; i < nv; i++ {
		for j := 0; j < nEvals; j++ {
			if out.At(i, j).Cmp(in.At(i, j)) != 0 {
				t.Errorf("out[%d,%d] = %v, want %v", i, j, out.At(i, j), in.At(i, j))
			}
		}
	}
}

func TestBigPrecisionMismatchRejected(t *testing.T) {
	var counts callCounts
	ev := buildBigIdentity(t, 1, &counts)

	in, err := FromSlice([]*big.Float{big.NewFloat(1.0).SetPrec(64)}, 1)
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}
	_, err = ev.Evaluate(Request[*big.Float]{Inputs: in})
	var perr *PrecisionError
	if !errors.As(err, &perr) {
		t.Fatalf("Evaluate error = %v, want *PrecisionError", err)
	}
	if perr.Expected != testPrec || perr.Actual != 64 {
		t.Errorf("expected/actual precision = %d/%d, want %d/64", perr.Expected, perr.Actual, testPrec)
	}
	if perr.Arg != "inputs" {
		t.Errorf("arg = %q, want %q", perr.Arg, "inputs")
	}
}

func TestBigUnconstructedElementRejected(t *testing.T) {
	var counts callCounts
	ev := buildBigIdentity(t, 1, &counts)

	in, err := FromSlice(make([]*big.Float, 1), 1)
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}
	_, err = ev.Evaluate(Request[*big.Float]{Inputs: in})
	var perr *PrecisionError
	if !errors.As(err, &perr) {
		t.Fatalf("Evaluate error = %v, want *PrecisionError", err)
	}
	if perr.Actual != 0 {
		t.Errorf("actual precision = %d, want 0 for an unconstructed element", perr.Actual)
	}
}

func TestBigScratchSlotsKeepIdentity(t *testing.T) {
	var counts callCounts
	ev := buildBigIdentity(t, 2, &counts)

	slot := ev.pool.in[0]
	if slot.Prec() != testPrec {
		t.Fatalf("scratch slot precision = %d, want %d", slot.Prec(), testPrec)
	}

	in, _ := FromSlice([]*big.Float{bigVal(t, "3.25", testPrec), bigVal(t, "4.5", testPrec)}, 2)
	if _, err := ev.Evaluate(Request[*big.Float]{Inputs: in}); err != nil {
		t.Fatalf("Evaluate: %v", err)
	}

	// Slots are mutated in place, never reconstructed.
	if ev.pool.in[0] != slot {
		t.Error("scratch slot was reallocated during evaluation")
	}
	if slot.Prec() != testPrec {
		t.Errorf("scratch slot precision after evaluation = %d, want %d", slot.Prec(), testPrec)
	}
}
