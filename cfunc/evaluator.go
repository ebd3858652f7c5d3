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

// Request carries the arguments of one evaluation call. It is constructed
// per call, validated, consumed by one evaluation and discarded.
type Request[T Elem] struct {
	// Inputs is the array of variable values: shape [num_vars] for a
	// single evaluation, [num_vars, n_evals] for multi evaluation.
	Inputs *Array[T]

	// Outputs optionally receives the results. It must match the rank and
	// n_evals of Inputs with first dimension num_outputs. When nil, an
	// array is allocated and returned.
	Outputs *Array[T]

	// Pars holds the parameter values, first dimension num_params, rank
	// and n_evals matching Inputs. Required exactly when the function has
	// parameters.
	Pars *Array[T]

	// Time holds the time value(s): scalar form for a single evaluation,
	// a length-n_evals sequence for multi evaluation. Required exactly
	// when the function is time-dependent.
	Time *Time[T]
}

// Evaluator evaluates one compiled kernel set over arbitrary numbers of
// evaluation points. It owns the scratch buffers for the buffered path,
// which are mutated in place on every call: an Evaluator is not safe for
// concurrent use. Callers needing concurrent evaluation must serialize calls
// or build one Evaluator per goroutine; the kernel set itself is immutable
// and shared freely.
type Evaluator[T Elem] struct {
	ks   *KernelSet[T]
	pool *scratchPool[T]
}

// NewEvaluator wraps an already-built kernel set, allocating (and for the
// arbitrary-precision kind, precision-initializing) the scratch buffers.
func NewEvaluator[T Elem](ks *KernelSet[T]) (*Evaluator[T], error) {
	pool, err := newScratchPool[T](ks.meta)
	if err != nil {
		return nil, err
	}
	return &Evaluator[T]{ks: ks, pool: pool}, nil
}

// Meta returns the metadata of the underlying kernel set.
func (ev *Evaluator[T]) Meta() Meta { return ev.ks.meta }

// Evaluate runs the compiled function over the request and returns the
// outputs array (the one supplied in the request, or a freshly allocated
// one). All validation completes before any kernel runs; on error the
// current call has no side effects.
func (ev *Evaluator[T]) Evaluate(req Request[T]) (*Array[T], error) {
	meta := ev.ks.meta

	if err := validateRequest(meta, req); err != nil {
		return nil, err
	}

	multi := req.Inputs.Rank() == 2
	nEvals := 1
	if multi {
		nEvals = req.Inputs.Shape(1)
	}

	out := req.Outputs
	if out == nil {
		var err error
		if multi {
			out, err = NewArrayPrec[T](meta.Precision, meta.NumOutputs, nEvals)
		} else {
			out, err = NewArrayPrec[T](meta.Precision, meta.NumOutputs)
		}
		if err != nil {
			return nil, err
		}
	}

	zeroCopy := zeroCopyEligible(out, req)

	if multi {
		if zeroCopy {
			ev.multiZeroCopy(out, req, nEvals)
		} else {
			ev.multiBuffered(out, req, nEvals)
		}
	} else {
		if zeroCopy {
			ev.singleZeroCopy(out, req)
		} else {
			ev.singleBuffered(out, req)
		}
	}

	return out, nil
}

// sliceFrom offsets a flat data slice to the first element a kernel call
// should touch. A dimension that is never read or written gets a nil slice:
// kernels must not receive dangling views of empty storage, and offsetting
// an empty slice is not meaningful.
func sliceFrom[T Elem](data []T, off int, used bool) []T {
	if !used {
		return nil
	}
	return data[off:]
}

func (ev *Evaluator[T]) singleZeroCopy(out *Array[T], req Request[T]) {
	meta := ev.ks.meta

	var parsData, timeData []T
	if req.Pars != nil {
		parsData = req.Pars.Data()
	}
	if req.Time != nil {
		timeData = req.Time.vals
	}

	ev.ks.scalar(
		sliceFrom(out.Data(), 0, meta.NumOutputs > 0),
		sliceFrom(req.Inputs.Data(), 0, meta.NumVars > 0),
		sliceFrom(parsData, 0, meta.NumParams > 0),
		sliceFrom(timeData, 0, meta.TimeDependent),
	)
}

func (ev *Evaluator[T]) singleBuffered(out *Array[T], req Request[T]) {
	meta := ev.ks.meta
	p := ev.pool

	for i := 0; i < meta.NumVars; i++ {
		assignElem(&p.in[i], req.Inputs.at1(i))
	}
	for i := 0; i < meta.NumParams; i++ {
		assignElem(&p.pars[i], req.Pars.at1(i))
	}
	if meta.TimeDependent {
		assignElem(&p.tm[0], req.Time.vals[0])
	}

	ev.scalarOnPool()

	for i := 0; i < meta.NumOutputs; i++ {
		out.set1(i, p.out[i])
	}
}

func (ev *Evaluator[T]) multiZeroCopy(out *Array[T], req Request[T], nEvals int) {
	meta := ev.ks.meta
	w := meta.SIMDWidth
	nBlocks := nEvals / w

	// The stride is the distance, in elements, between one row's values
	// for consecutive evaluation points in row-major storage.
	stride := nEvals

	outData := out.Data()
	inData := req.Inputs.Data()
	var parsData, timeData []T
	if req.Pars != nil {
		parsData = req.Pars.Data()
	}
	if req.Time != nil {
		timeData = req.Time.vals
	}

	writeOut := meta.NumOutputs > 0
	readIn := meta.NumVars > 0
	readPars := meta.NumParams > 0
	readTime := meta.TimeDependent

	for k := 0; k < nBlocks; k++ {
		off := k * w
		ev.ks.batchStrided(
			sliceFrom(outData, off, writeOut),
			sliceFrom(inData, off, readIn),
			sliceFrom(parsData, off, readPars),
			sliceFrom(timeData, off, readTime),
			stride,
		)
	}

	for k := nBlocks * w; k < nEvals; k++ {
		ev.ks.scalarStrided(
			sliceFrom(outData, k, writeOut),
			sliceFrom(inData, k, readIn),
			sliceFrom(parsData, k, readPars),
			sliceFrom(timeData, k, readTime),
			stride,
		)
	}
}

func (ev *Evaluator[T]) multiBuffered(out *Array[T], req Request[T], nEvals int) {
	meta := ev.ks.meta
	p := ev.pool
	w := meta.SIMDWidth
	nBlocks := nEvals / w

	for k := 0; k < nBlocks; k++ {
		base := k * w

		// Gather the block into scratch, one SIMD lane per point.
		for i := 0; i < meta.NumVars; i++ {
			for j := 0; j < w; j++ {
				assignElem(&p.in[i*w+j], req.Inputs.at2(i, base+j))
			}
		}
		for i := 0; i < meta.NumParams; i++ {
			for j := 0; j < w; j++ {
				assignElem(&p.pars[i*w+j], req.Pars.at2(i, base+j))
			}
		}
		if meta.TimeDependent {
			for j := 0; j < w; j++ {
				assignElem(&p.tm[j], req.Time.vals[base+j])
			}
		}

		ev.ks.batch(
			sliceFrom(p.out, 0, meta.NumOutputs > 0),
			sliceFrom(p.in, 0, meta.NumVars > 0),
			sliceFrom(p.pars, 0, meta.NumParams > 0),
			sliceFrom(p.tm, 0, meta.TimeDependent),
		)

		for i := 0; i < meta.NumOutputs; i++ {
			for j := 0; j < w; j++ {
				out.set2(i, base+j, p.out[i*w+j])
			}
		}
	}

	// Trailing points, one scalar call each.
	for k := nBlocks * w; k < nEvals; k++ {
		for i := 0; i < meta.NumVars; i++ {
			assignElem(&p.in[i], req.Inputs.at2(i, k))
		}
		for i := 0; i < meta.NumParams; i++ {
			assignElem(&p.pars[i], req.Pars.at2(i, k))
		}
		if meta.TimeDependent {
			assignElem(&p.tm[0], req.Time.vals[k])
		}

		ev.scalarOnPool()

		for i := 0; i < meta.NumOutputs; i++ {
			out.set2(i, k, p.out[i])
		}
	}
}

func (ev *Evaluator[T]) scalarOnPool() {
	meta := ev.ks.meta
	p := ev.pool
	ev.ks.scalar(
		sliceFrom(p.out, 0, meta.NumOutputs > 0),
		sliceFrom(p.in, 0, meta.NumVars > 0),
		sliceFrom(p.pars, 0, meta.NumParams > 0),
		sliceFrom(p.tm, 0, meta.TimeDependent),
	)
}
