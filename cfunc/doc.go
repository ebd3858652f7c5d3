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

// Package cfunc evaluates pre-compiled, fixed-ABI numeric kernels over arrays
// of inputs, parameters and time values.
//
// A kernel computes a fixed list of outputs from a fixed list of variables,
// optionally parameters and a time value. Kernels come in two compiled forms:
// a scalar form processing exactly one evaluation point per call, and a batch
// form processing exactly SIMDWidth consecutive points per call. Each form
// also has a strided variant that reads and writes directly out of row-major
// multi-evaluation storage. The package bridges these fixed forms into an API
// that evaluates an arbitrary number of points:
//
//	ev, err := cfunc.Build[float64](ctx, compiler, info, cfunc.DefaultBuildOptions())
//	if err != nil {
//	    // handle CompilationError / ValidationError
//	}
//	out, err := ev.Evaluate(cfunc.Request[float64]{Inputs: in, Pars: pars})
//
// Inputs are rank-1 arrays (one evaluation point) or rank-2 arrays with one
// column per evaluation point. When all involved arrays are contiguous and
// provably non-overlapping, kernels operate directly on caller memory
// (zero-copy); otherwise every point is staged through scratch buffers owned
// by the evaluator (buffered). Both paths produce identical results.
//
// Three element kinds are supported: float32, float64, and arbitrary-precision
// *big.Float with the significand width fixed at build time. SIMD batching
// (width > 1) is available only for float64.
//
// An Evaluator is not safe for concurrent use; construct one instance per
// goroutine. The compiled kernels themselves are immutable and freely
// shareable.
package cfunc
