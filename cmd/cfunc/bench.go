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

package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/seba0018/go-cfunc/cfunc"
)

// The benchmark evaluates a fixed demo function with two variables, two
// parameters and a time dependency:
//
//	out0 = a*x + b*y + t
//	out1 = x*y - t
//
// Kernels are registered ahead of time through a StaticCompiler, standing in
// for a JIT-produced module.

func demoFixed(w int) cfunc.Kernel[float64] {
	return func(out, in, pars, tm []float64) {
		for j := 0; j < w; j++ {
			x, y := in[j], in[w+j]
			a, b := pars[j], pars[w+j]
			t := tm[j]
			out[j] = a*x + b*y + t
			out[w+j] = x*y - t
		}
	}
}

func demoStrided(w int) cfunc.StridedKernel[float64] {
	return func(out, in, pars, tm []float64, stride int) {
		for j := 0; j < w; j++ {
			x, y := in[j], in[stride+j]
			a, b := pars[j], pars[stride+j]
			t := tm[j]
			out[j] = a*x + b*y + t
			out[stride+j] = x*y - t
		}
	}
}

func demoCompiler(width int) *cfunc.StaticCompiler[float64] {
	cc := cfunc.NewStaticCompiler[float64]()
	for _, w := range []int{1, width} {
		cc.Module(w).
			Register("cfunc", demoFixed(w)).
			RegisterStrided("cfunc"+cfunc.StridedSuffix, demoStrided(w))
	}
	return cc
}

func newBenchCmd() *cobra.Command {
	var nEvals int
	var reps int

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "compare zero-copy and buffered evaluation of a demo kernel",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			width := cfunc.RecommendedSIMDWidth[float64]()
			info := cfunc.FuncInfo{NumVars: 2, NumOutputs: 2, NumParams: 2, TimeDependent: true}

			ev, err := cfunc.Build(cmd.Context(), demoCompiler(width), info, cfunc.DefaultBuildOptions())
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "batch width: %d, n_evals: %d, reps: %d\n", width, nEvals, reps)

			rng := rand.New(rand.NewSource(1))
			randSlice := func(n int) []float64 {
				s := make([]float64, n)
				for i := range s {
					s[i] = rng.Float64()
				}
				return s
			}

			inputs, err := cfunc.FromSlice(randSlice(2*nEvals), 2, nEvals)
			if err != nil {
				return err
			}
			pars, err := cfunc.FromSlice(randSlice(2*nEvals), 2, nEvals)
			if err != nil {
				return err
			}
			tvals := randSlice(nEvals)

			// Contiguous, disjoint arrays: the zero-copy path.
			outputs, err := cfunc.NewArray[float64](2, nEvals)
			if err != nil {
				return err
			}
			start := time.Now()
			for r := 0; r < reps; r++ {
				if _, err := ev.Evaluate(cfunc.Request[float64]{
					Inputs: inputs, Outputs: outputs, Pars: pars, Time: cfunc.TimeSeq(tvals),
				}); err != nil {
					return err
				}
			}
			fmt.Fprintf(out, "zero-copy: %v\n", time.Since(start))

			// A strided view over the same values forces the buffered path.
			wide, err := cfunc.FromSlice(randSlice(4*nEvals), 2, 2*nEvals)
			if err != nil {
				return err
			}
			strided, err := wide.Step(1, 2)
			if err != nil {
				return err
			}
			start = time.Now()
			for r := 0; r < reps; r++ {
				if _, err := ev.Evaluate(cfunc.Request[float64]{
					Inputs: strided, Outputs: outputs, Pars: pars, Time: cfunc.TimeSeq(tvals),
				}); err != nil {
					return err
				}
			}
			fmt.Fprintf(out, "buffered:  %v\n", time.Since(start))
			return nil
		},
	}
	cmd.Flags().IntVar(&nEvals, "n", 1<<16, "number of evaluation points")
	cmd.Flags().IntVar(&reps, "reps", 100, "repetitions per path")
	return cmd
}
