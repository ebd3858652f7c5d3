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
	"math/big"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sys/cpu"

	"github.com/seba0018/go-cfunc/cfunc"
	"github.com/seba0018/go-cfunc/internal/cpufeat"
)

func newCPUInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cpuinfo",
		Short: "print detected CPU features and recommended batch widths",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "GOOS: %s\n", runtime.GOOS)
			fmt.Fprintf(out, "GOARCH: %s\n", runtime.GOARCH)
			fmt.Fprintf(out, "NumCPU: %d\n", runtime.NumCPU())
			fmt.Fprintln(out)

			fmt.Fprintf(out, "SIMD level: %s\n", cpufeat.Detected())
			fmt.Fprintf(out, "float64 lanes: %d\n", cpufeat.Float64Lanes())
			fmt.Fprintln(out)

			fmt.Fprintf(out, "recommended batch width float32: %d\n", cfunc.RecommendedSIMDWidth[float32]())
			fmt.Fprintf(out, "recommended batch width float64: %d\n", cfunc.RecommendedSIMDWidth[float64]())
			fmt.Fprintf(out, "recommended batch width big:     %d\n", cfunc.RecommendedSIMDWidth[*big.Float]())

			if runtime.GOARCH == "amd64" {
				fmt.Fprintln(out)
				fmt.Fprintln(out, "=== golang.org/x/sys/cpu.X86 ===")
				fmt.Fprintf(out, "  HasSSE2:     %v\n", cpu.X86.HasSSE2)
				fmt.Fprintf(out, "  HasAVX2:     %v\n", cpu.X86.HasAVX2)
				fmt.Fprintf(out, "  HasFMA:      %v\n", cpu.X86.HasFMA)
				fmt.Fprintf(out, "  HasAVX512F:  %v\n", cpu.X86.HasAVX512F)
				fmt.Fprintf(out, "  HasAVX512DQ: %v\n", cpu.X86.HasAVX512DQ)
			}
			return nil
		},
	}
}
