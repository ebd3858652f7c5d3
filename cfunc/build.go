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
	"fmt"

	"golang.org/x/sync/errgroup"
)

// ModuleSpec configures one compilation pass of the kernel-build service.
// A successful compile exposes two symbols: Name (the fixed-size kernel) and
// Name + ".strided" (the strided kernel).
type ModuleSpec struct {
	Name             string
	BatchSize        int
	HighAccuracy     bool
	CompactMode      bool
	ParallelMode     bool
	OptLevel         int
	ForceWideVectors bool
	FastMath         bool
	Precision        uint
}

// StridedSuffix is appended to a module's base symbol name to resolve the
// strided kernel variant.
const StridedSuffix = ".strided"

// Module resolves compiled kernels by symbol name.
type Module[T Elem] interface {
	Lookup(symbol string) (Kernel[T], error)
	LookupStrided(symbol string) (StridedKernel[T], error)
}

// Compiler is the kernel-build service: it turns a module spec into machine
// code and exposes the named symbols. Implementations are typically bindings
// to a JIT; StaticCompiler serves ahead-of-time Go kernels. Compilation is
// CPU-heavy and may honor ctx cancellation; evaluation never does.
type Compiler[T Elem] interface {
	Compile(ctx context.Context, spec ModuleSpec) (Module[T], error)
}

// CompilerFunc adapts an ordinary function to the Compiler interface.
type CompilerFunc[T Elem] func(ctx context.Context, spec ModuleSpec) (Module[T], error)

// Compile calls f.
func (f CompilerFunc[T]) Compile(ctx context.Context, spec ModuleSpec) (Module[T], error) {
	return f(ctx, spec)
}

// BuildOptions configures Build. The zero value is not useful; start from
// DefaultBuildOptions.
type BuildOptions struct {
	// Name is the base symbol name compiled modules expose.
	Name string

	// BatchSize is the number of points one batch-kernel call processes.
	// Zero means the recommended SIMD width for the element kind on this
	// machine. Values above one are only supported for float64.
	BatchSize int

	HighAccuracy     bool
	CompactMode      bool
	ParallelMode     bool
	OptLevel         int
	ForceWideVectors bool
	FastMath         bool

	// Precision is the significand width in bits for the
	// arbitrary-precision kind, which requires it to be positive; ignored
	// for hardware kinds.
	Precision uint
}

// DefaultBuildOptions returns the standard build configuration: symbol name
// "cfunc", automatic batch size, optimization level 3, everything else off.
func DefaultBuildOptions() BuildOptions {
	return BuildOptions{Name: "cfunc", OptLevel: 3}
}

// Build compiles the scalar and batch kernel variants of one function and
// returns an evaluator over them. The two compilation passes have no data
// dependency and run as a fork-join pair: both must succeed before any
// evaluator exists, and the first failure aborts construction entirely — no
// partially-usable kernel set is ever exposed.
func Build[T Elem](ctx context.Context, cc Compiler[T], info FuncInfo, opts BuildOptions) (*Evaluator[T], error) {
	if cc == nil {
		return nil, &CompilationError{Err: fmt.Errorf("no compiler provided")}
	}
	if opts.Name == "" {
		opts.Name = "cfunc"
	}

	width := opts.BatchSize
	if width == 0 {
		width = RecommendedSIMDWidth[T]()
	}
	if width > 1 && KindOf[T]() != KindFloat64 {
		return nil, &ValidationError{
			Code: CodeBatchUnsupported, Dim: -1, Expected: 1, Actual: width,
			Message: "batch sizes greater than 1 are not supported for this floating-point type",
		}
	}

	meta := Meta{FuncInfo: info, SIMDWidth: width, Precision: opts.Precision}
	if err := checkMeta[T](meta); err != nil {
		return nil, err
	}

	spec := ModuleSpec{
		Name:             opts.Name,
		HighAccuracy:     opts.HighAccuracy,
		CompactMode:      opts.CompactMode,
		ParallelMode:     opts.ParallelMode,
		OptLevel:         opts.OptLevel,
		ForceWideVectors: opts.ForceWideVectors,
		FastMath:         opts.FastMath,
		Precision:        opts.Precision,
	}

	var (
		scalar        Kernel[T]
		scalarStrided StridedKernel[T]
		batch         Kernel[T]
		batchStrided  StridedKernel[T]
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		scalar, scalarStrided, err = compileVariant(gctx, cc, spec, 1)
		return err
	})
	g.Go(func() error {
		var err error
		batch, batchStrided, err = compileVariant(gctx, cc, spec, width)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ks, err := NewKernelSet(meta, scalar, scalarStrided, batch, batchStrided)
	if err != nil {
		return nil, err
	}
	return NewEvaluator(ks)
}

func compileVariant[T Elem](ctx context.Context, cc Compiler[T], spec ModuleSpec, batchSize int) (Kernel[T], StridedKernel[T], error) {
	spec.BatchSize = batchSize

	mod, err := cc.Compile(ctx, spec)
	if err != nil {
		return nil, nil, &CompilationError{Symbol: spec.Name, Err: err}
	}

	k, err := mod.Lookup(spec.Name)
	if err != nil {
		return nil, nil, &CompilationError{Symbol: spec.Name, Err: err}
	}
	ks, err := mod.LookupStrided(spec.Name + StridedSuffix)
	if err != nil {
		return nil, nil, &CompilationError{Symbol: spec.Name + StridedSuffix, Err: err}
	}
	if k == nil || ks == nil {
		return nil, nil, &CompilationError{Symbol: spec.Name, Err: fmt.Errorf("compiler returned a nil kernel")}
	}
	return k, ks, nil
}
