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
)

// StaticModule resolves symbols from kernels registered ahead of time. It
// implements Module for kernel sets written directly in Go rather than
// produced by a JIT.
type StaticModule[T Elem] struct {
	kernels map[string]Kernel[T]
	strided map[string]StridedKernel[T]
}

// NewStaticModule returns an empty module.
func NewStaticModule[T Elem]() *StaticModule[T] {
	return &StaticModule[T]{
		kernels: make(map[string]Kernel[T]),
		strided: make(map[string]StridedKernel[T]),
	}
}

// Register adds a fixed-size kernel under the given symbol.
func (m *StaticModule[T]) Register(symbol string, k Kernel[T]) *StaticModule[T] {
	m.kernels[symbol] = k
	return m
}

// RegisterStrided adds a strided kernel under the given symbol.
func (m *StaticModule[T]) RegisterStrided(symbol string, k StridedKernel[T]) *StaticModule[T] {
	m.strided[symbol] = k
	return m
}

// Lookup implements Module.
func (m *StaticModule[T]) Lookup(symbol string) (Kernel[T], error) {
	k, ok := m.kernels[symbol]
	if !ok {
		return nil, fmt.Errorf("symbol %q not found in module", symbol)
	}
	return k, nil
}

// LookupStrided implements Module.
func (m *StaticModule[T]) LookupStrided(symbol string) (StridedKernel[T], error) {
	k, ok := m.strided[symbol]
	if !ok {
		return nil, fmt.Errorf("symbol %q not found in module", symbol)
	}
	return k, nil
}

// StaticCompiler serves pre-registered modules keyed by batch size. It is
// the in-process stand-in for a JIT: Build asks it for a batch-size-1 module
// and a batch-size-width module, exactly as it would a real kernel-build
// service.
type StaticCompiler[T Elem] struct {
	mods map[int]*StaticModule[T]
}

// NewStaticCompiler returns an empty compiler.
func NewStaticCompiler[T Elem]() *StaticCompiler[T] {
	return &StaticCompiler[T]{mods: make(map[int]*StaticModule[T])}
}

// Module returns the module registered for the given batch size, creating it
// on first use so kernels can be registered against it.
func (c *StaticCompiler[T]) Module(batchSize int) *StaticModule[T] {
	m, ok := c.mods[batchSize]
	if !ok {
		m = NewStaticModule[T]()
		c.mods[batchSize] = m
	}
	return m
}

// Compile implements Compiler.
func (c *StaticCompiler[T]) Compile(ctx context.Context, spec ModuleSpec) (Module[T], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m, ok := c.mods[spec.BatchSize]
	if !ok {
		return nil, fmt.Errorf("no kernels registered for batch size %d", spec.BatchSize)
	}
	return m, nil
}
