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

import "fmt"

// ValidationCode categorizes validation failures.
type ValidationCode string

const (
	// CodeBadRank indicates an array has an unsupported number of
	// dimensions, or a rank inconsistent with the inputs array.
	CodeBadRank ValidationCode = "BAD_RANK"

	// CodeBadShape indicates an array dimension has the wrong size.
	CodeBadShape ValidationCode = "BAD_SHAPE"

	// CodeMissingPars indicates the function has parameters but no
	// parameter values were supplied.
	CodeMissingPars ValidationCode = "MISSING_PARS"

	// CodeMissingTime indicates the function is time-dependent but no time
	// value was supplied.
	CodeMissingTime ValidationCode = "MISSING_TIME"

	// CodeTimeNotScalar indicates a time sequence was supplied for a
	// single evaluation, which requires a scalar time value.
	CodeTimeNotScalar ValidationCode = "TIME_NOT_SCALAR"

	// CodeNotWritable indicates the supplied outputs array is read-only.
	CodeNotWritable ValidationCode = "NOT_WRITABLE"

	// CodeBatchUnsupported indicates a batch size greater than one was
	// requested for an element kind that does not support batching.
	CodeBatchUnsupported ValidationCode = "BATCH_UNSUPPORTED"

	// CodeBadMeta indicates the function metadata passed to Build is
	// malformed (negative counts, or dimensions whose scratch buffers
	// would overflow).
	CodeBadMeta ValidationCode = "BAD_META"
)

// ValidationError reports a shape, rank, size or argument-presence mismatch
// detected before any kernel invocation. Dim, Expected and Actual are
// meaningful for dimensional mismatches and -1 otherwise.
type ValidationError struct {
	Code     ValidationCode
	Arg      string // "inputs", "outputs", "pars", "time", or "" for build-time errors
	Dim      int
	Expected int
	Actual   int
	Message  string
}

func (e *ValidationError) Error() string { return e.Message }

// PrecisionError reports that an element of a supplied array does not carry
// the significand width the evaluator was built with. Raised only for the
// arbitrary-precision kind, and always before any kernel invocation.
type PrecisionError struct {
	Arg      string
	Index    int // flat element index within the array
	Expected uint
	Actual   uint // 0 for an unconstructed element
}

func (e *PrecisionError) Error() string {
	if e.Actual == 0 {
		return fmt.Sprintf("the %s array passed to a compiled function contains an unconstructed value at index %d, "+
			"but all values must be constructed with a precision of %d bits", e.Arg, e.Index, e.Expected)
	}
	return fmt.Sprintf("the %s array passed to a compiled function contains a value with a precision of %d bits at index %d, "+
		"but the evaluator was built with a precision of %d bits", e.Arg, e.Actual, e.Index, e.Expected)
}

// CompilationError reports a failure while building or resolving a compiled
// kernel module. No evaluator is produced when it is returned.
type CompilationError struct {
	Symbol string // symbol being compiled or resolved, "" when not symbol-specific
	Err    error
}

func (e *CompilationError) Error() string {
	if e.Symbol != "" {
		return fmt.Sprintf("compilation of kernel symbol %q failed: %v", e.Symbol, e.Err)
	}
	return fmt.Sprintf("kernel compilation failed: %v", e.Err)
}

func (e *CompilationError) Unwrap() error { return e.Err }

// shapeErr builds the common "size in dimension" validation error.
func shapeErr(arg string, dim, expected, actual int, msg string) *ValidationError {
	return &ValidationError{
		Code:     CodeBadShape,
		Arg:      arg,
		Dim:      dim,
		Expected: expected,
		Actual:   actual,
		Message:  msg,
	}
}

// rankErr builds a rank mismatch validation error.
func rankErr(arg string, expected, actual int, msg string) *ValidationError {
	return &ValidationError{
		Code:     CodeBadRank,
		Arg:      arg,
		Dim:      -1,
		Expected: expected,
		Actual:   actual,
		Message:  msg,
	}
}
