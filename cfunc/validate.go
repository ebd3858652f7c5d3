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

// validateRequest checks one evaluation request against the kernel metadata.
// Every check completes before any kernel is invoked; a failure terminates
// the call with no side effects. Element-type mismatches between arrays and
// the evaluator cannot arise here: the request and the evaluator share the
// type parameter, so the type system enforces what dynamic dtype checks do in
// the original binding.
func validateRequest[T Elem](meta Meta, req Request[T]) error {
	in := req.Inputs
	if in == nil {
		return &ValidationError{
			Code: CodeBadShape, Arg: "inputs", Dim: -1, Expected: -1, Actual: -1,
			Message: "no array of inputs was provided for the evaluation of a compiled function",
		}
	}

	if in.Rank() != 1 && in.Rank() != 2 {
		return rankErr("inputs", 1, in.Rank(), fmt.Sprintf(
			"the array of inputs provided for the evaluation of a compiled function has %d dimensions, "+
				"but it must have either 1 or 2 dimensions instead", in.Rank()))
	}

	if in.Shape(0) != meta.NumVars {
		return shapeErr("inputs", 0, meta.NumVars, in.Shape(0), fmt.Sprintf(
			"the array of inputs provided for the evaluation of a compiled function has size %d in the first dimension, "+
				"but it must have a size of %d instead (i.e., the size in the first dimension must be equal to the "+
				"number of variables)", in.Shape(0), meta.NumVars))
	}

	if meta.NumParams > 0 && req.Pars == nil {
		return &ValidationError{
			Code: CodeMissingPars, Arg: "pars", Dim: -1, Expected: meta.NumParams, Actual: 0,
			Message: fmt.Sprintf("the compiled function contains %d parameter(s), but no array of parameter "+
				"values was provided for evaluation", meta.NumParams),
		}
	}

	if meta.TimeDependent && req.Time == nil {
		return &ValidationError{
			Code: CodeMissingTime, Arg: "time", Dim: -1, Expected: -1, Actual: -1,
			Message: "the compiled function is time-dependent, but no time value(s) were provided for evaluation",
		}
	}

	multi := in.Rank() == 2
	nEvals := 1
	if multi {
		nEvals = in.Shape(1)
	}

	if req.Time != nil && !multi && !req.Time.Scalar() {
		return &ValidationError{
			Code: CodeTimeNotScalar, Arg: "time", Dim: -1, Expected: 1, Actual: req.Time.Len(),
			Message: "when performing a single evaluation of a compiled function, a scalar time value must be " +
				"provided, but a sequence was passed instead",
		}
	}

	if out := req.Outputs; out != nil {
		if !out.Writable() {
			return &ValidationError{
				Code: CodeNotWritable, Arg: "outputs", Dim: -1, Expected: -1, Actual: -1,
				Message: "the array of outputs provided for the evaluation of a compiled function is not writeable",
			}
		}
		if out.Rank() != in.Rank() {
			return rankErr("outputs", in.Rank(), out.Rank(), fmt.Sprintf(
				"the array of outputs provided for the evaluation of a compiled function has %d dimension(s), "+
					"but it must have %d dimension(s) instead (i.e., the same number of dimensions as the array "+
					"of inputs)", out.Rank(), in.Rank()))
		}
		if out.Shape(0) != meta.NumOutputs {
			return shapeErr("outputs", 0, meta.NumOutputs, out.Shape(0), fmt.Sprintf(
				"the array of outputs provided for the evaluation of a compiled function has size %d in the first "+
					"dimension, but it must have a size of %d instead (i.e., the size in the first dimension must "+
					"be equal to the number of outputs)", out.Shape(0), meta.NumOutputs))
		}
		if multi && out.Shape(1) != nEvals {
			return shapeErr("outputs", 1, nEvals, out.Shape(1), fmt.Sprintf(
				"the size in the second dimension for the output array provided for the evaluation of a compiled "+
					"function (%d) must match the size in the second dimension for the array of inputs (%d)",
				out.Shape(1), nEvals))
		}
	}

	if pars := req.Pars; pars != nil {
		if pars.Rank() != in.Rank() {
			return rankErr("pars", in.Rank(), pars.Rank(), fmt.Sprintf(
				"the array of parameter values provided for the evaluation of a compiled function has %d "+
					"dimension(s), but it must have %d dimension(s) instead (i.e., the same number of dimensions "+
					"as the array of inputs)", pars.Rank(), in.Rank()))
		}
		if pars.Shape(0) != meta.NumParams {
			return shapeErr("pars", 0, meta.NumParams, pars.Shape(0), fmt.Sprintf(
				"the array of parameter values provided for the evaluation of a compiled function has size %d in "+
					"the first dimension, but it must have a size of %d instead (i.e., the size in the first "+
					"dimension must be equal to the number of parameters in the function)", pars.Shape(0), meta.NumParams))
		}
		if multi && pars.Shape(1) != nEvals {
			return shapeErr("pars", 1, nEvals, pars.Shape(1), fmt.Sprintf(
				"the size in the second dimension for the array of parameter values provided for the evaluation "+
					"of a compiled function (%d) must match the size in the second dimension for the array of "+
					"inputs (%d)", pars.Shape(1), nEvals))
		}
	}

	if tm := req.Time; tm != nil {
		want := 1
		if multi {
			want = nEvals
		}
		if tm.Len() != want {
			return shapeErr("time", 0, want, tm.Len(), fmt.Sprintf(
				"the size of the array of time values provided for the evaluation of a compiled function (%d) "+
					"must match the size in the second dimension for the array of inputs (%d)", tm.Len(), want))
		}
	}

	if KindOf[T]() == KindBig {
		if err := checkPrecision("inputs", in, meta.Precision); err != nil {
			return err
		}
		if req.Outputs != nil {
			if err := checkPrecision("outputs", req.Outputs, meta.Precision); err != nil {
				return err
			}
		}
		if req.Pars != nil {
			if err := checkPrecision("pars", req.Pars, meta.Precision); err != nil {
				return err
			}
		}
		if req.Time != nil {
			if err := checkPrecision("time", req.Time.array(), meta.Precision); err != nil {
				return err
			}
		}
	}

	return nil
}

// checkPrecision verifies that every element of a carries exactly prec bits
// of significand. The evaluation core never changes an element's precision,
// only its value, so any mismatch must be rejected up front.
func checkPrecision[T Elem](arg string, a *Array[T], prec uint) error {
	if a.Rank() == 1 {
		for i := 0; i < a.Shape(0); i++ {
			if p := elemPrec(a.at1(i)); p != prec {
				return &PrecisionError{Arg: arg, Index: i, Expected: prec, Actual: p}
			}
		}
		return nil
	}
	for i := 0; i < a.Shape(0); i++ {
		for j := 0; j < a.Shape(1); j++ {
			if p := elemPrec(a.at2(i, j)); p != prec {
				return &PrecisionError{Arg: arg, Index: i*a.Shape(1) + j, Expected: prec, Actual: p}
			}
		}
	}
	return nil
}
