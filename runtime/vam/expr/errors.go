package expr

import (
	"errors"
	"fmt"
)

// ErrorKind classifies the failures of type resolution and evaluation.
// Each kind is itself an error so callers can test for it with errors.Is.
type ErrorKind int

const (
	ErrArity ErrorKind = iota + 1
	ErrInvalidConditionType
	ErrUpscaleImpossible
	ErrIncompatibleBranches
	ErrFixedStringLengthMismatch
	ErrArrayNullElements
	ErrNoApplicableEvaluator
)

func (k ErrorKind) Error() string {
	switch k {
	case ErrArity:
		return "invalid number of arguments"
	case ErrInvalidConditionType:
		return "invalid condition type"
	case ErrUpscaleImpossible:
		return "no common numeric type"
	case ErrIncompatibleBranches:
		return "incompatible branches"
	case ErrFixedStringLengthMismatch:
		return "fixed string length mismatch"
	case ErrArrayNullElements:
		return "arrays with null elements are not supported"
	case ErrNoApplicableEvaluator:
		return "internal error: no applicable evaluator"
	}
	return fmt.Sprintf("error kind %d", int(k))
}

// Error is a failure of a given kind.  Arg is the index into the argument
// list of the offending argument or -1 when no single argument is at
// fault.  Errors are created without knowing the calling context and
// are given their final wording by Relabel.
type Error struct {
	Kind   ErrorKind
	Arg    int
	Detail string
	msg    string
}

func NewError(kind ErrorKind, arg int, detail string) *Error {
	return &Error{Kind: kind, Arg: arg, Detail: detail}
}

func (e *Error) Error() string {
	if e.msg != "" {
		return e.msg
	}
	s := e.Kind.Error()
	if e.Arg >= 0 {
		s += fmt.Sprintf(" (argument %d)", e.Arg)
	}
	if e.Detail != "" {
		s += ": " + e.Detail
	}
	return s
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// Relabel rewords err for a call of the function name, or for a CASE
// expression when caseMode is set.  The kind, argument and detail are
// preserved and an error that has already been relabeled is returned
// unchanged.
func Relabel(err error, name string, caseMode bool) error {
	var e *Error
	if !errors.As(err, &e) || e.msg != "" {
		return err
	}
	out := *e
	if caseMode {
		out.msg = caseMessage(e)
	} else {
		out.msg = functionMessage(e, name)
	}
	return &out
}

func functionMessage(e *Error, name string) string {
	switch e.Kind {
	case ErrArity:
		return "invalid number of arguments for function " + name
	case ErrInvalidConditionType:
		return fmt.Sprintf("illegal type %s of argument %d (condition) of function %s: must be bool or uint8", e.Detail, e.Arg, name)
	case ErrUpscaleImpossible:
		return fmt.Sprintf("arguments of function %s are not upscalable to a common type without loss of precision: %s", name, e.Detail)
	case ErrIncompatibleBranches:
		return fmt.Sprintf("incompatible branch (then, else) arguments for function %s: %s", name, e.Detail)
	case ErrFixedStringLengthMismatch:
		return fmt.Sprintf("branch (then, else) arguments of function %s have fixedstring type and different sizes: %s", name, e.Detail)
	case ErrArrayNullElements:
		return fmt.Sprintf("branch (then, else) arguments of function %s are arrays with null elements: %s", name, e.Detail)
	case ErrNoApplicableEvaluator:
		return fmt.Sprintf("internal error: one or more branch (then, else) columns of function %s have illegal or incompatible types", name)
	}
	return "an unexpected error has occurred while performing " + name
}

func caseMessage(e *Error) string {
	switch e.Kind {
	case ErrArity:
		return "some mandatory parameters are missing in the CASE construction"
	case ErrInvalidConditionType:
		return fmt.Sprintf("in CASE construction, illegal type %s of WHEN clause %d: must be bool or uint8", e.Detail, e.Arg/2)
	case ErrUpscaleImpossible:
		return "THEN/ELSE clause parameters in CASE construction are not upscalable to a common type without loss of precision: " + e.Detail
	case ErrIncompatibleBranches:
		return "THEN/ELSE clauses in CASE construction have incompatible arguments: " + e.Detail
	case ErrFixedStringLengthMismatch:
		return "THEN/ELSE clauses in CASE construction have fixedstring type and different sizes: " + e.Detail
	case ErrArrayNullElements:
		return "THEN/ELSE clauses in CASE construction are arrays with null elements: " + e.Detail
	case ErrNoApplicableEvaluator:
		return "internal error: some THEN/ELSE clauses in CASE construction have illegal or incompatible types"
	}
	return "an unexpected error has occurred in CASE construction"
}
