package function

import (
	"errors"
	"fmt"

	"github.com/agnivade/levenshtein"
	"github.com/brimdata/cond"
	"github.com/brimdata/cond/runtime/vam/expr"
)

var (
	ErrNoSuchFunction = errors.New("no such function")
	ErrTooFewArgs     = errors.New("too few arguments")
	ErrTooManyArgs    = errors.New("too many arguments")
)

var names = []string{
	"array",
	"caseWithExpression",
	"caseWithoutExpression",
	"if",
	"multiIf",
	"transform",
}

// New returns the function name for a call with narg arguments.  The
// options configure the conditional functions.
func New(sctx *cond.Context, name string, narg int, opts ...expr.Option) (expr.Function, error) {
	argmin := 1
	argmax := 1
	var f expr.Function
	switch name {
	case "array":
		argmax = -1
		f = NewArray(sctx)
	case "caseWithExpression":
		argmin, argmax = 4, -1
		f = NewCaseWithExpr(sctx, opts...)
	case "caseWithoutExpression":
		argmin, argmax = 3, -1
		f = expr.NewMultiIf(sctx, append(opts, expr.CaseMode())...)
	case "if":
		argmin, argmax = 3, 3
		f = expr.NewMultiIf(sctx, append(opts, expr.WithName("if"))...)
	case "multiIf":
		argmin, argmax = 3, -1
		f = expr.NewMultiIf(sctx, opts...)
	case "transform":
		argmin, argmax = 4, 4
		f = NewTransform(sctx)
	default:
		if s := suggest(name); s != "" {
			return nil, fmt.Errorf("%w: %s (did you mean %s?)", ErrNoSuchFunction, name, s)
		}
		return nil, fmt.Errorf("%w: %s", ErrNoSuchFunction, name)
	}
	if err := CheckArgCount(narg, argmin, argmax); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return f, nil
}

func CheckArgCount(narg int, argmin int, argmax int) error {
	if argmin != -1 && narg < argmin {
		return ErrTooFewArgs
	}
	if argmax != -1 && narg > argmax {
		return ErrTooManyArgs
	}
	return nil
}

// suggest returns the known function name closest to name if it is
// within a few edits.
func suggest(name string) string {
	best, dist := "", 4
	for _, candidate := range names {
		if d := levenshtein.ComputeDistance(name, candidate); d < dist {
			best, dist = candidate, d
		}
	}
	return best
}
