package expr

import (
	"github.com/brimdata/cond"
	"github.com/brimdata/cond/vector"
)

// Strings evaluates multiIf over strings and fixed strings.  Fixed
// strings are written as strings when the result is a string, padding
// included.
type Strings struct{}

func (*Strings) Name() string {
	return "string"
}

func (*Strings) Eval(b *vector.Batch, args []int, result int, t Tracking) (bool, error) {
	return evalGather(b, args, result, t, cond.IsStringFamily, scalar)
}

// StringArrays evaluates multiIf over arrays, at any depth, of strings
// and fixed strings.
type StringArrays struct{}

func (*StringArrays) Name() string {
	return "string_array"
}

func (*StringArrays) Eval(b *vector.Batch, args []int, result int, t Tracking) (bool, error) {
	return evalGather(b, args, result, t, cond.IsStringFamily, nested)
}

func evalGather(b *vector.Batch, args []int, result int, t Tracking, pred func(cond.Type) bool, depths func(int) bool) (bool, error) {
	if !claims(b, args, result, pred, depths) {
		return false, nil
	}
	sel, err := newSelection(b, args)
	if err != nil {
		return false, err
	}
	b.Columns[result].Vec = sel.gather(b, b.Columns[result].Type)
	t.Write(b, sel.tracker())
	return true, nil
}
