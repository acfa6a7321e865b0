package expr

import (
	"github.com/brimdata/cond"
	"github.com/brimdata/cond/vector"
)

// Numeric evaluates multiIf over numbers, bools and arrays of them.
// Values are converted to the result type, which type resolution has
// chosen to hold every branch without loss.
type Numeric struct{}

func (*Numeric) Name() string {
	return "numeric"
}

func (*Numeric) Eval(b *vector.Batch, args []int, result int, t Tracking) (bool, error) {
	if !claims(b, args, result, isNumberOrBool, anyDepth) {
		return false, nil
	}
	sel, err := newSelection(b, args)
	if err != nil {
		return false, err
	}
	typ := b.Columns[result].Type
	var out vector.Any
	switch id := typ.ID(); {
	case cond.IsSigned(id):
		out = vector.NewInt(typ, gatherNumbers(sel, sel.sources(b), vector.IntValue))
	case cond.IsUnsigned(id):
		out = vector.NewUint(typ, gatherNumbers(sel, sel.sources(b), vector.UintValue))
	case cond.IsFloat(id):
		out = vector.NewFloat(typ, gatherNumbers(sel, sel.sources(b), vector.FloatValue))
	default:
		out = sel.gather(b, typ)
	}
	b.Columns[result].Vec = out
	t.Write(b, sel.tracker())
	return true, nil
}
