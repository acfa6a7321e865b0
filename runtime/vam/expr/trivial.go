package expr

import (
	"github.com/brimdata/cond/vector"
)

// Trivial handles the case where every condition is a constant and every
// non-null branch has exactly the result type, so the whole batch takes
// the value of one branch.  It also handles the case where every branch
// is the null type, whatever the conditions.
type Trivial struct{}

func (*Trivial) Name() string {
	return "trivial"
}

func (*Trivial) Eval(b *vector.Batch, args []int, result int, t Tracking) (bool, error) {
	n := b.Len()
	witness := -1
	for _, pos := range branchArgs(len(args)) {
		if !vector.IsNull(b.Columns[args[pos]].Vec) {
			witness = pos
			break
		}
	}
	if witness < 0 {
		b.Columns[result].Vec = vector.NewNull(n)
		t.Write(b, constTracker(args[elseArg(len(args))], n))
		return true, nil
	}
	name := b.Columns[result].Type.String()
	for _, pos := range branchArgs(len(args)) {
		vec := b.Columns[args[pos]].Vec
		if !vector.IsNull(vec) && vec.Type().String() != name {
			return false, nil
		}
	}
	selected := -1
	for i := range condCount(len(args)) {
		pos := condArg(i)
		v, ok, err := constCondition(b.Columns[args[pos]].Vec, pos)
		if err != nil || !ok {
			return false, err
		}
		if v && selected < 0 {
			selected = thenArg(i)
		}
	}
	if selected < 0 {
		selected = elseArg(len(args))
	}
	out := b.Columns[args[selected]].Vec
	if vector.IsNull(out) {
		typ := b.Columns[result].Type
		if n == 0 {
			out = vector.NewBuilder(typ).Build()
		} else {
			out = vector.NewConst(vector.Slot(b.Columns[args[witness]].Vec, 0), n)
		}
	}
	b.Columns[result].Vec = out
	t.Write(b, constTracker(args[selected], n))
	return true, nil
}
