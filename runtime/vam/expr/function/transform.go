package function

import (
	"bytes"

	"github.com/brimdata/cond"
	"github.com/brimdata/cond/runtime/vam/expr"
	"github.com/brimdata/cond/vector"
)

// Transform implements transform(x, from, to, default), which maps x to
// to[i] for the first i where from[i] equals x and to default when there
// is no such i.  A null x equals nothing.
type Transform struct {
	sctx *cond.Context
}

func NewTransform(sctx *cond.Context) *Transform {
	return &Transform{sctx}
}

func (*Transform) Name() string {
	return "transform"
}

func (t *Transform) ReturnType(types []cond.Type) (cond.Type, error) {
	if len(types) != 4 {
		return nil, expr.NewError(expr.ErrArity, -1, "transform needs four arguments")
	}
	from, ok := types[1].(*cond.TypeArray)
	if !ok {
		return nil, expr.NewError(expr.ErrIncompatibleBranches, 1, "expected array, got "+types[1].String())
	}
	to, ok := types[2].(*cond.TypeArray)
	if !ok {
		return nil, expr.NewError(expr.ErrIncompatibleBranches, 2, "expected array, got "+types[2].String())
	}
	if !comparableTypes(types[0], from.Type) {
		return nil, expr.NewError(expr.ErrIncompatibleBranches, 0, types[0].String()+" cannot be compared with "+from.Type.String())
	}
	return expr.LeastSupertype(t.sctx, []cond.Type{to.Type, types[3]})
}

// comparableTypes reports whether values of types a and b can be tested for
// equality.
func comparableTypes(a, b cond.Type) bool {
	if cond.IsNullType(a) || cond.IsNullType(b) {
		return true
	}
	a, b = cond.TypeUnder(a), cond.TypeUnder(b)
	switch {
	case cond.IsNumber(a.ID()) && cond.IsNumber(b.ID()):
		return true
	case cond.IsStringFamily(a) && cond.IsStringFamily(b):
		return true
	}
	arrA, okA := a.(*cond.TypeArray)
	arrB, okB := b.(*cond.TypeArray)
	if okA && okB {
		return comparableTypes(arrA.Type, arrB.Type)
	}
	return a.String() == b.String()
}

func (t *Transform) Exec(b *vector.Batch, args []int, result int) error {
	if err := b.Validate(args, result); err != nil {
		return err
	}
	if len(args) != 4 {
		return expr.NewError(expr.ErrArity, -1, "transform needs four arguments")
	}
	typ, err := t.ReturnType(b.Types(args))
	if err != nil {
		return err
	}
	x := b.Columns[args[0]].Vec
	from := b.Columns[args[1]].Vec
	to := b.Columns[args[2]].Vec
	def := b.Columns[args[3]].Vec
	builder := vector.NewBuilder(typ)
	for row := range b.Len() {
		if vals, slot, ok := lookup(x, from, to, row); ok {
			builder.Append(vals, slot)
		} else if vector.IsNull(def) {
			builder.AppendZero()
		} else {
			builder.Append(def, row)
		}
	}
	b.Columns[result].Type = typ
	b.Columns[result].Vec = builder.Build()
	return nil
}

// lookup finds the element of to that corresponds to the first element of
// from equal to x at row.
func lookup(x, from, to vector.Any, row uint32) (vector.Any, uint32, bool) {
	if vector.IsNullAt(x, row) {
		return nil, 0, false
	}
	fromVals, fromLo, fromHi, null := vector.ContainerOffset(from, row)
	if null {
		return nil, 0, false
	}
	for k := fromLo; k < fromHi; k++ {
		if !equal(x, row, fromVals, k) {
			continue
		}
		toVals, toLo, toHi, null := vector.ContainerOffset(to, row)
		if slot := toLo + k - fromLo; !null && slot < toHi {
			return toVals, slot, true
		}
		return nil, 0, false
	}
	return nil, 0, false
}

// equal compares the value at i in a with the value at j in b, whose types
// are comparable.  Numbers compare by value regardless of type.
func equal(a vector.Any, i uint32, b vector.Any, j uint32) bool {
	if vector.IsNullAt(a, i) || vector.IsNullAt(b, j) {
		return false
	}
	ta, tb := cond.TypeUnder(a.Type()), cond.TypeUnder(b.Type())
	switch {
	case cond.IsNumber(ta.ID()) && cond.IsNumber(tb.ID()):
		if cond.IsFloat(ta.ID()) || cond.IsFloat(tb.ID()) {
			x, _ := vector.FloatValue(a, i)
			y, _ := vector.FloatValue(b, j)
			return x == y
		}
		x, xneg := intKey(a, i)
		y, yneg := intKey(b, j)
		return x == y && xneg == yneg
	case cond.IsStringFamily(ta) && cond.IsStringFamily(tb):
		x, _ := vector.BytesValue(a, i)
		y, _ := vector.BytesValue(b, j)
		return bytes.Equal(x, y)
	case ta.ID() == cond.IDBool:
		x, _ := vector.BoolValue(a, i)
		y, _ := vector.BoolValue(b, j)
		return x == y
	}
	if _, ok := ta.(*cond.TypeArray); ok {
		avals, alo, ahi, _ := vector.ContainerOffset(a, i)
		bvals, blo, bhi, _ := vector.ContainerOffset(b, j)
		if ahi-alo != bhi-blo {
			return false
		}
		for k := range ahi - alo {
			if !equal(avals, alo+k, bvals, blo+k) {
				return false
			}
		}
		return true
	}
	return false
}

// intKey returns an integer as its two's complement bits and whether it
// is negative so signed and unsigned values can be compared.
func intKey(vec vector.Any, slot uint32) (uint64, bool) {
	if cond.IsSigned(cond.TypeUnder(vec.Type()).ID()) {
		v, _ := vector.IntValue(vec, slot)
		return uint64(v), v < 0
	}
	v, _ := vector.UintValue(vec, slot)
	return v, false
}
