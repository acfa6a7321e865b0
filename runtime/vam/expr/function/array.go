package function

import (
	"fmt"

	"github.com/brimdata/cond"
	"github.com/brimdata/cond/runtime/vam/expr"
	"github.com/brimdata/cond/vector"
)

// Array builds one array per row from its arguments, array(a, b, ...).
// The element type is the least supertype of the argument types.
// Nullable and null arguments are not supported.
type Array struct {
	sctx *cond.Context
}

func NewArray(sctx *cond.Context) *Array {
	return &Array{sctx}
}

func (*Array) Name() string {
	return "array"
}

func (a *Array) ReturnType(types []cond.Type) (cond.Type, error) {
	if len(types) == 0 {
		return nil, expr.NewError(expr.ErrArity, -1, "array needs at least one element")
	}
	for k, typ := range types {
		if cond.IsNullType(typ) || cond.IsNullable(typ) {
			return nil, expr.NewError(expr.ErrArrayNullElements, k, typ.String())
		}
	}
	elem, err := expr.LeastSupertype(a.sctx, types)
	if err != nil {
		return nil, err
	}
	return a.sctx.LookupTypeArray(elem), nil
}

func (a *Array) Exec(b *vector.Batch, args []int, result int) error {
	if err := b.Validate(args, result); err != nil {
		return err
	}
	typ, err := a.ReturnType(b.Types(args))
	if err != nil {
		return err
	}
	arrType, ok := typ.(*cond.TypeArray)
	if !ok {
		return fmt.Errorf("array: unexpected result type %s", typ)
	}
	n := b.Len()
	rows := n
	allConst := true
	for _, k := range args {
		if _, ok := b.Columns[k].Vec.(*vector.Const); !ok {
			allConst = false
			break
		}
	}
	if allConst && n > 0 {
		rows = 1
	}
	values := vector.NewBuilder(arrType.Type)
	offsets := make([]uint32, 1, rows+1)
	for row := range rows {
		for _, k := range args {
			values.Append(b.Columns[k].Vec, row)
		}
		offsets = append(offsets, offsets[row]+uint32(len(args)))
	}
	var out vector.Any = vector.NewArray(arrType, offsets, values.Build())
	if rows != n {
		out = vector.NewConst(out, n)
	}
	b.Columns[result].Type = typ
	b.Columns[result].Vec = out
	return nil
}
