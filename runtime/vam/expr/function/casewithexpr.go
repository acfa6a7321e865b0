package function

import (
	"fmt"

	"github.com/brimdata/cond"
	"github.com/brimdata/cond/runtime/vam/expr"
	"github.com/brimdata/cond/vector"
)

// CaseWithExpr implements CASE x WHEN v1 THEN r1 ... ELSE e, called with
// the arguments x, v1, r1, ..., vn, rn, e.  It is computed as
// transform(x, array(v1, ..., vn), array(r1, ..., rn), e).  Arrays cannot
// hold nulls, so when a THEN result is nullable or null it is computed as
// multiIf(x = v1, r1, ..., x = vn, rn, e) instead.
type CaseWithExpr struct {
	array     *Array
	transform *Transform
	cases     *expr.MultiIf
}

var _ expr.Function = (*CaseWithExpr)(nil)

func NewCaseWithExpr(sctx *cond.Context, opts ...expr.Option) *CaseWithExpr {
	return &CaseWithExpr{
		array:     NewArray(sctx),
		transform: NewTransform(sctx),
		cases:     expr.NewMultiIf(sctx, append(opts[:len(opts):len(opts)], expr.CaseMode())...),
	}
}

func (*CaseWithExpr) Name() string {
	return "CASE"
}

func checkCaseArity(n int) error {
	if n < 4 || n%2 != 0 {
		return expr.NewError(expr.ErrArity, -1, fmt.Sprintf("got %d, need an even number of at least 4", n))
	}
	return nil
}

// splitCase splits the arguments into the operand, the WHEN values, the
// THEN results and the ELSE value.
func splitCase[T any](args []T) (T, []T, []T, T) {
	n := len(args)
	var whens, thens []T
	for k := 1; k < n-1; k += 2 {
		whens = append(whens, args[k])
		thens = append(thens, args[k+1])
	}
	return args[0], whens, thens, args[n-1]
}

func (c *CaseWithExpr) ReturnType(types []cond.Type) (cond.Type, error) {
	typ, err := c.returnType(types)
	if err != nil {
		return nil, expr.Relabel(err, c.Name(), true)
	}
	return typ, nil
}

func (c *CaseWithExpr) returnType(types []cond.Type) (cond.Type, error) {
	if err := checkCaseArity(len(types)); err != nil {
		return nil, err
	}
	x, whens, thens, els := splitCase(types)
	if anyNullable(thens) {
		for k, when := range whens {
			if !comparableTypes(x, when) {
				return nil, expr.NewError(expr.ErrIncompatibleBranches, 2*k+1, x.String()+" cannot be compared with "+when.String())
			}
		}
		return c.cases.ReturnType(conditionTypes(thens, els))
	}
	from, err := c.array.ReturnType(whens)
	if err != nil {
		return nil, err
	}
	to, err := c.array.ReturnType(thens)
	if err != nil {
		return nil, err
	}
	return c.transform.ReturnType([]cond.Type{x, from, to, els})
}

func (c *CaseWithExpr) Exec(b *vector.Batch, args []int, result int) error {
	if err := checkCaseArity(len(args)); err != nil {
		return expr.Relabel(err, c.Name(), true)
	}
	if err := b.Validate(args, result); err != nil {
		return err
	}
	scratch := b.Clone()
	x, whens, thens, els := splitCase(args)
	if anyNullable(b.Types(thens)) {
		if _, err := c.ReturnType(b.Types(args)); err != nil {
			return err
		}
		cargs := make([]int, 0, 2*len(whens)+1)
		for k, when := range whens {
			match := matches(scratch.Columns[x].Vec, scratch.Columns[when].Vec, b.Len())
			cargs = append(cargs, scratch.Append(vector.Column{Name: fmt.Sprintf("when%d", k), Type: cond.TypeBool, Vec: match}), thens[k])
		}
		cargs = append(cargs, els)
		out := scratch.Append(vector.Column{Name: b.Columns[result].Name})
		if err := c.cases.Exec(scratch, cargs, out); err != nil {
			return err
		}
		b.Columns[result] = scratch.Columns[out]
		return nil
	}
	from := scratch.Append(vector.Column{Name: "from"})
	to := scratch.Append(vector.Column{Name: "to"})
	out := scratch.Append(vector.Column{Name: b.Columns[result].Name})
	if err := c.array.Exec(scratch, whens, from); err != nil {
		return expr.Relabel(err, c.Name(), true)
	}
	if err := c.array.Exec(scratch, thens, to); err != nil {
		return expr.Relabel(err, c.Name(), true)
	}
	if err := c.transform.Exec(scratch, []int{x, from, to, els}, out); err != nil {
		return expr.Relabel(err, c.Name(), true)
	}
	b.Columns[result] = scratch.Columns[out]
	return nil
}

func anyNullable(types []cond.Type) bool {
	for _, typ := range types {
		if cond.IsNullType(typ) || cond.IsNullable(typ) {
			return true
		}
	}
	return false
}

// conditionTypes returns the multiIf argument types for the THEN types
// thens and the ELSE type els.
func conditionTypes(thens []cond.Type, els cond.Type) []cond.Type {
	out := make([]cond.Type, 0, 2*len(thens)+1)
	for _, typ := range thens {
		out = append(out, cond.TypeBool, typ)
	}
	return append(out, els)
}

// matches returns for each of n rows whether x equals v.
func matches(x, v vector.Any, n uint32) *vector.Bool {
	vals := make([]bool, n)
	for row := range n {
		vals[row] = equal(x, row, v, row)
	}
	return vector.NewBoolFromValues(vals...)
}
