package expr

import (
	"github.com/brimdata/cond"
	"github.com/brimdata/cond/vector"
)

// leaf returns the innermost element type of typ and its array depth.
func leaf(typ cond.Type) (cond.Type, int) {
	var depth int
	for {
		arr, ok := typ.(*cond.TypeArray)
		if !ok {
			return typ, depth
		}
		typ = arr.Type
		depth++
	}
}

func isNumberOrBool(typ cond.Type) bool {
	return cond.IsNumber(typ.ID()) || typ.ID() == cond.IDBool
}

// claims reports whether the result column and every non-null branch
// column have array depth in depths and a non-nullable leaf type
// satisfying pred.
func claims(b *vector.Batch, args []int, result int, pred func(cond.Type) bool, depths func(int) bool) bool {
	ok := func(typ cond.Type) bool {
		if cond.IsNullable(typ) {
			return false
		}
		elem, depth := leaf(typ)
		return depths(depth) && !cond.IsNullable(elem) && pred(elem)
	}
	rtyp, _ := leaf(b.Columns[result].Type)
	_, rdepth := leaf(b.Columns[result].Type)
	if !ok(b.Columns[result].Type) || cond.IsNullType(rtyp) {
		return false
	}
	for _, pos := range branchArgs(len(args)) {
		typ := b.Columns[args[pos]].Type
		if cond.IsNullType(typ) {
			continue
		}
		if _, depth := leaf(typ); depth != rdepth || !ok(typ) {
			return false
		}
	}
	return true
}

func scalar(depth int) bool {
	return depth == 0
}

func anyDepth(int) bool {
	return true
}

func nested(depth int) bool {
	return depth > 0
}
