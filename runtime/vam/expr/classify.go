package expr

import (
	"strings"

	"github.com/brimdata/cond"
)

// The predicates below classify the types of the then and else branches.
// Null-type branches take the type of the others and are skipped, and
// nullable branches are judged by the type they wrap.  The kind
// predicates are false when every branch is the null type.

func branchTypes(types []cond.Type) []cond.Type {
	out := make([]cond.Type, 0, condCount(len(types))+1)
	for _, pos := range branchArgs(len(types)) {
		out = append(out, types[pos])
	}
	return out
}

func nonNull(types []cond.Type) []cond.Type {
	var out []cond.Type
	for _, typ := range types {
		if !cond.IsNullType(typ) {
			out = append(out, cond.TypeUnder(typ))
		}
	}
	return out
}

func allOf(types []cond.Type, pred func(cond.Type) bool) bool {
	under := nonNull(types)
	if len(under) == 0 {
		return false
	}
	for _, typ := range under {
		if !pred(typ) {
			return false
		}
	}
	return true
}

func allIdentical(types []cond.Type) bool {
	under := nonNull(types)
	for _, typ := range under {
		if typ.String() != under[0].String() {
			return false
		}
	}
	return true
}

func allArithmetic(types []cond.Type) bool {
	return allOf(types, func(typ cond.Type) bool {
		return cond.IsNumber(typ.ID())
	})
}

func allArrays(types []cond.Type) bool {
	return allOf(types, func(typ cond.Type) bool {
		return typ.Kind() == cond.ArrayKind
	})
}

func allStrings(types []cond.Type) bool {
	return allOf(types, cond.IsStringFamily)
}

func allFixedStrings(types []cond.Type) bool {
	return allOf(types, func(typ cond.Type) bool {
		return typ.Kind() == cond.FixedStringKind
	})
}

func allFixedStringsEqualLength(types []cond.Type) bool {
	if !allFixedStrings(types) {
		return false
	}
	under := nonNull(types)
	for _, typ := range under {
		if typ.(*cond.TypeFixedString).Len != under[0].(*cond.TypeFixedString).Len {
			return false
		}
	}
	return true
}

func anyNullable(types []cond.Type) bool {
	for _, typ := range types {
		if cond.IsNullable(typ) {
			return true
		}
	}
	return false
}

func anyNullType(types []cond.Type) bool {
	for _, typ := range types {
		if cond.IsNullType(typ) {
			return true
		}
	}
	return false
}

func isConditionType(typ cond.Type) bool {
	if cond.IsNullType(typ) {
		return true
	}
	id := cond.TypeUnder(typ).ID()
	return id == cond.IDBool || id == cond.IDUint8
}

func typeList(types []cond.Type) string {
	names := make([]string, 0, len(types))
	for _, typ := range types {
		names = append(names, typ.String())
	}
	return strings.Join(names, ", ")
}
