package expr

import (
	"github.com/brimdata/cond"
	"github.com/brimdata/cond/runtime/vam/expr/coerce"
)

// ResolveMultiIf returns the result type of multiIf over arguments of the
// given types.  The result depends only on the types.
func ResolveMultiIf(sctx *cond.Context, types []cond.Type) (cond.Type, error) {
	if err := CheckArity(len(types)); err != nil {
		return nil, err
	}
	for i := range condCount(len(types)) {
		pos := condArg(i)
		if !isConditionType(types[pos]) {
			return nil, NewError(ErrInvalidConditionType, pos, types[pos].String())
		}
	}
	return LeastSupertype(sctx, branchTypes(types))
}

// LeastSupertype returns the type that can represent a value of each of
// types.  Arithmetic types are promoted, arrays are unified element-wise,
// and strings of different kinds become string.  The result is nullable
// if any input is nullable or the null type, and it is the null type if
// every input is.
func LeastSupertype(sctx *cond.Context, types []cond.Type) (cond.Type, error) {
	wrap := func(typ cond.Type) cond.Type {
		if anyNullable(types) || anyNullType(types) {
			return sctx.LookupTypeNullable(typ)
		}
		return typ
	}
	switch {
	case allArithmetic(types):
		typ, err := coerce.CommonNumericType(nonNull(types))
		if err != nil {
			return nil, NewError(ErrUpscaleImpossible, -1, typeList(types))
		}
		return wrap(typ), nil
	case allArrays(types):
		elems := make([]cond.Type, 0, len(types))
		for _, typ := range types {
			if cond.IsNullType(typ) {
				elems = append(elems, typ)
				continue
			}
			elem := cond.TypeUnder(typ).(*cond.TypeArray).Type
			if cond.IsNullType(elem) || cond.IsNullable(elem) {
				return nil, NewError(ErrArrayNullElements, -1, typ.String())
			}
			elems = append(elems, elem)
		}
		elem, err := LeastSupertype(sctx, elems)
		if err != nil {
			return nil, err
		}
		return wrap(sctx.LookupTypeArray(cond.TypeUnder(elem))), nil
	case !allIdentical(types):
		if allFixedStrings(types) {
			if !allFixedStringsEqualLength(types) {
				return nil, NewError(ErrFixedStringLengthMismatch, -1, typeList(types))
			}
			return wrap(nonNull(types)[0]), nil
		}
		if allStrings(types) {
			return wrap(cond.TypeString), nil
		}
		return nil, NewError(ErrIncompatibleBranches, -1, typeList(types))
	}
	under := nonNull(types)
	if len(under) == 0 {
		return cond.TypeNull, nil
	}
	return wrap(under[0]), nil
}
