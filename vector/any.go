package vector

import (
	"github.com/brimdata/cond"
	"github.com/brimdata/cond/vector/bitvec"
)

// Any is implemented by every vector kind in this package: *Bool, *Int,
// *Uint, *Float, *String, *FixedString, *Array, *Nullable, *Null and
// *Const.  Code that dispatches on the payload of a vector type switches
// over exactly these kinds.
type Any interface {
	Type() cond.Type
	Len() uint32
}

// Under returns the vector beneath a nullable wrapper.  A constant of a
// nullable type becomes a constant of the wrapped type.
func Under(vec Any) Any {
	switch vec := vec.(type) {
	case *Nullable:
		return vec.Values
	case *Const:
		if n, ok := vec.Value.(*Nullable); ok {
			return NewConst(n.Values, vec.Len())
		}
	}
	return vec
}

// IsNullable is true when vec carries a null bitmap, either directly or
// as the value of a constant.
func IsNullable(vec Any) bool {
	switch vec := vec.(type) {
	case *Nullable:
		return true
	case *Const:
		_, ok := vec.Value.(*Nullable)
		return ok
	}
	return false
}

// IsNull is true for vectors of the null type, including constants.
func IsNull(vec Any) bool {
	return cond.IsNullType(vec.Type())
}

// NullsOf returns the null bitmap of vec.  Vectors that cannot hold nulls
// return bitvec.Zero and the null vector returns a bitmap with every bit
// set.
func NullsOf(vec Any) bitvec.Bits {
	switch vec := vec.(type) {
	case *Nullable:
		return vec.Nulls
	case *Null:
		return bitvec.NewTrue(vec.Len())
	case *Const:
		if IsNullAt(vec.Value, 0) {
			return bitvec.NewTrue(vec.Len())
		}
	}
	return bitvec.Zero
}

// IsNullAt reports whether the value at slot is null.
func IsNullAt(vec Any, slot uint32) bool {
	switch vec := vec.(type) {
	case *Nullable:
		return vec.Nulls.IsSet(slot)
	case *Null:
		return true
	case *Const:
		return IsNullAt(vec.Value, 0)
	}
	return false
}
