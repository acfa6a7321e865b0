package vector

import (
	"github.com/brimdata/cond"
)

// Array holds one array per row.  Row k's elements are
// Values[Offsets[k]:Offsets[k+1]].
type Array struct {
	Typ     *cond.TypeArray
	Offsets []uint32
	Values  Any
}

var _ Any = (*Array)(nil)

func NewArray(typ *cond.TypeArray, offsets []uint32, values Any) *Array {
	return &Array{Typ: typ, Offsets: offsets, Values: values}
}

func (a *Array) Type() cond.Type {
	return a.Typ
}

func (a *Array) Len() uint32 {
	return uint32(len(a.Offsets) - 1)
}

// ContainerOffset returns the element range of the array at slot in vec,
// looking through constants and nullable wrappers, along with whether the
// value is null.
func ContainerOffset(vec Any, slot uint32) (Any, uint32, uint32, bool) {
	switch vec := vec.(type) {
	case *Array:
		return vec.Values, vec.Offsets[slot], vec.Offsets[slot+1], false
	case *Const:
		return ContainerOffset(vec.Value, 0)
	case *Nullable:
		if vec.Nulls.IsSet(slot) {
			return nil, 0, 0, true
		}
		return ContainerOffset(vec.Values, slot)
	case *Null:
		return nil, 0, 0, true
	}
	panic(vec)
}
