package vector

import (
	"github.com/brimdata/cond"
)

// Int holds signed integers of any width in 64-bit storage; the width
// is carried by Typ.
type Int struct {
	Typ    cond.Type
	Values []int64
}

var _ Any = (*Int)(nil)

func NewInt(typ cond.Type, values []int64) *Int {
	return &Int{Typ: typ, Values: values}
}

func NewIntEmpty(typ cond.Type, cap uint32) *Int {
	return NewInt(typ, make([]int64, 0, cap))
}

func (i *Int) Append(v int64) {
	i.Values = append(i.Values, v)
}

func (i *Int) Type() cond.Type {
	return i.Typ
}

func (i *Int) Len() uint32 {
	return uint32(len(i.Values))
}

func (i *Int) Value(slot uint32) int64 {
	return i.Values[slot]
}
