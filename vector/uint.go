package vector

import (
	"github.com/brimdata/cond"
)

type Uint struct {
	Typ    cond.Type
	Values []uint64
}

var _ Any = (*Uint)(nil)

func NewUint(typ cond.Type, values []uint64) *Uint {
	return &Uint{Typ: typ, Values: values}
}

func NewUintEmpty(typ cond.Type, cap uint32) *Uint {
	return NewUint(typ, make([]uint64, 0, cap))
}

func (u *Uint) Append(v uint64) {
	u.Values = append(u.Values, v)
}

func (u *Uint) Type() cond.Type {
	return u.Typ
}

func (u *Uint) Len() uint32 {
	return uint32(len(u.Values))
}

func (u *Uint) Value(slot uint32) uint64 {
	return u.Values[slot]
}
