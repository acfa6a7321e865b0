package vector

import (
	"fmt"

	"github.com/brimdata/cond"
)

// Const is a single value repeated for every row.  Value is a vector of
// length one holding that value.
type Const struct {
	Value  Any
	length uint32
}

var _ Any = (*Const)(nil)

func NewConst(val Any, length uint32) *Const {
	if val.Len() != 1 {
		panic(fmt.Sprintf("constant value must have length 1 (got %d)", val.Len()))
	}
	if c, ok := val.(*Const); ok {
		val = c.Value
	}
	return &Const{Value: val, length: length}
}

func (c *Const) Type() cond.Type {
	return c.Value.Type()
}

func (c *Const) Len() uint32 {
	return c.length
}

func NewConstInt(typ cond.Type, v int64, length uint32) *Const {
	return NewConst(NewInt(typ, []int64{v}), length)
}

func NewConstUint(typ cond.Type, v uint64, length uint32) *Const {
	return NewConst(NewUint(typ, []uint64{v}), length)
}

func NewConstFloat(typ cond.Type, v float64, length uint32) *Const {
	return NewConst(NewFloat(typ, []float64{v}), length)
}

func NewConstBool(v bool, length uint32) *Const {
	return NewConst(NewBoolFromValues(v), length)
}

func NewConstString(v string, length uint32) *Const {
	return NewConst(NewStringFromValues(v), length)
}
