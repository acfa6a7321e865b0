package vector

import (
	"github.com/brimdata/cond"
	"github.com/brimdata/cond/vector/bitvec"
)

type Bool struct {
	Bits bitvec.Bits
}

var _ Any = (*Bool)(nil)

func NewBool(bits bitvec.Bits) *Bool {
	return &Bool{Bits: bits}
}

func NewFalse(length uint32) *Bool {
	return NewBool(bitvec.NewFalse(length))
}

func NewTrue(length uint32) *Bool {
	return NewBool(bitvec.NewTrue(length))
}

// NewBoolFromValues is a convenience for building small vectors.
func NewBoolFromValues(vals ...bool) *Bool {
	b := NewFalse(uint32(len(vals)))
	for k, v := range vals {
		if v {
			b.Bits.Set(uint32(k))
		}
	}
	return b
}

func (*Bool) Type() cond.Type {
	return cond.TypeBool
}

func (b *Bool) Len() uint32 {
	return b.Bits.Len()
}

func (b *Bool) Value(slot uint32) bool {
	return b.Bits.IsSet(slot)
}

// TrueCount returns the number of true values.  It is nil safe.
func (b *Bool) TrueCount() uint32 {
	if b == nil {
		return 0
	}
	return b.Bits.TrueCount()
}
