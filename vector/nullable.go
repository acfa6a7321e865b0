package vector

import (
	"github.com/brimdata/cond"
	"github.com/brimdata/cond/vector/bitvec"
)

// Nullable wraps a vector of the underlying type with a null bitmap of
// the same length.  Values at null slots are unspecified.
type Nullable struct {
	Typ    *cond.TypeNullable
	Values Any
	Nulls  bitvec.Bits
}

var _ Any = (*Nullable)(nil)

func NewNullable(typ *cond.TypeNullable, values Any, nulls bitvec.Bits) *Nullable {
	return &Nullable{Typ: typ, Values: values, Nulls: nulls}
}

func (n *Nullable) Type() cond.Type {
	return n.Typ
}

func (n *Nullable) Len() uint32 {
	return n.Values.Len()
}

// NewNullableOf wraps values using sctx to find the nullable type.
func NewNullableOf(sctx *cond.Context, values Any, nulls bitvec.Bits) *Nullable {
	typ := sctx.LookupTypeNullable(values.Type()).(*cond.TypeNullable)
	return NewNullable(typ, values, nulls)
}
