package vector

import (
	"github.com/brimdata/cond"
)

// Null is a column of the null type.  Every row holds the single null
// value so no payload is stored.
type Null struct {
	length uint32
}

var _ Any = (*Null)(nil)

func NewNull(length uint32) *Null {
	return &Null{length}
}

func (*Null) Type() cond.Type {
	return cond.TypeNull
}

func (n *Null) Len() uint32 {
	return n.length
}
