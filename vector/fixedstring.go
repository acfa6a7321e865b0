package vector

import (
	"github.com/brimdata/cond"
)

// FixedString stores strings of exactly Typ.Len bytes each.  Shorter
// values are padded with zero bytes on write.
type FixedString struct {
	Typ   *cond.TypeFixedString
	Bytes []byte
}

var _ Any = (*FixedString)(nil)

func NewFixedString(typ *cond.TypeFixedString, bytes []byte) *FixedString {
	return &FixedString{Typ: typ, Bytes: bytes}
}

func NewFixedStringEmpty(typ *cond.TypeFixedString, cap uint32) *FixedString {
	return NewFixedString(typ, make([]byte, 0, int(cap)*typ.Len))
}

func NewFixedStringFromValues(typ *cond.TypeFixedString, vals ...string) *FixedString {
	f := NewFixedStringEmpty(typ, uint32(len(vals)))
	for _, v := range vals {
		f.Append([]byte(v))
	}
	return f
}

// Append writes v truncated or zero-padded to the fixed width.
func (f *FixedString) Append(v []byte) {
	n := f.Typ.Len
	if len(v) > n {
		v = v[:n]
	}
	f.Bytes = append(f.Bytes, v...)
	for range n - len(v) {
		f.Bytes = append(f.Bytes, 0)
	}
}

func (f *FixedString) Type() cond.Type {
	return f.Typ
}

func (f *FixedString) Len() uint32 {
	return uint32(len(f.Bytes) / f.Typ.Len)
}

func (f *FixedString) BytesAt(slot uint32) []byte {
	n := uint32(f.Typ.Len)
	return f.Bytes[slot*n : (slot+1)*n]
}
