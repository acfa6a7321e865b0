package vector

import (
	"github.com/brimdata/cond"
)

// String stores variable-length strings back to back in Bytes.  Value k
// spans Bytes[Offsets[k]:Offsets[k+1]].
type String struct {
	Offsets []uint32
	Bytes   []byte
}

var _ Any = (*String)(nil)

func NewString(offsets []uint32, bytes []byte) *String {
	return &String{Offsets: offsets, Bytes: bytes}
}

func NewStringEmpty(cap uint32) *String {
	offsets := make([]uint32, 1, cap+1)
	return NewString(offsets, nil)
}

func NewStringFromValues(vals ...string) *String {
	s := NewStringEmpty(uint32(len(vals)))
	for _, v := range vals {
		s.Append(v)
	}
	return s
}

func (s *String) Append(v string) {
	s.Bytes = append(s.Bytes, v...)
	s.Offsets = append(s.Offsets, uint32(len(s.Bytes)))
}

func (s *String) AppendBytes(v []byte) {
	s.Bytes = append(s.Bytes, v...)
	s.Offsets = append(s.Offsets, uint32(len(s.Bytes)))
}

func (*String) Type() cond.Type {
	return cond.TypeString
}

func (s *String) Len() uint32 {
	return uint32(len(s.Offsets) - 1)
}

func (s *String) BytesAt(slot uint32) []byte {
	return s.Bytes[s.Offsets[slot]:s.Offsets[slot+1]]
}

func (s *String) Value(slot uint32) string {
	return string(s.BytesAt(slot))
}
