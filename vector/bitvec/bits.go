// Package bitvec implements the dense bit vectors used as null bitmaps.
// The zero value (Zero) means "no bitmap", which readers treat as all
// bits clear.
package bitvec

import (
	"math/bits"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"
)

type Bits struct {
	bits   []uint64
	length uint32
}

var Zero Bits

func New(bits []uint64, length uint32) Bits {
	return Bits{bits: bits, length: length}
}

func NewFalse(length uint32) Bits {
	return Bits{bits: make([]uint64, (length+63)/64), length: length}
}

func NewTrue(length uint32) Bits {
	b := NewFalse(length)
	for i := range b.bits {
		b.bits[i] = ^uint64(0)
	}
	return b
}

// FromRoaring returns a bit vector of the given length with the bits in
// bm set.
func FromRoaring(bm *roaring.Bitmap, length uint32) Bits {
	b := NewFalse(length)
	if bm != nil && !bm.IsEmpty() {
		bm.WriteDenseTo(b.bits)
	}
	return b
}

func (b Bits) IsZero() bool {
	return b.length == 0
}

func (b Bits) Len() uint32 {
	return b.length
}

// IsSet is nil safe: a Zero receiver has no bits set.
func (b Bits) IsSet(slot uint32) bool {
	return !b.IsZero() && b.IsSetDirect(slot)
}

func (b Bits) IsSetDirect(slot uint32) bool {
	return b.bits[slot>>6]&(1<<(slot&0x3f)) != 0
}

// Set sets the bit at slot, which must be smaller than the length of an
// allocated vector.
func (b Bits) Set(slot uint32) {
	b.bits[slot>>6] |= 1 << (slot & 0x3f)
}

// GetBits returns the underlying storage with unused tail bits cleared.
func (b Bits) GetBits() []uint64 {
	if unused := 64 - b.length%64; unused < 64 {
		b.bits[len(b.bits)-1] &= ^uint64(0) >> unused
	}
	return b.bits
}

func (b Bits) Clone() Bits {
	if b.IsZero() {
		return Zero
	}
	return Bits{bits: append([]uint64(nil), b.bits...), length: b.length}
}

func (b Bits) Pick(index []uint32) Bits {
	if b.IsZero() || len(index) == 0 {
		return Zero
	}
	out := NewFalse(uint32(len(index)))
	for k, slot := range index {
		if b.IsSetDirect(slot) {
			out.Set(uint32(k))
		}
	}
	return out
}

func (b Bits) TrueCount() uint32 {
	if b.IsZero() {
		return 0
	}
	var n int
	for _, w := range b.GetBits() {
		n += bits.OnesCount64(w)
	}
	return uint32(n)
}

// Equal compares two vectors treating Zero as a vector with no bits set.
func Equal(a, b Bits) bool {
	if a.IsZero() || b.IsZero() {
		return a.TrueCount() == 0 && b.TrueCount() == 0
	}
	if a.length != b.length {
		return false
	}
	x, y := a.GetBits(), b.GetBits()
	for i := range x {
		if x[i] != y[i] {
			return false
		}
	}
	return true
}

// String renders the vector as a string of ones and zeros, which is
// handy in test failures.
func (b Bits) String() string {
	if b.IsZero() {
		return "empty"
	}
	var s strings.Builder
	for k := range b.length {
		if b.IsSetDirect(k) {
			s.WriteByte('1')
		} else {
			s.WriteByte('0')
		}
	}
	return s.String()
}

func Or(a, b Bits) Bits {
	if b.IsZero() {
		return a
	}
	if a.IsZero() {
		return b
	}
	if a.length != b.length {
		panic("or'ing two different length bit vectors")
	}
	out := NewFalse(a.length)
	for i := range a.bits {
		out.bits[i] = a.bits[i] | b.bits[i]
	}
	return out
}

func And(a, b Bits) Bits {
	if a.IsZero() || b.IsZero() {
		return Zero
	}
	if a.length != b.length {
		panic("and'ing two different length bit vectors")
	}
	out := NewFalse(a.length)
	for i := range a.bits {
		out.bits[i] = a.bits[i] & b.bits[i]
	}
	return out
}

// FromRoaringOf is shorthand for FromRoaring over a bitmap of the given
// positions.
func FromRoaringOf(length uint32, positions ...uint32) Bits {
	return FromRoaring(roaring.BitmapOf(positions...), length)
}
