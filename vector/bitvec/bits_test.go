package bitvec

import (
	"testing"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/stretchr/testify/assert"
)

func TestBitsGetBits(t *testing.T) {
	assert.Equal(t, []uint64{0x0f}, New([]uint64{0xff}, 4).GetBits())
}

func TestBitsTrueCount(t *testing.T) {
	assert.EqualValues(t, 0, Zero.TrueCount())
	bits := []uint64{0xff}
	assert.EqualValues(t, 1, New(bits, 1).TrueCount())
	assert.EqualValues(t, 8, New([]uint64{0xff}, 64).TrueCount())
	assert.EqualValues(t, 8, New([]uint64{0xff, 0xff << 56}, 65).TrueCount())
	assert.EqualValues(t, 16, New([]uint64{0xff, 0xff << 56}, 128).TrueCount())
	assert.EqualValues(t, 70, NewTrue(70).TrueCount())
}

func TestBitsSet(t *testing.T) {
	b := NewFalse(100)
	b.Set(0)
	b.Set(64)
	b.Set(99)
	assert.True(t, b.IsSet(64))
	assert.False(t, b.IsSet(63))
	assert.EqualValues(t, 3, b.TrueCount())
	assert.False(t, Zero.IsSet(3))
}

func TestBitsFromRoaring(t *testing.T) {
	b := FromRoaring(roaring.BitmapOf(1, 3, 70), 72)
	assert.Equal(t, uint32(72), b.Len())
	assert.True(t, b.IsSet(1))
	assert.True(t, b.IsSet(3))
	assert.True(t, b.IsSet(70))
	assert.EqualValues(t, 3, b.TrueCount())
	assert.Equal(t, "0101", FromRoaring(roaring.BitmapOf(1, 3), 4).String())
}

func TestBitsEqual(t *testing.T) {
	assert.True(t, Equal(Zero, NewFalse(10)))
	assert.False(t, Equal(Zero, NewTrue(10)))
	a := NewFalse(5)
	a.Set(2)
	b := a.Clone()
	assert.True(t, Equal(a, b))
	b.Set(3)
	assert.False(t, Equal(a, b))
	assert.Equal(t, "00100", a.String())
}

func TestBitsPickAndLogic(t *testing.T) {
	a := FromRoaring(roaring.BitmapOf(0, 2), 4)
	assert.Equal(t, "11", a.Pick([]uint32{0, 2}).String())
	b := FromRoaring(roaring.BitmapOf(1, 2), 4)
	assert.Equal(t, "1110", Or(a, b).String())
	assert.Equal(t, "0010", And(a, b).String())
	assert.True(t, And(a, Zero).IsZero())
}
