package vector_test

import (
	"testing"

	"github.com/brimdata/cond"
	"github.com/brimdata/cond/vector"
	"github.com/brimdata/cond/vector/bitvec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderConvertsNumbers(t *testing.T) {
	b := vector.NewBuilder(cond.TypeInt64)
	b.Append(vector.NewUint(cond.TypeUint8, []uint64{7, 9}), 1)
	b.Append(vector.NewConstInt(cond.TypeInt16, -3, 10), 4)
	b.AppendZero()
	out := b.Build().(*vector.Int)
	assert.Equal(t, []int64{9, -3, 0}, out.Values)
	assert.Same(t, cond.TypeInt64, out.Type())

	f := vector.NewBuilder(cond.TypeFloat16)
	f.Append(vector.NewFloat(cond.TypeFloat64, []float64{0.1}), 0)
	assert.NotEqual(t, 0.1, f.Build().(*vector.Float).Values[0])
}

func TestBuilderNullable(t *testing.T) {
	sctx := cond.NewContext()
	typ := sctx.LookupTypeNullable(cond.TypeString).(*cond.TypeNullable)
	src := vector.NewNullable(typ, vector.NewStringFromValues("a", "", "c"), bitvec.FromRoaringOf(3, 1))
	b := vector.NewBuilder(typ)
	for slot := range uint32(3) {
		b.Append(src, slot)
	}
	b.Append(vector.NewNull(5), 2)
	b.Append(vector.NewConstString("z", 5), 0)
	out := b.Build().(*vector.Nullable)
	require.EqualValues(t, 5, out.Len())
	assert.Equal(t, "01010", out.Nulls.String())
	s := out.Values.(*vector.String)
	assert.Equal(t, "a", s.Value(0))
	assert.Equal(t, "c", s.Value(2))
	assert.Equal(t, "z", s.Value(4))
}

func TestBuilderArray(t *testing.T) {
	sctx := cond.NewContext()
	typ := sctx.LookupTypeArray(cond.TypeInt32)
	src := vector.NewArray(sctx.LookupTypeArray(cond.TypeInt8), []uint32{0, 2, 2, 3},
		vector.NewInt(cond.TypeInt8, []int64{1, 2, 3}))
	b := vector.NewBuilder(typ)
	b.Append(src, 2)
	b.Append(src, 0)
	b.Append(src, 1)
	out := b.Build().(*vector.Array)
	assert.Equal(t, []uint32{0, 1, 3, 3}, out.Offsets)
	assert.Equal(t, []int64{3, 1, 2}, out.Values.(*vector.Int).Values)
	assert.Same(t, cond.Type(typ), out.Type())
}

func TestFixedStringPadding(t *testing.T) {
	sctx := cond.NewContext()
	typ := sctx.MustLookupTypeFixedString(3)
	v := vector.NewFixedStringFromValues(typ, "ab", "abcd")
	assert.Equal(t, []byte("ab\x00"), v.BytesAt(0))
	assert.Equal(t, []byte("abc"), v.BytesAt(1))
	assert.EqualValues(t, 2, v.Len())
}

func TestPick(t *testing.T) {
	c := vector.Pick(vector.NewConstInt(cond.TypeInt32, 4, 10), []uint32{1, 2})
	require.IsType(t, &vector.Const{}, c)
	assert.EqualValues(t, 2, c.Len())

	s := vector.Pick(vector.NewStringFromValues("a", "b", "c"), []uint32{2, 0})
	assert.Equal(t, "c", s.(*vector.String).Value(0))
	assert.Equal(t, "a", s.(*vector.String).Value(1))

	one := vector.Slot(vector.NewInt(cond.TypeInt8, []int64{5, 6}), 1)
	assert.Equal(t, []int64{6}, one.(*vector.Int).Values)
}

func TestUnderAndNulls(t *testing.T) {
	sctx := cond.NewContext()
	n := vector.NewNullableOf(sctx, vector.NewInt(cond.TypeInt8, []int64{1, 2}), bitvec.FromRoaringOf(2, 0))
	assert.Same(t, n.Values, vector.Under(n))
	assert.True(t, vector.IsNullable(n))
	assert.True(t, vector.IsNullAt(n, 0))
	assert.False(t, vector.IsNullAt(n, 1))
	c := vector.NewConst(vector.Slot(n, 0), 4)
	assert.True(t, vector.IsNullable(c))
	assert.Equal(t, "1111", vector.NullsOf(c).String())
	assert.Equal(t, "11", vector.NullsOf(vector.NewNull(2)).String())
	assert.True(t, vector.NullsOf(vector.NewTrue(2)).IsZero())
}

func TestBatch(t *testing.T) {
	b := vector.NewBatch(
		vector.Column{Name: "x", Type: cond.TypeInt8, Vec: vector.NewInt(cond.TypeInt8, []int64{1, 2})},
		vector.Column{Name: "out", Type: cond.TypeInt8},
	)
	assert.EqualValues(t, 2, b.Len())
	require.NoError(t, b.Validate([]int{0}, 1))
	assert.Error(t, b.Validate([]int{1}, 0))
	assert.Error(t, b.Validate([]int{0}, 2))
	c := b.Clone()
	c.Append(vector.Column{Name: "tmp"})
	assert.Len(t, b.Columns, 2)
	assert.Len(t, c.Columns, 3)
}
