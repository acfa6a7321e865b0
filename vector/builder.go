package vector

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/brimdata/cond"
	"github.com/brimdata/cond/vector/bitvec"
)

// Builder accumulates values copied from other vectors into a new
// vector of a fixed type.  Numeric values are converted to the builder's
// type and arrays are copied element by element.
type Builder interface {
	// Append copies the value at slot in vec.
	Append(vec Any, slot uint32)
	// AppendZero appends the zero value of the builder's type.
	AppendZero()
	Build() Any
}

func NewBuilder(typ cond.Type) Builder {
	switch typ := typ.(type) {
	case *cond.TypeNullable:
		return &nullableBuilder{typ: typ, values: NewBuilder(typ.Type), nulls: roaring.New()}
	case *cond.TypeArray:
		return &arrayBuilder{typ: typ, values: NewBuilder(typ.Type), offsets: []uint32{0}}
	case *cond.TypeFixedString:
		return &fixedStringBuilder{NewFixedStringEmpty(typ, 0)}
	}
	id := typ.ID()
	switch {
	case cond.IsUnsigned(id):
		return &uintBuilder{typ: typ}
	case cond.IsSigned(id):
		return &intBuilder{typ: typ}
	case cond.IsFloat(id):
		return &floatBuilder{NewFloatEmpty(typ, 0)}
	case id == cond.IDBool:
		return &boolBuilder{trues: roaring.New()}
	case id == cond.IDString:
		return &stringBuilder{NewStringEmpty(0)}
	case id == cond.IDNull:
		return &nullBuilder{}
	}
	panic(fmt.Sprintf("unsupported type: %s", typ))
}

type nullableBuilder struct {
	typ    *cond.TypeNullable
	values Builder
	nulls  *roaring.Bitmap
	n      uint32
}

func (b *nullableBuilder) Append(vec Any, slot uint32) {
	if IsNullAt(vec, slot) {
		b.nulls.Add(b.n)
		b.values.AppendZero()
	} else {
		b.values.Append(vec, slot)
	}
	b.n++
}

func (b *nullableBuilder) AppendZero() {
	b.nulls.Add(b.n)
	b.values.AppendZero()
	b.n++
}

func (b *nullableBuilder) Build() Any {
	return NewNullable(b.typ, b.values.Build(), bitvec.FromRoaring(b.nulls, b.n))
}

type arrayBuilder struct {
	typ     *cond.TypeArray
	values  Builder
	offsets []uint32
}

func (b *arrayBuilder) Append(vec Any, slot uint32) {
	off := b.offsets[len(b.offsets)-1]
	if inner, lo, hi, null := ContainerOffset(vec, slot); !null {
		for k := lo; k < hi; k++ {
			b.values.Append(inner, k)
			off++
		}
	}
	b.offsets = append(b.offsets, off)
}

func (b *arrayBuilder) AppendZero() {
	b.offsets = append(b.offsets, b.offsets[len(b.offsets)-1])
}

func (b *arrayBuilder) Build() Any {
	return NewArray(b.typ, b.offsets, b.values.Build())
}

type intBuilder struct {
	typ    cond.Type
	values []int64
}

func (b *intBuilder) Append(vec Any, slot uint32) {
	v, _ := IntValue(vec, slot)
	b.values = append(b.values, v)
}

func (b *intBuilder) AppendZero() {
	b.values = append(b.values, 0)
}

func (b *intBuilder) Build() Any {
	return NewInt(b.typ, b.values)
}

type uintBuilder struct {
	typ    cond.Type
	values []uint64
}

func (b *uintBuilder) Append(vec Any, slot uint32) {
	v, _ := UintValue(vec, slot)
	b.values = append(b.values, v)
}

func (b *uintBuilder) AppendZero() {
	b.values = append(b.values, 0)
}

func (b *uintBuilder) Build() Any {
	return NewUint(b.typ, b.values)
}

type floatBuilder struct {
	*Float
}

func (b *floatBuilder) Append(vec Any, slot uint32) {
	v, _ := FloatValue(vec, slot)
	b.Float.Append(v)
}

func (b *floatBuilder) AppendZero() {
	b.Float.Append(0)
}

func (b *floatBuilder) Build() Any {
	return b.Float
}

type boolBuilder struct {
	trues *roaring.Bitmap
	n     uint32
}

func (b *boolBuilder) Append(vec Any, slot uint32) {
	if v, _ := BoolValue(vec, slot); v {
		b.trues.Add(b.n)
	}
	b.n++
}

func (b *boolBuilder) AppendZero() {
	b.n++
}

func (b *boolBuilder) Build() Any {
	return NewBool(bitvec.FromRoaring(b.trues, b.n))
}

type stringBuilder struct {
	*String
}

func (b *stringBuilder) Append(vec Any, slot uint32) {
	v, _ := BytesValue(vec, slot)
	b.String.AppendBytes(v)
}

func (b *stringBuilder) AppendZero() {
	b.String.AppendBytes(nil)
}

func (b *stringBuilder) Build() Any {
	return b.String
}

type fixedStringBuilder struct {
	*FixedString
}

func (b *fixedStringBuilder) Append(vec Any, slot uint32) {
	v, _ := BytesValue(vec, slot)
	b.FixedString.Append(v)
}

func (b *fixedStringBuilder) AppendZero() {
	b.FixedString.Append(nil)
}

func (b *fixedStringBuilder) Build() Any {
	return b.FixedString
}

type nullBuilder struct {
	n uint32
}

func (b *nullBuilder) Append(Any, uint32) {
	b.n++
}

func (b *nullBuilder) AppendZero() {
	b.n++
}

func (b *nullBuilder) Build() Any {
	return NewNull(b.n)
}
