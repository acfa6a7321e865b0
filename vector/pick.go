package vector

// Pick takes any vector vec and an index and returns a new vector consisting of the
// elements in the index.
func Pick(vec Any, index []uint32) Any {
	n := uint32(len(index))
	switch vec := vec.(type) {
	case *Const:
		return NewConst(vec.Value, n)
	case *Null:
		return NewNull(n)
	case *Bool:
		return NewBool(vec.Bits.Pick(index))
	case *Int:
		values := make([]int64, 0, n)
		for _, slot := range index {
			values = append(values, vec.Values[slot])
		}
		return NewInt(vec.Typ, values)
	case *Uint:
		values := make([]uint64, 0, n)
		for _, slot := range index {
			values = append(values, vec.Values[slot])
		}
		return NewUint(vec.Typ, values)
	case *Float:
		values := make([]float64, 0, n)
		for _, slot := range index {
			values = append(values, vec.Values[slot])
		}
		return &Float{Typ: vec.Typ, Values: values}
	case *Nullable:
		return NewNullable(vec.Typ, Pick(vec.Values, index), vec.Nulls.Pick(index))
	}
	b := NewBuilder(vec.Type())
	for _, slot := range index {
		b.Append(vec, slot)
	}
	return b.Build()
}

// Slot returns a one-row vector holding the value at slot.
func Slot(vec Any, slot uint32) Any {
	if c, ok := vec.(*Const); ok {
		return c.Value
	}
	return Pick(vec, []uint32{slot})
}
