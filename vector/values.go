package vector

// The accessors in this file return the value at slot of any vector
// whose payload can represent it, looking through constants and
// nullable wrappers, along with whether the value is null.  Numeric
// accessors convert between numeric payloads; callers are expected to
// have checked that the conversion is lossless.

func IntValue(vec Any, slot uint32) (int64, bool) {
	switch vec := vec.(type) {
	case *Int:
		return vec.Values[slot], false
	case *Uint:
		return int64(vec.Values[slot]), false
	case *Float:
		return int64(vec.Values[slot]), false
	case *Bool:
		if vec.Value(slot) {
			return 1, false
		}
		return 0, false
	case *Const:
		return IntValue(vec.Value, 0)
	case *Nullable:
		if vec.Nulls.IsSet(slot) {
			return 0, true
		}
		return IntValue(vec.Values, slot)
	case *Null:
		return 0, true
	}
	panic(vec)
}

func UintValue(vec Any, slot uint32) (uint64, bool) {
	switch vec := vec.(type) {
	case *Uint:
		return vec.Values[slot], false
	case *Int:
		return uint64(vec.Values[slot]), false
	case *Float:
		return uint64(vec.Values[slot]), false
	case *Bool:
		if vec.Value(slot) {
			return 1, false
		}
		return 0, false
	case *Const:
		return UintValue(vec.Value, 0)
	case *Nullable:
		if vec.Nulls.IsSet(slot) {
			return 0, true
		}
		return UintValue(vec.Values, slot)
	case *Null:
		return 0, true
	}
	panic(vec)
}

func FloatValue(vec Any, slot uint32) (float64, bool) {
	switch vec := vec.(type) {
	case *Float:
		return vec.Values[slot], false
	case *Int:
		return float64(vec.Values[slot]), false
	case *Uint:
		return float64(vec.Values[slot]), false
	case *Bool:
		if vec.Value(slot) {
			return 1, false
		}
		return 0, false
	case *Const:
		return FloatValue(vec.Value, 0)
	case *Nullable:
		if vec.Nulls.IsSet(slot) {
			return 0, true
		}
		return FloatValue(vec.Values, slot)
	case *Null:
		return 0, true
	}
	panic(vec)
}

// BoolValue treats non-zero integers as true.
func BoolValue(vec Any, slot uint32) (bool, bool) {
	switch vec := vec.(type) {
	case *Bool:
		return vec.Value(slot), false
	case *Uint:
		return vec.Values[slot] != 0, false
	case *Int:
		return vec.Values[slot] != 0, false
	case *Const:
		return BoolValue(vec.Value, 0)
	case *Nullable:
		if vec.Nulls.IsSet(slot) {
			return false, true
		}
		return BoolValue(vec.Values, slot)
	case *Null:
		return false, true
	}
	panic(vec)
}

func BytesValue(vec Any, slot uint32) ([]byte, bool) {
	switch vec := vec.(type) {
	case *String:
		return vec.BytesAt(slot), false
	case *FixedString:
		return vec.BytesAt(slot), false
	case *Const:
		return BytesValue(vec.Value, 0)
	case *Nullable:
		if vec.Nulls.IsSet(slot) {
			return nil, true
		}
		return BytesValue(vec.Values, slot)
	case *Null:
		return nil, true
	}
	panic(vec)
}
