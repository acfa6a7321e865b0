package expr

import (
	"github.com/RoaringBitmap/roaring/v2"
	"github.com/brimdata/cond"
	"github.com/brimdata/cond/vector"
)

// TrueRows returns the rows of the condition vec that are true.  A
// condition is a bool or uint8 column, possibly nullable or constant, or
// the null type.  Null values read as false and a non-zero uint8 reads as
// true.  Any other column fails with ErrInvalidConditionType for the
// argument at position pos.
func TrueRows(vec vector.Any, pos int) (*roaring.Bitmap, error) {
	if !isConditionType(vec.Type()) {
		return nil, NewError(ErrInvalidConditionType, pos, vec.Type().String())
	}
	bools := roaring.New()
	switch vec := vec.(type) {
	case *vector.Null:
	case *vector.Const:
		if v, null := vector.BoolValue(vec.Value, 0); v && !null {
			bools.AddRange(0, uint64(vec.Len()))
		}
	case *vector.Bool:
		bools.Or(roaring.FromDense(vec.Bits.GetBits(), true))
	case *vector.Uint:
		for k, v := range vec.Values {
			if v != 0 {
				bools.Add(uint32(k))
			}
		}
	case *vector.Nullable:
		var err error
		if bools, err = TrueRows(vec.Values, pos); err != nil {
			return nil, err
		}
		if !vec.Nulls.IsZero() {
			bools.AndNot(roaring.FromDense(vec.Nulls.GetBits(), true))
		}
	default:
		return nil, NewError(ErrInvalidConditionType, pos, vec.Type().String())
	}
	return bools, nil
}

// constCondition returns the value of a condition that is the same for
// every row and whether it is such a condition.
func constCondition(vec vector.Any, pos int) (bool, bool, error) {
	if !isConditionType(vec.Type()) {
		return false, false, NewError(ErrInvalidConditionType, pos, vec.Type().String())
	}
	switch vec := vec.(type) {
	case *vector.Null:
		return false, true, nil
	case *vector.Const:
		v, null := vector.BoolValue(vec.Value, 0)
		return v && !null, true, nil
	}
	return false, false, nil
}

func isConst(vec vector.Any) bool {
	switch vec.(type) {
	case *vector.Const, *vector.Null:
		return true
	}
	return false
}

func constTracker(col int, n uint32) vector.Any {
	return vector.NewConstUint(cond.TypeUint16, uint64(col), n)
}
