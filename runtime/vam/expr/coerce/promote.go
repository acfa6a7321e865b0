// Package coerce computes the numeric type that can hold every value of a
// set of numeric types without loss.
package coerce

import (
	"errors"
	"fmt"

	"github.com/brimdata/cond"
)

var (
	ErrIncompatibleTypes = errors.New("incompatible types")
	ErrUpscale           = errors.New("no numeric type can hold all values")
)

// CommonNumericType returns the narrowest numeric type to which every type
// in types converts losslessly.  Mixing signed and unsigned integers needs
// a signed type twice as wide as the widest unsigned one unless a wider
// signed type is already present.  Mixing integers and floats needs a
// float twice as wide as the widest integer.  Nothing is wider than 64
// bits, so int64 with uint64 or with any float fails with ErrUpscale.
func CommonNumericType(types []cond.Type) (cond.Type, error) {
	if len(types) == 0 {
		return nil, fmt.Errorf("%w: no types", ErrIncompatibleTypes)
	}
	var maxSigned, maxUnsigned, maxFloat int
	for _, typ := range types {
		id := typ.ID()
		if !cond.IsNumber(id) {
			return nil, fmt.Errorf("%w: %s is not a number", ErrIncompatibleTypes, typ)
		}
		w := cond.Width(id)
		switch {
		case cond.IsFloat(id):
			maxFloat = max(maxFloat, w)
		case cond.IsSigned(id):
			maxSigned = max(maxSigned, w)
		default:
			maxUnsigned = max(maxUnsigned, w)
		}
	}
	maxInt := max(maxSigned, maxUnsigned)
	switch {
	case maxFloat > 0:
		need := maxFloat
		if maxInt > 0 {
			need = max(need, 2*maxInt)
		}
		return floatOf(need, types)
	case maxSigned > 0 && maxUnsigned > 0:
		need := maxSigned
		if maxUnsigned >= maxSigned {
			need = 2 * maxUnsigned
		}
		return intOf(need, types)
	case maxSigned > 0:
		return intOf(maxSigned, types)
	}
	return uintOf(maxUnsigned), nil
}

func floatOf(bits int, types []cond.Type) (cond.Type, error) {
	switch {
	case bits <= 16:
		return cond.TypeFloat16, nil
	case bits <= 32:
		return cond.TypeFloat32, nil
	case bits <= 64:
		return cond.TypeFloat64, nil
	}
	return nil, upscaleError(types)
}

func intOf(bits int, types []cond.Type) (cond.Type, error) {
	switch {
	case bits <= 8:
		return cond.TypeInt8, nil
	case bits <= 16:
		return cond.TypeInt16, nil
	case bits <= 32:
		return cond.TypeInt32, nil
	case bits <= 64:
		return cond.TypeInt64, nil
	}
	return nil, upscaleError(types)
}

func uintOf(bits int) cond.Type {
	switch {
	case bits <= 8:
		return cond.TypeUint8
	case bits <= 16:
		return cond.TypeUint16
	case bits <= 32:
		return cond.TypeUint32
	}
	return cond.TypeUint64
}

func upscaleError(types []cond.Type) error {
	names := make([]string, 0, len(types))
	for _, typ := range types {
		names = append(names, typ.String())
	}
	return fmt.Errorf("%w: %v", ErrUpscale, names)
}
