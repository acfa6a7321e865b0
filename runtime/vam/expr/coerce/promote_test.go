package coerce_test

import (
	"testing"

	"github.com/brimdata/cond"
	"github.com/brimdata/cond/runtime/vam/expr/coerce"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommonNumericType(t *testing.T) {
	cases := []struct {
		in  []cond.Type
		out cond.Type
	}{
		{[]cond.Type{cond.TypeInt32}, cond.TypeInt32},
		{[]cond.Type{cond.TypeInt8, cond.TypeInt32}, cond.TypeInt32},
		{[]cond.Type{cond.TypeUint8, cond.TypeUint64}, cond.TypeUint64},
		{[]cond.Type{cond.TypeUint8, cond.TypeInt8}, cond.TypeInt16},
		{[]cond.Type{cond.TypeUint8, cond.TypeInt16}, cond.TypeInt16},
		{[]cond.Type{cond.TypeUint32, cond.TypeInt16}, cond.TypeInt64},
		{[]cond.Type{cond.TypeUint32, cond.TypeInt64}, cond.TypeInt64},
		{[]cond.Type{cond.TypeInt8, cond.TypeFloat32}, cond.TypeFloat32},
		{[]cond.Type{cond.TypeInt16, cond.TypeFloat32}, cond.TypeFloat32},
		{[]cond.Type{cond.TypeInt32, cond.TypeFloat32}, cond.TypeFloat64},
		{[]cond.Type{cond.TypeUint8, cond.TypeFloat16}, cond.TypeFloat16},
		{[]cond.Type{cond.TypeFloat16, cond.TypeFloat64}, cond.TypeFloat64},
	}
	for _, c := range cases {
		typ, err := coerce.CommonNumericType(c.in)
		require.NoError(t, err, "%v", c.in)
		assert.Same(t, c.out, typ, "%v", c.in)
	}
}

func TestCommonNumericTypeErrors(t *testing.T) {
	for _, in := range [][]cond.Type{
		{cond.TypeInt64, cond.TypeUint64},
		{cond.TypeInt8, cond.TypeUint64},
		{cond.TypeInt64, cond.TypeFloat64},
		{cond.TypeUint64, cond.TypeFloat32},
	} {
		_, err := coerce.CommonNumericType(in)
		assert.ErrorIs(t, err, coerce.ErrUpscale, "%v", in)
	}
	_, err := coerce.CommonNumericType([]cond.Type{cond.TypeInt8, cond.TypeString})
	assert.ErrorIs(t, err, coerce.ErrIncompatibleTypes)
	_, err = coerce.CommonNumericType(nil)
	assert.ErrorIs(t, err, coerce.ErrIncompatibleTypes)
}
