package cond_test

import (
	"testing"

	"github.com/brimdata/cond"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextInterning(t *testing.T) {
	sctx := cond.NewContext()
	a1 := sctx.LookupTypeArray(cond.TypeInt32)
	a2 := sctx.LookupTypeArray(cond.TypeInt32)
	assert.Same(t, a1, a2)
	n1 := sctx.LookupTypeNullable(a1)
	assert.Same(t, n1, sctx.LookupTypeNullable(n1))
	assert.Same(t, cond.TypeNull, sctx.LookupTypeNullable(cond.TypeNull))
	f1 := sctx.MustLookupTypeFixedString(3)
	assert.Same(t, f1, sctx.MustLookupTypeFixedString(3))
	_, err := sctx.LookupTypeFixedString(0)
	assert.Error(t, err)

	typ, err := sctx.LookupType(n1.ID())
	require.NoError(t, err)
	assert.Same(t, n1, typ)
}

func TestContextLookupByName(t *testing.T) {
	sctx := cond.NewContext()
	for _, name := range []string{
		"int32",
		"null",
		"fixedstring(3)",
		"nullable(string)",
		"array(array(uint8))",
		"nullable(array(fixedstring(12)))",
	} {
		typ, err := sctx.LookupByName(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, typ.String())
	}
	typ, err := sctx.LookupByName(" nullable ( int8 ) ")
	require.NoError(t, err)
	assert.Equal(t, "nullable(int8)", typ.String())

	for _, name := range []string{"", "int31", "array(int8", "fixedstring(x)", "int8)"} {
		_, err := sctx.LookupByName(name)
		assert.ErrorIs(t, err, cond.ErrBadTypeName, name)
	}
}

func TestTypePredicates(t *testing.T) {
	sctx := cond.NewContext()
	assert.True(t, cond.IsSigned(cond.IDInt16))
	assert.True(t, cond.IsUnsigned(cond.IDUint64))
	assert.True(t, cond.IsFloat(cond.IDFloat16))
	assert.False(t, cond.IsNumber(cond.IDBool))
	assert.Equal(t, 32, cond.Width(cond.IDFloat32))
	n := sctx.LookupTypeNullable(cond.TypeString)
	assert.True(t, cond.IsNullable(n))
	assert.Same(t, cond.TypeString, cond.TypeUnder(n))
	assert.True(t, cond.IsStringFamily(sctx.MustLookupTypeFixedString(2)))
	assert.Same(t, cond.TypeInt8, cond.InnerType(sctx.LookupTypeNullable(sctx.LookupTypeArray(cond.TypeInt8))))
	assert.Nil(t, cond.InnerType(cond.TypeInt8))
}
