package cond

import "fmt"

const (
	IDUint8       = 0
	IDUint16      = 1
	IDUint32      = 2
	IDUint64      = 3
	IDInt8        = 4
	IDInt16       = 5
	IDInt32       = 6
	IDInt64       = 7
	IDFloat16     = 8
	IDFloat32     = 9
	IDFloat64     = 10
	IDBool        = 11
	IDString      = 12
	IDNull        = 13
	IDTypeComplex = 14
)

var (
	TypeUint8   = &TypeOfUint8{}
	TypeUint16  = &TypeOfUint16{}
	TypeUint32  = &TypeOfUint32{}
	TypeUint64  = &TypeOfUint64{}
	TypeInt8    = &TypeOfInt8{}
	TypeInt16   = &TypeOfInt16{}
	TypeInt32   = &TypeOfInt32{}
	TypeInt64   = &TypeOfInt64{}
	TypeFloat16 = &TypeOfFloat16{}
	TypeFloat32 = &TypeOfFloat32{}
	TypeFloat64 = &TypeOfFloat64{}
	TypeBool    = &TypeOfBool{}
	TypeString  = &TypeOfString{}
	TypeNull    = &TypeOfNull{}
)

var primitives = [IDTypeComplex]Type{
	TypeUint8,
	TypeUint16,
	TypeUint32,
	TypeUint64,
	TypeInt8,
	TypeInt16,
	TypeInt32,
	TypeInt64,
	TypeFloat16,
	TypeFloat32,
	TypeFloat64,
	TypeBool,
	TypeString,
	TypeNull,
}

func LookupPrimitiveByID(id int) (Type, error) {
	if id < 0 || id >= IDTypeComplex {
		return nil, fmt.Errorf("primitive type ID %d out of range", id)
	}
	return primitives[id], nil
}

// LookupPrimitive returns the primitive type with the given name or nil.
func LookupPrimitive(name string) Type {
	for _, typ := range primitives {
		if typ.String() == name {
			return typ
		}
	}
	return nil
}

func IsNumber(id int) bool {
	return id >= IDUint8 && id <= IDFloat64
}

func IsUnsigned(id int) bool {
	return id >= IDUint8 && id <= IDUint64
}

func IsSigned(id int) bool {
	return id >= IDInt8 && id <= IDInt64
}

func IsInteger(id int) bool {
	return id >= IDUint8 && id <= IDInt64
}

func IsFloat(id int) bool {
	return id >= IDFloat16 && id <= IDFloat64
}

// Width returns the width in bits of the numeric type with the given ID
// and 0 for all other types.
func Width(id int) int {
	switch id {
	case IDUint8, IDInt8:
		return 8
	case IDUint16, IDInt16, IDFloat16:
		return 16
	case IDUint32, IDInt32, IDFloat32:
		return 32
	case IDUint64, IDInt64, IDFloat64:
		return 64
	}
	return 0
}

type TypeOfUint8 struct{}

func (*TypeOfUint8) ID() int        { return IDUint8 }
func (*TypeOfUint8) Kind() Kind     { return PrimitiveKind }
func (*TypeOfUint8) String() string { return "uint8" }

type TypeOfUint16 struct{}

func (*TypeOfUint16) ID() int        { return IDUint16 }
func (*TypeOfUint16) Kind() Kind     { return PrimitiveKind }
func (*TypeOfUint16) String() string { return "uint16" }

type TypeOfUint32 struct{}

func (*TypeOfUint32) ID() int        { return IDUint32 }
func (*TypeOfUint32) Kind() Kind     { return PrimitiveKind }
func (*TypeOfUint32) String() string { return "uint32" }

type TypeOfUint64 struct{}

func (*TypeOfUint64) ID() int        { return IDUint64 }
func (*TypeOfUint64) Kind() Kind     { return PrimitiveKind }
func (*TypeOfUint64) String() string { return "uint64" }

type TypeOfInt8 struct{}

func (*TypeOfInt8) ID() int        { return IDInt8 }
func (*TypeOfInt8) Kind() Kind     { return PrimitiveKind }
func (*TypeOfInt8) String() string { return "int8" }

type TypeOfInt16 struct{}

func (*TypeOfInt16) ID() int        { return IDInt16 }
func (*TypeOfInt16) Kind() Kind     { return PrimitiveKind }
func (*TypeOfInt16) String() string { return "int16" }

type TypeOfInt32 struct{}

func (*TypeOfInt32) ID() int        { return IDInt32 }
func (*TypeOfInt32) Kind() Kind     { return PrimitiveKind }
func (*TypeOfInt32) String() string { return "int32" }

type TypeOfInt64 struct{}

func (*TypeOfInt64) ID() int        { return IDInt64 }
func (*TypeOfInt64) Kind() Kind     { return PrimitiveKind }
func (*TypeOfInt64) String() string { return "int64" }

type TypeOfFloat16 struct{}

func (*TypeOfFloat16) ID() int        { return IDFloat16 }
func (*TypeOfFloat16) Kind() Kind     { return PrimitiveKind }
func (*TypeOfFloat16) String() string { return "float16" }

type TypeOfFloat32 struct{}

func (*TypeOfFloat32) ID() int        { return IDFloat32 }
func (*TypeOfFloat32) Kind() Kind     { return PrimitiveKind }
func (*TypeOfFloat32) String() string { return "float32" }

type TypeOfFloat64 struct{}

func (*TypeOfFloat64) ID() int        { return IDFloat64 }
func (*TypeOfFloat64) Kind() Kind     { return PrimitiveKind }
func (*TypeOfFloat64) String() string { return "float64" }

type TypeOfBool struct{}

func (*TypeOfBool) ID() int        { return IDBool }
func (*TypeOfBool) Kind() Kind     { return PrimitiveKind }
func (*TypeOfBool) String() string { return "bool" }

type TypeOfString struct{}

func (*TypeOfString) ID() int        { return IDString }
func (*TypeOfString) Kind() Kind     { return PrimitiveKind }
func (*TypeOfString) String() string { return "string" }

// TypeOfNull is the type with exactly one value, null.  It is distinct
// from a nullable type whose values all happen to be null.
type TypeOfNull struct{}

func (*TypeOfNull) ID() int        { return IDNull }
func (*TypeOfNull) Kind() Kind     { return NullKind }
func (*TypeOfNull) String() string { return "null" }
