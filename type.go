package cond

import "fmt"

type Kind int

const (
	PrimitiveKind Kind = iota
	ArrayKind
	NullableKind
	FixedStringKind
	NullKind
)

func (k Kind) String() string {
	switch k {
	case PrimitiveKind:
		return "primitive"
	case ArrayKind:
		return "array"
	case NullableKind:
		return "nullable"
	case FixedStringKind:
		return "fixedstring"
	case NullKind:
		return "null"
	}
	return fmt.Sprintf("kind-%d", int(k))
}

// Type is the interface implemented by every data type.  Types from the
// same Context can be compared by pointer; String returns the canonical
// name of the type, which is also usable for identity comparison across
// contexts.
type Type interface {
	ID() int
	Kind() Kind
	String() string
}

type TypeArray struct {
	id   int
	Type Type
}

func NewTypeArray(id int, typ Type) *TypeArray {
	return &TypeArray{id, typ}
}

func (t *TypeArray) ID() int        { return t.id }
func (t *TypeArray) Kind() Kind     { return ArrayKind }
func (t *TypeArray) String() string { return "array(" + t.Type.String() + ")" }

// TypeNullable wraps a type whose individual values may be absent.  The
// wrapped type is never itself nullable or the null type.
type TypeNullable struct {
	id   int
	Type Type
}

func NewTypeNullable(id int, typ Type) *TypeNullable {
	return &TypeNullable{id, typ}
}

func (t *TypeNullable) ID() int        { return t.id }
func (t *TypeNullable) Kind() Kind     { return NullableKind }
func (t *TypeNullable) String() string { return "nullable(" + t.Type.String() + ")" }

type TypeFixedString struct {
	id  int
	Len int
}

func NewTypeFixedString(id int, n int) *TypeFixedString {
	return &TypeFixedString{id, n}
}

func (t *TypeFixedString) ID() int        { return t.id }
func (t *TypeFixedString) Kind() Kind     { return FixedStringKind }
func (t *TypeFixedString) String() string { return fmt.Sprintf("fixedstring(%d)", t.Len) }

// TypeUnder returns the type underneath a nullable wrapper or typ itself.
func TypeUnder(typ Type) Type {
	if n, ok := typ.(*TypeNullable); ok {
		return n.Type
	}
	return typ
}

func IsNullType(typ Type) bool {
	return typ.ID() == IDNull
}

func IsNullable(typ Type) bool {
	_, ok := typ.(*TypeNullable)
	return ok
}

// InnerType returns the element type of an array type (looking through a
// nullable wrapper) or nil.
func InnerType(typ Type) Type {
	if a, ok := TypeUnder(typ).(*TypeArray); ok {
		return a.Type
	}
	return nil
}

// IsStringFamily is true for variable-length and fixed-length strings.
func IsStringFamily(typ Type) bool {
	if typ.ID() == IDString {
		return true
	}
	_, ok := typ.(*TypeFixedString)
	return ok
}
