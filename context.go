package cond

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
)

var ErrBadTypeName = errors.New("bad type name")

// A Context interns complex types so that each unique type corresponds to
// exactly one Type pointer, allowing type equivalence to be determined by
// pointer comparison.  (Type pointers from distinct Contexts obviously do
// not have this property.)  A Context is safe for concurrent use.
type Context struct {
	mu        sync.RWMutex
	byID      []Type
	arrays    map[Type]*TypeArray
	nullables map[Type]*TypeNullable
	fixeds    map[int]*TypeFixedString
}

func NewContext() *Context {
	return &Context{
		byID: make([]Type, IDTypeComplex, 2*IDTypeComplex),
	}
}

func (c *Context) nextIDWithLock() int {
	return len(c.byID)
}

func (c *Context) enterWithLock(typ Type) {
	c.byID = append(c.byID, typ)
}

func (c *Context) LookupType(id int) (Type, error) {
	if id < 0 {
		return nil, fmt.Errorf("type id (%d) cannot be negative", id)
	}
	if id < IDTypeComplex {
		return LookupPrimitiveByID(id)
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	if id >= len(c.byID) {
		return nil, fmt.Errorf("type id (%d) not in type context (size %d)", id, len(c.byID))
	}
	return c.byID[id], nil
}

func (c *Context) LookupTypeArray(inner Type) *TypeArray {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.arrays == nil {
		c.arrays = make(map[Type]*TypeArray)
	}
	if typ, ok := c.arrays[inner]; ok {
		return typ
	}
	typ := NewTypeArray(c.nextIDWithLock(), inner)
	c.enterWithLock(typ)
	c.arrays[inner] = typ
	return typ
}

// LookupTypeNullable returns nullable(inner).  Wrapping is idempotent and
// the null type is returned as is since it cannot be made nullable.
func (c *Context) LookupTypeNullable(inner Type) Type {
	if IsNullType(inner) || IsNullable(inner) {
		return inner
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.nullables == nil {
		c.nullables = make(map[Type]*TypeNullable)
	}
	if typ, ok := c.nullables[inner]; ok {
		return typ
	}
	typ := NewTypeNullable(c.nextIDWithLock(), inner)
	c.enterWithLock(typ)
	c.nullables[inner] = typ
	return typ
}

func (c *Context) LookupTypeFixedString(n int) (*TypeFixedString, error) {
	if n <= 0 {
		return nil, fmt.Errorf("fixedstring length must be positive: %d", n)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fixeds == nil {
		c.fixeds = make(map[int]*TypeFixedString)
	}
	if typ, ok := c.fixeds[n]; ok {
		return typ, nil
	}
	typ := NewTypeFixedString(c.nextIDWithLock(), n)
	c.enterWithLock(typ)
	c.fixeds[n] = typ
	return typ, nil
}

func (c *Context) MustLookupTypeFixedString(n int) *TypeFixedString {
	typ, err := c.LookupTypeFixedString(n)
	if err != nil {
		panic(err)
	}
	return typ
}

// LookupByName parses a canonical type name such as "nullable(array(int32))"
// or "fixedstring(3)" and returns the corresponding type in this context.
func (c *Context) LookupByName(name string) (Type, error) {
	typ, rest, err := c.parseType(strings.TrimSpace(name))
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrBadTypeName, name, err)
	}
	if rest != "" {
		return nil, fmt.Errorf("%w: %q: trailing text %q", ErrBadTypeName, name, rest)
	}
	return typ, nil
}

func (c *Context) parseType(s string) (Type, string, error) {
	ident, rest := splitIdent(s)
	if ident == "" {
		return nil, "", errors.New("type name expected")
	}
	switch ident {
	case "array", "nullable":
		arg, rest, err := c.parseArg(rest, c.parseTypeAny)
		if err != nil {
			return nil, "", err
		}
		inner := arg.(Type)
		if ident == "array" {
			return c.LookupTypeArray(inner), rest, nil
		}
		return c.LookupTypeNullable(inner), rest, nil
	case "fixedstring":
		arg, rest, err := c.parseArg(rest, parseLength)
		if err != nil {
			return nil, "", err
		}
		typ, err := c.LookupTypeFixedString(arg.(int))
		return typ, rest, err
	}
	if typ := LookupPrimitive(ident); typ != nil {
		return typ, rest, nil
	}
	return nil, "", fmt.Errorf("unknown type %q", ident)
}

func (c *Context) parseArg(s string, parse func(string) (any, string, error)) (any, string, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "(") {
		return nil, "", errors.New("'(' expected")
	}
	v, rest, err := parse(strings.TrimSpace(s[1:]))
	if err != nil {
		return nil, "", err
	}
	rest = strings.TrimSpace(rest)
	if !strings.HasPrefix(rest, ")") {
		return nil, "", errors.New("')' expected")
	}
	return v, strings.TrimSpace(rest[1:]), nil
}

func (c *Context) parseTypeAny(s string) (any, string, error) {
	return c.parseType(s)
}

func parseLength(s string) (any, string, error) {
	end := strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' })
	if end < 0 {
		end = len(s)
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return nil, "", fmt.Errorf("bad length: %w", err)
	}
	return n, s[end:], nil
}

func splitIdent(s string) (string, string) {
	end := strings.IndexFunc(s, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
	if end < 0 {
		return s, ""
	}
	return s[:end], s[end:]
}
