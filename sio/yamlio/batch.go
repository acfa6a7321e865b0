// Package yamlio loads column batches described in YAML.  A batch is a list
// of columns, each with a name, a type name as understood by
// cond.Context.LookupByName and either a list of values, a single constant
// value or an expression computed from the other columns of the same row.
//
//	columns:
//	  - name: c
//	    type: bool
//	    values: [true, false, true]
//	  - name: x
//	    type: nullable(int32)
//	    values: [1, null, 3]
//	  - name: y
//	    type: int32
//	    expr: "x == nil ? 0 : x * 2"
//	  - name: s
//	    type: string
//	    const: "hello"
package yamlio

import (
	"errors"
	"fmt"
	"io"

	"github.com/brimdata/cond"
	"github.com/brimdata/cond/vector"
	"github.com/brimdata/cond/vector/bitvec"
	"github.com/expr-lang/expr"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

type Column struct {
	Name   string `yaml:"name"`
	Type   string `yaml:"type"`
	Values []any  `yaml:"values,omitempty"`
	Const  any    `yaml:"const,omitempty"`
	Expr   string `yaml:"expr,omitempty"`

	// hasConst is set when the YAML names a const, which may be null.
	hasConst bool
}

var columnFields = map[string]bool{
	"name":   true,
	"type":   true,
	"values": true,
	"const":  true,
	"expr":   true,
}

func (c *Column) UnmarshalYAML(node *yaml.Node) error {
	var hasConst bool
	if node.Kind == yaml.MappingNode {
		for k := 0; k+1 < len(node.Content); k += 2 {
			key := node.Content[k]
			if !columnFields[key.Value] {
				return fmt.Errorf("line %d: field %s not found in column", key.Line, key.Value)
			}
			hasConst = hasConst || key.Value == "const"
		}
	}
	type plain Column
	if err := node.Decode((*plain)(c)); err != nil {
		return err
	}
	c.hasConst = hasConst
	return nil
}

func (c *Column) isConst() bool {
	return c.Const != nil || c.hasConst
}

func (c *Column) source() int {
	n := 0
	if c.Values != nil {
		n++
	}
	if c.isConst() {
		n++
	}
	if c.Expr != "" {
		n++
	}
	return n
}

type Batch struct {
	Columns []Column `yaml:"columns"`
	// Rows is the batch length when no column lists its values.
	Rows int `yaml:"rows,omitempty"`
}

// Read decodes a Batch from r, rejecting unknown fields.
func Read(r io.Reader) (*Batch, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var b Batch
	if err := dec.Decode(&b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (b *Batch) length() (int, error) {
	n := -1
	for _, c := range b.Columns {
		if c.Values == nil {
			continue
		}
		if n >= 0 && len(c.Values) != n {
			return 0, fmt.Errorf("column %q: has %d values, expected %d", c.Name, len(c.Values), n)
		}
		n = len(c.Values)
	}
	if n < 0 {
		return b.Rows, nil
	}
	if b.Rows != 0 && b.Rows != n {
		return 0, fmt.Errorf("rows is %d but columns have %d values", b.Rows, n)
	}
	return n, nil
}

// Build converts b into a vector batch with types from sctx.
func (b *Batch) Build(sctx *cond.Context) (*vector.Batch, error) {
	n, err := b.length()
	if err != nil {
		return nil, err
	}
	env := make([]map[string]any, n)
	for k := range env {
		env[k] = map[string]any{"row": k}
	}
	out := vector.NewBatch()
	for _, c := range b.Columns {
		if c.source() != 1 {
			return nil, fmt.Errorf("column %q: exactly one of values, const or expr is required", c.Name)
		}
		typ, err := sctx.LookupByName(c.Type)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", c.Name, err)
		}
		var vec vector.Any
		vals := c.Values
		switch {
		case c.Values != nil:
			vec, err = Values(sctx, typ, c.Values)
		case c.isConst():
			vec, err = Const(sctx, typ, c.Const, uint32(n))
		default:
			if vals, err = evalColumn(c.Expr, env); err == nil {
				vec, err = Values(sctx, typ, vals)
			}
		}
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", c.Name, err)
		}
		for k := range env {
			if vals != nil {
				env[k][c.Name] = vals[k]
			} else {
				env[k][c.Name] = c.Const
			}
		}
		out.Append(vector.Column{Name: c.Name, Type: typ, Vec: vec})
	}
	return out, nil
}

// evalColumn computes a column by running the expression src once per row
// with the row's earlier columns in scope.
func evalColumn(src string, env []map[string]any) ([]any, error) {
	if len(env) == 0 {
		return []any{}, nil
	}
	prog, err := expr.Compile(src, expr.AllowUndefinedVariables())
	if err != nil {
		return nil, err
	}
	vals := make([]any, 0, len(env))
	for _, e := range env {
		v, err := expr.Run(prog, e)
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
	}
	return vals, nil
}

// Const returns a constant vector of length n holding val.
func Const(sctx *cond.Context, typ cond.Type, val any, n uint32) (vector.Any, error) {
	if val == nil && !cond.IsNullType(typ) && !cond.IsNullable(typ) {
		return nil, errors.New("null constant of non-nullable type " + typ.String())
	}
	vec, err := Values(sctx, typ, []any{val})
	if err != nil {
		return nil, err
	}
	return vector.NewConst(vec, n), nil
}

// Values converts vals to a vector of type typ.  A nil value is null and
// is only allowed for nullable and null types.
func Values(sctx *cond.Context, typ cond.Type, vals []any) (vector.Any, error) {
	n := uint32(len(vals))
	switch typ := typ.(type) {
	case *cond.TypeNullable:
		nulls := bitvec.NewFalse(n)
		inner := make([]any, len(vals))
		for k, v := range vals {
			if v == nil {
				nulls.Set(uint32(k))
				inner[k] = zero(typ.Type)
				continue
			}
			inner[k] = v
		}
		values, err := Values(sctx, typ.Type, inner)
		if err != nil {
			return nil, err
		}
		return vector.NewNullable(typ, values, nulls), nil
	case *cond.TypeArray:
		offsets := make([]uint32, 1, n+1)
		var elems []any
		for _, v := range vals {
			s, ok := v.([]any)
			if !ok {
				return nil, fmt.Errorf("expected list for %s, got %v", typ, v)
			}
			elems = append(elems, s...)
			offsets = append(offsets, uint32(len(elems)))
		}
		values, err := Values(sctx, typ.Type, elems)
		if err != nil {
			return nil, err
		}
		return vector.NewArray(typ, offsets, values), nil
	case *cond.TypeFixedString:
		strs, err := toStrings(vals)
		if err != nil {
			return nil, err
		}
		for _, s := range strs {
			if len(s) > typ.Len {
				return nil, fmt.Errorf("%q is too long for %s", s, typ)
			}
		}
		return vector.NewFixedStringFromValues(typ, strs...), nil
	}
	if cond.IsNullType(typ) {
		for _, v := range vals {
			if v != nil {
				return nil, fmt.Errorf("null column has value %v", v)
			}
		}
		return vector.NewNull(n), nil
	}
	for _, v := range vals {
		if v == nil {
			return nil, errors.New("null value in column of non-nullable type " + typ.String())
		}
	}
	switch id := typ.ID(); {
	case cond.IsSigned(id):
		out := make([]int64, 0, n)
		for _, v := range vals {
			x, err := cast.ToInt64E(v)
			if err != nil {
				return nil, err
			}
			out = append(out, x)
		}
		return vector.NewInt(typ, out), nil
	case cond.IsUnsigned(id):
		out := make([]uint64, 0, n)
		for _, v := range vals {
			x, err := cast.ToUint64E(v)
			if err != nil {
				return nil, err
			}
			out = append(out, x)
		}
		return vector.NewUint(typ, out), nil
	case cond.IsFloat(id):
		out := make([]float64, 0, n)
		for _, v := range vals {
			x, err := cast.ToFloat64E(v)
			if err != nil {
				return nil, err
			}
			out = append(out, x)
		}
		return vector.NewFloat(typ, out), nil
	case id == cond.IDBool:
		out := make([]bool, 0, n)
		for _, v := range vals {
			x, err := cast.ToBoolE(v)
			if err != nil {
				return nil, err
			}
			out = append(out, x)
		}
		return vector.NewBoolFromValues(out...), nil
	case id == cond.IDString:
		strs, err := toStrings(vals)
		if err != nil {
			return nil, err
		}
		return vector.NewStringFromValues(strs...), nil
	}
	return nil, fmt.Errorf("unsupported column type %s", typ)
}

func toStrings(vals []any) ([]string, error) {
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		s, err := cast.ToStringE(v)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// zero returns a placeholder value of type typ for a null slot.
func zero(typ cond.Type) any {
	switch typ.(type) {
	case *cond.TypeArray:
		return []any{}
	case *cond.TypeFixedString:
		return ""
	}
	switch id := typ.ID(); {
	case cond.IsNumber(id):
		return 0
	case id == cond.IDBool:
		return false
	case id == cond.IDString:
		return ""
	}
	return nil
}
