package vector

import (
	"github.com/brimdata/cond"
	"github.com/x448/float16"
)

type Float struct {
	Typ    cond.Type
	Values []float64
}

var _ Any = (*Float)(nil)

// NewFloat rounds values to the precision of typ.
func NewFloat(typ cond.Type, values []float64) *Float {
	if typ.ID() != cond.IDFloat64 {
		for k, v := range values {
			values[k] = RoundFloat(typ, v)
		}
	}
	return &Float{Typ: typ, Values: values}
}

func NewFloatEmpty(typ cond.Type, cap uint32) *Float {
	return &Float{Typ: typ, Values: make([]float64, 0, cap)}
}

func (f *Float) Append(v float64) {
	f.Values = append(f.Values, RoundFloat(f.Typ, v))
}

func (f *Float) Type() cond.Type {
	return f.Typ
}

func (f *Float) Len() uint32 {
	return uint32(len(f.Values))
}

func (f *Float) Value(slot uint32) float64 {
	return f.Values[slot]
}

// RoundFloat rounds v to the nearest value representable by the float
// type typ.
func RoundFloat(typ cond.Type, v float64) float64 {
	switch typ.ID() {
	case cond.IDFloat16:
		return float64(float16.Fromfloat32(float32(v)).Float32())
	case cond.IDFloat32:
		return float64(float32(v))
	}
	return v
}
