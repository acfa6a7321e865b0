// Package textio writes one value per line in a compact text form:
// numbers in decimal, strings quoted, arrays in brackets and null as
// "null".
package textio

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/brimdata/cond"
	"github.com/brimdata/cond/vector"
)

type Writer struct {
	writer io.WriteCloser
}

func NewWriter(w io.WriteCloser) *Writer {
	return &Writer{writer: w}
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

func (w *Writer) Write(vec vector.Any) error {
	for slot := range vec.Len() {
		if _, err := fmt.Fprintln(w.writer, FormatValue(vec, slot)); err != nil {
			return err
		}
	}
	return nil
}

// FormatValue formats the value at slot of vec.
func FormatValue(vec vector.Any, slot uint32) string {
	var b strings.Builder
	formatValue(&b, vec, slot)
	return b.String()
}

// Format formats every value of vec.
func Format(vec vector.Any) []string {
	out := make([]string, 0, vec.Len())
	for slot := range vec.Len() {
		out = append(out, FormatValue(vec, slot))
	}
	return out
}

func formatValue(b *strings.Builder, vec vector.Any, slot uint32) {
	if vector.IsNullAt(vec, slot) {
		b.WriteString("null")
		return
	}
	typ := cond.TypeUnder(vec.Type())
	switch typ.(type) {
	case *cond.TypeArray:
		values, lo, hi, _ := vector.ContainerOffset(vec, slot)
		b.WriteByte('[')
		for k := lo; k < hi; k++ {
			if k > lo {
				b.WriteByte(',')
			}
			formatValue(b, values, k)
		}
		b.WriteByte(']')
		return
	case *cond.TypeFixedString:
		v, _ := vector.BytesValue(vec, slot)
		b.WriteString(strconv.Quote(string(v)))
		return
	}
	switch id := typ.ID(); {
	case cond.IsSigned(id):
		v, _ := vector.IntValue(vec, slot)
		b.WriteString(strconv.FormatInt(v, 10))
	case cond.IsUnsigned(id):
		v, _ := vector.UintValue(vec, slot)
		b.WriteString(strconv.FormatUint(v, 10))
	case cond.IsFloat(id):
		v, _ := vector.FloatValue(vec, slot)
		bits := 64
		if id != cond.IDFloat64 {
			bits = 32
		}
		b.WriteString(strconv.FormatFloat(v, 'g', -1, bits))
	case id == cond.IDBool:
		v, _ := vector.BoolValue(vec, slot)
		b.WriteString(strconv.FormatBool(v))
	case id == cond.IDString:
		v, _ := vector.BytesValue(vec, slot)
		b.WriteString(strconv.Quote(string(v)))
	default:
		fmt.Fprintf(b, "<%s>", typ)
	}
}
