package jsonio

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/brimdata/cond"
	"github.com/brimdata/cond/vector"
)

// Writer writes one JSON value per row.
type Writer struct {
	io.Closer
	writer *bufio.Writer
	tab    int

	// Use json.Encoder for primitive values. Have to use
	// json.Encoder instead of json.Marshal because it's
	// the only way to turn off HTML escaping.
	primEnc *json.Encoder
	primBuf bytes.Buffer
}

type WriterOpts struct {
	Pretty int
}

func NewWriter(writer io.WriteCloser, opts WriterOpts) *Writer {
	w := &Writer{
		Closer: writer,
		writer: bufio.NewWriter(writer),
		tab:    opts.Pretty,
	}
	w.primEnc = json.NewEncoder(&w.primBuf)
	w.primEnc.SetEscapeHTML(false)
	return w
}

func (w *Writer) Write(vec vector.Any) error {
	// writeAny doesn't return an error because any error that occurs will be
	// surfaced when w.writer.Flush is called.
	for slot := range vec.Len() {
		w.writeAny(0, vec, slot)
		w.writer.WriteByte('\n')
	}
	return w.writer.Flush()
}

func (w *Writer) writeAny(tab int, vec vector.Any, slot uint32) {
	if vector.IsNullAt(vec, slot) {
		w.writer.WriteString("null")
		return
	}
	switch typ := cond.TypeUnder(vec.Type()).(type) {
	case *cond.TypeArray:
		w.writeArray(tab, vec, slot)
	case *cond.TypeFixedString:
		v, _ := vector.BytesValue(vec, slot)
		w.writer.Write(w.marshalJSON(string(v)))
	default:
		w.writePrimitive(typ, vec, slot)
	}
}

func (w *Writer) writeArray(tab int, vec vector.Any, slot uint32) {
	tab += w.tab
	values, lo, hi, _ := vector.ContainerOffset(vec, slot)
	w.writer.WriteByte('[')
	if lo == hi {
		w.writer.WriteByte(']')
		return
	}
	for k := lo; k < hi; k++ {
		if k != lo {
			w.writer.WriteByte(',')
		}
		w.newline()
		w.indent(tab)
		w.writeAny(tab, values, k)
	}
	w.newline()
	w.indent(tab - w.tab)
	w.writer.WriteByte(']')
}

func (w *Writer) writePrimitive(typ cond.Type, vec vector.Any, slot uint32) {
	var v any
	switch id := typ.ID(); {
	case cond.IsSigned(id):
		v, _ = vector.IntValue(vec, slot)
	case cond.IsUnsigned(id):
		v, _ = vector.UintValue(vec, slot)
	case cond.IsFloat(id):
		v, _ = vector.FloatValue(vec, slot)
	case id == cond.IDBool:
		v, _ = vector.BoolValue(vec, slot)
	case id == cond.IDString:
		b, _ := vector.BytesValue(vec, slot)
		v = string(b)
	default:
		panic(fmt.Sprintf("unsupported id=%d", id))
	}
	w.writer.Write(w.marshalJSON(v))
}

func (w *Writer) marshalJSON(v any) []byte {
	w.primBuf.Reset()
	if err := w.primEnc.Encode(v); err != nil {
		panic(err)
	}
	return bytes.TrimSpace(w.primBuf.Bytes())
}

func (w *Writer) newline() {
	if w.tab > 0 {
		w.writer.WriteByte('\n')
	}
}

func (w *Writer) indent(tab int) {
	w.writer.Write(bytes.Repeat([]byte(" "), tab))
}
