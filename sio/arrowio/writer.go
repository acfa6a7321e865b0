package arrowio

import (
	"errors"
	"fmt"
	"io"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/float16"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/brimdata/cond"
	"github.com/brimdata/cond/vector"
)

var (
	ErrMultipleTypes   = errors.New("arrowio: encountered multiple types")
	ErrUnsupportedType = errors.New("arrowio: unsupported type")
)

// Writer is a sio.Writer for the Arrow IPC stream format.  Each vector
// becomes a record with a single column.  Every vector written must have
// the same type.
type Writer struct {
	NewWriterFunc func(io.Writer, *arrow.Schema) (WriteCloser, error)
	// Column names the record column.
	Column string

	w      io.WriteCloser
	writer WriteCloser
	typ    cond.Type
	schema *arrow.Schema
}

type WriteCloser interface {
	Write(arrow.Record) error
	Close() error
}

func NewWriter(w io.WriteCloser) *Writer {
	return &Writer{
		NewWriterFunc: func(w io.Writer, s *arrow.Schema) (WriteCloser, error) {
			return ipc.NewWriter(w, ipc.WithSchema(s)), nil
		},
		Column: "value",
		w:      w,
	}
}

func (w *Writer) Close() error {
	var err error
	if w.writer != nil {
		err = w.writer.Close()
	}
	if err2 := w.w.Close(); err == nil {
		err = err2
	}
	return err
}

func (w *Writer) Write(vec vector.Any) error {
	if w.typ == nil {
		dt, err := dataType(vec.Type())
		if err != nil {
			return err
		}
		w.typ = vec.Type()
		w.schema = arrow.NewSchema([]arrow.Field{{Name: w.Column, Type: dt, Nullable: true}}, nil)
		w.writer, err = w.NewWriterFunc(w.w, w.schema)
		if err != nil {
			return err
		}
	} else if w.typ != vec.Type() {
		return fmt.Errorf("%w: %s and %s", ErrMultipleTypes, w.typ, vec.Type())
	}
	b := array.NewBuilder(memory.DefaultAllocator, w.schema.Field(0).Type)
	defer b.Release()
	for slot := range vec.Len() {
		if err := appendValue(b, vec, slot); err != nil {
			return err
		}
	}
	arr := b.NewArray()
	defer arr.Release()
	rec := array.NewRecord(w.schema, []arrow.Array{arr}, int64(vec.Len()))
	defer rec.Release()
	return w.writer.Write(rec)
}

func dataType(typ cond.Type) (arrow.DataType, error) {
	switch typ := cond.TypeUnder(typ).(type) {
	case *cond.TypeArray:
		elem, err := dataType(typ.Type)
		if err != nil {
			return nil, err
		}
		return arrow.ListOf(elem), nil
	case *cond.TypeFixedString:
		return &arrow.FixedSizeBinaryType{ByteWidth: typ.Len}, nil
	default:
		switch typ.ID() {
		case cond.IDUint8:
			return arrow.PrimitiveTypes.Uint8, nil
		case cond.IDUint16:
			return arrow.PrimitiveTypes.Uint16, nil
		case cond.IDUint32:
			return arrow.PrimitiveTypes.Uint32, nil
		case cond.IDUint64:
			return arrow.PrimitiveTypes.Uint64, nil
		case cond.IDInt8:
			return arrow.PrimitiveTypes.Int8, nil
		case cond.IDInt16:
			return arrow.PrimitiveTypes.Int16, nil
		case cond.IDInt32:
			return arrow.PrimitiveTypes.Int32, nil
		case cond.IDInt64:
			return arrow.PrimitiveTypes.Int64, nil
		case cond.IDFloat16:
			return arrow.FixedWidthTypes.Float16, nil
		case cond.IDFloat32:
			return arrow.PrimitiveTypes.Float32, nil
		case cond.IDFloat64:
			return arrow.PrimitiveTypes.Float64, nil
		case cond.IDBool:
			return arrow.FixedWidthTypes.Boolean, nil
		case cond.IDString:
			return arrow.BinaryTypes.String, nil
		case cond.IDNull:
			return arrow.Null, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, typ)
}

func appendValue(b array.Builder, vec vector.Any, slot uint32) error {
	if vector.IsNullAt(vec, slot) {
		b.AppendNull()
		return nil
	}
	switch b := b.(type) {
	case *array.ListBuilder:
		values, lo, hi, _ := vector.ContainerOffset(vec, slot)
		b.Append(true)
		for k := lo; k < hi; k++ {
			if err := appendValue(b.ValueBuilder(), values, k); err != nil {
				return err
			}
		}
	case *array.FixedSizeBinaryBuilder:
		v, _ := vector.BytesValue(vec, slot)
		b.Append(v)
	case *array.StringBuilder:
		v, _ := vector.BytesValue(vec, slot)
		b.Append(string(v))
	case *array.BooleanBuilder:
		v, _ := vector.BoolValue(vec, slot)
		b.Append(v)
	case *array.Uint8Builder:
		v, _ := vector.UintValue(vec, slot)
		b.Append(uint8(v))
	case *array.Uint16Builder:
		v, _ := vector.UintValue(vec, slot)
		b.Append(uint16(v))
	case *array.Uint32Builder:
		v, _ := vector.UintValue(vec, slot)
		b.Append(uint32(v))
	case *array.Uint64Builder:
		v, _ := vector.UintValue(vec, slot)
		b.Append(v)
	case *array.Int8Builder:
		v, _ := vector.IntValue(vec, slot)
		b.Append(int8(v))
	case *array.Int16Builder:
		v, _ := vector.IntValue(vec, slot)
		b.Append(int16(v))
	case *array.Int32Builder:
		v, _ := vector.IntValue(vec, slot)
		b.Append(int32(v))
	case *array.Int64Builder:
		v, _ := vector.IntValue(vec, slot)
		b.Append(v)
	case *array.Float16Builder:
		v, _ := vector.FloatValue(vec, slot)
		b.Append(float16.New(float32(v)))
	case *array.Float32Builder:
		v, _ := vector.FloatValue(vec, slot)
		b.Append(float32(v))
	case *array.Float64Builder:
		v, _ := vector.FloatValue(vec, slot)
		b.Append(v)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedType, vec.Type())
	}
	return nil
}
