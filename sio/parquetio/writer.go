package parquetio

import (
	"errors"
	"fmt"
	"io"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
	"github.com/brimdata/cond/sio"
	"github.com/brimdata/cond/sio/arrowio"
	"github.com/brimdata/cond/vector"
)

// Writer writes result columns as a Parquet file with one column.  Each
// vector becomes a row group.
type Writer struct {
	arrow *arrowio.Writer
}

func NewWriter(wc io.WriteCloser) *Writer {
	w := arrowio.NewWriter(wc)
	w.NewWriterFunc = newFileWriter
	return &Writer{w}
}

func newFileWriter(w io.Writer, s *arrow.Schema) (arrowio.WriteCloser, error) {
	props := parquet.NewWriterProperties(parquet.WithCompression(compress.Codecs.Zstd))
	// The file writer closes its sink, which belongs to arrowio.Writer.
	fw, err := pqarrow.NewFileWriter(s, sio.NopCloser(w), props, pqarrow.DefaultWriterProps())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", arrowio.ErrUnsupportedType, err)
	}
	return fw, nil
}

func (w *Writer) Write(vec vector.Any) error {
	return wrap(w.arrow.Write(vec))
}

func (w *Writer) Close() error {
	return wrap(w.arrow.Close())
}

func wrap(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, arrowio.ErrMultipleTypes) || errors.Is(err, arrowio.ErrUnsupportedType) {
		return fmt.Errorf("parquetio: %w", err)
	}
	return err
}
