package anyio

import (
	"fmt"
	"io"

	"github.com/brimdata/cond/sio"
	"github.com/brimdata/cond/sio/arrowio"
	"github.com/brimdata/cond/sio/jsonio"
	"github.com/brimdata/cond/sio/parquetio"
	"github.com/brimdata/cond/sio/textio"
	"github.com/brimdata/cond/vector"
)

type WriterOpts struct {
	Format string
	JSON   jsonio.WriterOpts
}

func NewWriter(w io.WriteCloser, opts WriterOpts) (sio.WriteCloser, error) {
	switch opts.Format {
	case "arrows":
		return arrowio.NewWriter(w), nil
	case "json":
		return jsonio.NewWriter(w, opts.JSON), nil
	case "null":
		return &nullWriter{}, nil
	case "parquet":
		return parquetio.NewWriter(w), nil
	case "text", "":
		return textio.NewWriter(w), nil
	default:
		return nil, fmt.Errorf("unknown format: %s", opts.Format)
	}
}

type nullWriter struct{}

func (*nullWriter) Write(vector.Any) error {
	return nil
}

func (*nullWriter) Close() error {
	return nil
}
