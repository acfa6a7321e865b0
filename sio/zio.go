package sio

import (
	"context"
	"io"
	"path/filepath"

	"github.com/brimdata/cond/vector"
)

// FormatFromPath returns the output format implied by the extension of
// path or the empty string.
func FormatFromPath(path string) string {
	switch filepath.Ext(path) {
	case ".arrows":
		return "arrows"
	case ".json", ".jsonl", ".ndjson":
		return "json"
	case ".parquet":
		return "parquet"
	case ".text", ".txt":
		return "text"
	default:
		return ""
	}
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// NopCloser returns a WriteCloser with a no-op Close method wrapping
// the provided Writer w.
func NopCloser(w io.Writer) io.WriteCloser {
	return nopCloser{w}
}

// Writer wraps the Write method.
//
// Implementations must not retain vec.
type Writer interface {
	Write(vec vector.Any) error
}

type WriteCloser interface {
	Writer
	io.Closer
}

// Copy writes each of vecs to dst, stopping at the first error or when
// ctx is done.
func Copy(ctx context.Context, dst Writer, vecs ...vector.Any) error {
	for _, vec := range vecs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := dst.Write(vec); err != nil {
			return err
		}
	}
	return nil
}
