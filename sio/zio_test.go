package sio_test

import (
	"context"
	"testing"

	"github.com/brimdata/cond/sio"
	"github.com/brimdata/cond/vector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	lens []uint32
}

func (r *recorder) Write(vec vector.Any) error {
	r.lens = append(r.lens, vec.Len())
	return nil
}

func TestCopy(t *testing.T) {
	var r recorder
	err := sio.Copy(context.Background(), &r, vector.NewStringFromValues("a"), vector.NewNull(3))
	require.NoError(t, err)
	assert.Equal(t, []uint32{1, 3}, r.lens)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, sio.Copy(ctx, &r, vector.NewNull(1)), context.Canceled)
	assert.Len(t, r.lens, 2)
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, "parquet", sio.FormatFromPath("out.parquet"))
	assert.Equal(t, "json", sio.FormatFromPath("dir/out.ndjson"))
	assert.Equal(t, "", sio.FormatFromPath("out"))
}
