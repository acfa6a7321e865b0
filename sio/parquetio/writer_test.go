package parquetio_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
	"github.com/brimdata/cond"
	"github.com/brimdata/cond/sio"
	"github.com/brimdata/cond/sio/arrowio"
	"github.com/brimdata/cond/sio/parquetio"
	"github.com/brimdata/cond/vector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter(t *testing.T) {
	var buf bytes.Buffer
	w := parquetio.NewWriter(sio.NopCloser(&buf))
	require.NoError(t, w.Write(vector.NewStringFromValues("a", "b")))
	require.NoError(t, w.Write(vector.NewStringFromValues("c")))
	require.NoError(t, w.Close())

	table, err := pqarrow.ReadTable(context.Background(), bytes.NewReader(buf.Bytes()),
		parquet.NewReaderProperties(memory.DefaultAllocator), pqarrow.ArrowReadProperties{}, memory.DefaultAllocator)
	require.NoError(t, err)
	defer table.Release()
	assert.EqualValues(t, 3, table.NumRows())
	assert.Equal(t, "value", table.Schema().Field(0).Name)
}

func TestWriterMultipleTypes(t *testing.T) {
	var buf bytes.Buffer
	w := parquetio.NewWriter(sio.NopCloser(&buf))
	require.NoError(t, w.Write(vector.NewStringFromValues("a")))
	err := w.Write(vector.NewInt(cond.TypeInt32, []int64{1}))
	assert.ErrorIs(t, err, arrowio.ErrMultipleTypes)
	assert.ErrorContains(t, err, "parquetio: ")
}
