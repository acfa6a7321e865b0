package outputflags

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/brimdata/cond/vector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, args ...string) (*Flags, error) {
	var f Flags
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	f.SetFlags(fs)
	require.NoError(t, fs.Parse(args))
	return &f, f.Init()
}

func TestJSONShortcuts(t *testing.T) {
	f, err := parse(t, "-j")
	require.NoError(t, err)
	assert.Equal(t, "json", f.Format)
	assert.Equal(t, 0, f.JSON.Pretty)

	f, err = parse(t, "-J", "-pretty", "2")
	require.NoError(t, err)
	assert.Equal(t, "json", f.Format)
	assert.Equal(t, 2, f.JSON.Pretty)

	_, err = parse(t, "-j", "-f", "arrows")
	assert.Error(t, err)
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	f, err := parse(t, "-o", path)
	require.NoError(t, err)
	assert.Equal(t, path, f.FileName())
	w, err := f.Open()
	require.NoError(t, err)
	require.NoError(t, w.Write(vector.NewStringFromValues("a", "b")))
	require.NoError(t, w.Close())
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "\"a\"\n\"b\"\n", string(b))
}

func TestFormatFromOutputFile(t *testing.T) {
	dir := t.TempDir()
	f, err := parse(t, "-o", filepath.Join(dir, "out.parquet"))
	require.NoError(t, err)
	assert.Equal(t, "parquet", f.Format)

	f, err = parse(t, "-f", "json", "-o", filepath.Join(dir, "out.arrows"))
	require.NoError(t, err)
	assert.Equal(t, "json", f.Format)
}
