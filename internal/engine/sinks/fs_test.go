package sinks

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilesystemSink_Write(t *testing.T) {
	fs := afero.NewMemMapFs()
	sink := NewFilesystemSink(fs)
	ctx := t.Context()

	require.NoError(t, sink.Write(ctx, "a.txt", strings.NewReader("alpha")))
	require.NoError(t, sink.Write(ctx, "nested/dir/b.bin", bytes.NewReader([]byte{0, 1, 0})))
	require.NoError(t, sink.Write(ctx, "a.txt", strings.NewReader("overwritten")))

	got, err := afero.ReadFile(fs, "a.txt")
	require.NoError(t, err)
	assert.Equal(t, "overwritten", string(got))

	got, err = afero.ReadFile(fs, "nested/dir/b.bin")
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 1, 0}, got)

	assert.Equal(t, "filesystem", sink.Kind())
	require.NoError(t, sink.Close(ctx))
}

func TestFilesystemSink_RejectsEscapingPaths(t *testing.T) {
	base := afero.NewMemMapFs()
	require.NoError(t, base.MkdirAll("/out", 0o755))
	sink := NewFilesystemSink(afero.NewBasePathFs(base, "/out"))

	err := sink.Write(t.Context(), "../escape.txt", strings.NewReader("nope"))
	require.Error(t, err)

	_, statErr := base.Stat("/escape.txt")
	assert.True(t, os.IsNotExist(statErr))
}

func TestNewFilesystemSinkFromPath(t *testing.T) {
	root := filepath.Join(t.TempDir(), "extract", "here")

	sink, err := NewFilesystemSinkFromPath(root)
	require.NoError(t, err)
	require.NoError(t, sink.Write(t.Context(), "sub/file.txt", strings.NewReader("content")))

	got, err := os.ReadFile(filepath.Join(root, "sub", "file.txt"))
	require.NoError(t, err)
	assert.Equal(t, "content", string(got))
	assert.Contains(t, sink.Name(), "filesystem(")
}
