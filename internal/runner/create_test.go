package runner

import (
	"bytes"
	"context"
	"testing"

	"github.com/infracollect/oarchive/internal/oar"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

func TestCreate(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "a.txt", []byte("hello"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "b.bin", []byte{0, 1, 2, 0}, 0o644))

	var out bytes.Buffer
	summary, err := Create(t.Context(), zaptest.NewLogger(t), fs, &out, []string{"a.txt", "b.bin"})
	require.NoError(t, err)

	assert.Equal(t, memberA+memberB, out.String())
	assert.Equal(t, 2, summary.Members)
	assert.Equal(t, int64(out.Len()), summary.ArchiveBytes)
}

func TestCreate_NoFiles(t *testing.T) {
	var out bytes.Buffer
	summary, err := Create(t.Context(), zap.NewNop(), afero.NewMemMapFs(), &out, nil)
	require.NoError(t, err)
	assert.Zero(t, out.Len())
	assert.Zero(t, summary.Members)
}

func TestCreate_Errors(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("dir", 0o755))
	require.NoError(t, afero.WriteFile(fs, "ok.txt", []byte("ok"), 0o644))

	tests := []struct {
		name  string
		paths []string
		op    string
	}{
		{name: "missing file", paths: []string{"ok.txt", "missing.txt"}, op: "stat"},
		{name: "directory", paths: []string{"dir"}, op: "read"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			_, err := Create(t.Context(), zap.NewNop(), fs, &out, tt.paths)
			require.Error(t, err)

			var ioErr *oar.IOError
			require.ErrorAs(t, err, &ioErr)
			assert.Equal(t, tt.op, ioErr.Op)
		})
	}
}

func TestCreate_Cancelled(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "a.txt", []byte("hello"), 0o644))

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	var out bytes.Buffer
	_, err := Create(ctx, zap.NewNop(), fs, &out, []string{"a.txt"})
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, out.Len())
}
