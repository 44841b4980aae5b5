package runner

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/infracollect/oarchive/internal/engine"
	"github.com/infracollect/oarchive/internal/engine/sinks"
	"github.com/infracollect/oarchive/internal/oar"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

func TestCreateExtractRoundTrip(t *testing.T) {
	files := map[string][]byte{
		"a.txt":              []byte("hello"),
		"empty":              {},
		"nested/dir/b.bin":   {0, 'k', '=', 'v', 0, 0},
		"nested/looks-a-hdr": []byte("filename=x\x00size=1\x00\x00y"),
	}
	paths := []string{"a.txt", "empty", "nested/dir/b.bin", "nested/looks-a-hdr"}

	src := afero.NewMemMapFs()
	for name, content := range files {
		require.NoError(t, afero.WriteFile(src, name, content, 0o644))
	}

	var archive bytes.Buffer
	_, err := Create(t.Context(), zap.NewNop(), src, &archive, paths)
	require.NoError(t, err)

	dir := t.TempDir()
	sink, err := sinks.NewFilesystemSinkFromPath(dir)
	require.NoError(t, err)

	summary, err := Extract(t.Context(), zaptest.NewLogger(t), &archive, sink)
	require.NoError(t, err)
	assert.Equal(t, len(files), summary.Members)

	for name, want := range files {
		got, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(name)))
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}
}

func TestExtract_SkipsAnonymousMembers(t *testing.T) {
	fs := afero.NewMemMapFs()
	sink := sinks.NewFilesystemSink(fs)

	summary, err := Extract(t.Context(), zap.NewNop(), strings.NewReader(anonymousMember+memberA), sink)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Members)
	assert.Equal(t, 1, summary.Anonymous)

	got, err := afero.ReadFile(fs, "a.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(got))
}

func TestExtract_SelectedNames(t *testing.T) {
	fs := afero.NewMemMapFs()
	archive := memberA + anonymousMember + memberB + "filename=c.txt\x00size=1\x00\x00c"

	summary, err := Extract(t.Context(), zap.NewNop(), strings.NewReader(archive), sinks.NewFilesystemSink(fs), "c.txt", "a.txt")
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Members)
	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, 1, summary.Anonymous)
	assert.Equal(t, int64(len(archive)), summary.ArchiveBytes)

	for name, want := range map[string]string{"a.txt": "hello", "c.txt": "c"} {
		got, err := afero.ReadFile(fs, name)
		require.NoError(t, err)
		assert.Equal(t, want, string(got))
	}
	exists, err := afero.Exists(fs, "b.bin")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestExtract_SelectedNameMissing(t *testing.T) {
	sink := &recordingSink{Sink: sinks.NewFilesystemSink(afero.NewMemMapFs())}

	summary, err := Extract(t.Context(), zap.NewNop(), strings.NewReader(memberA+memberB), sink, "a.txt", "nope.txt", "gone", "nope.txt")
	require.ErrorIs(t, err, ErrMemberNotFound)
	assert.EqualError(t, err, "file not found in archive: nope.txt, gone")

	assert.Equal(t, 1, summary.Members)
	assert.Equal(t, 1, summary.Skipped)
	assert.False(t, sink.closed, "sink must not be finalized when a name is missing")
}

type recordingSink struct {
	engine.Sink
	closed bool
}

func (s *recordingSink) Close(ctx context.Context) error {
	s.closed = true
	return s.Sink.Close(ctx)
}

func TestExtract_ToStream(t *testing.T) {
	var out bytes.Buffer
	_, err := Extract(t.Context(), zap.NewNop(), strings.NewReader(memberA+anonymousMember+memberB), sinks.NewStreamSink(&out))
	require.NoError(t, err)
	assert.Equal(t, "hello\x00\x01\x02\x00", out.String())
}

func TestExtract_RejectsEscapingFilename(t *testing.T) {
	var archive bytes.Buffer
	w := oar.NewWriter(&archive)
	require.NoError(t, w.WriteMember(oar.NewFileHeader("../escape.txt", 0), []byte("nope")))

	base := afero.NewMemMapFs()
	require.NoError(t, base.MkdirAll("/out", 0o755))
	sink := sinks.NewFilesystemSink(afero.NewBasePathFs(base, "/out"))

	_, err := Extract(t.Context(), zap.NewNop(), &archive, sink)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "../escape.txt")

	exists, err := afero.Exists(base, "/escape.txt")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestExtract_MalformedSizeStopsAfterFirstMember(t *testing.T) {
	fs := afero.NewMemMapFs()

	summary, err := Extract(t.Context(), zap.NewNop(), strings.NewReader(memberA+malformedMember+memberB), sinks.NewFilesystemSink(fs))
	require.ErrorIs(t, err, oar.ErrMalformedSize)
	assert.Equal(t, 1, summary.Members)

	exists, _ := afero.Exists(fs, "a.txt")
	assert.True(t, exists)
	exists, _ = afero.Exists(fs, "b.bin")
	assert.False(t, exists)
}

func TestExtract_Truncated(t *testing.T) {
	var out bytes.Buffer
	_, err := Extract(t.Context(), zap.NewNop(), strings.NewReader(memberA[:len(memberA)-1]), sinks.NewStreamSink(&out))
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestExtract_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	var out bytes.Buffer
	_, err := Extract(ctx, zap.NewNop(), strings.NewReader(memberA), sinks.NewStreamSink(&out))
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, out.Len())
}
