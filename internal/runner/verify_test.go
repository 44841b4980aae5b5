package runner

import (
	"io"
	"strings"
	"testing"

	"github.com/infracollect/oarchive/internal/oar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestVerify(t *testing.T) {
	archive := memberA + anonymousMember + memberB

	summary, err := Verify(t.Context(), zap.NewNop(), strings.NewReader(archive))
	require.NoError(t, err)

	assert.Equal(t, Summary{
		Members:      3,
		Anonymous:    1,
		Invalid:      1,
		PayloadBytes: 5 + 3 + 4,
		ArchiveBytes: int64(len(archive)),
	}, summary)
}

func TestVerify_CountsHeaderProblems(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	archive := "filename=nosize\x00\x00" + memberA + anonymousMember

	summary, err := Verify(t.Context(), zap.New(core), strings.NewReader(archive))
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Members)
	assert.Equal(t, 2, summary.Invalid)
	assert.Equal(t, 2, logs.FilterMessage("member header has problems").Len())

	entries := logs.FilterMessage("member header has problems").All()
	assert.Contains(t, entries[0].ContextMap()["error"], oar.ErrMissingSize.Error())
	assert.Contains(t, entries[1].ContextMap()["error"], oar.ErrMissingFilename.Error())
}

func TestVerify_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		archive string
		wantErr error
		members int
	}{
		{name: "malformed size", archive: memberA + malformedMember, wantErr: oar.ErrMalformedSize, members: 1},
		{name: "truncated payload", archive: memberA + memberB[:len(memberB)-2], wantErr: io.ErrUnexpectedEOF, members: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary, err := Verify(t.Context(), zap.NewNop(), strings.NewReader(tt.archive))
			require.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.members, summary.Members)
		})
	}
}
