package runner

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHeaders(t *testing.T) {
	archive := "filename=a.txt\x00size=1\x00x-owner=ops\x00\x00A" + anonymousMember

	var out bytes.Buffer
	require.NoError(t, Headers(t.Context(), zap.NewNop(), strings.NewReader(archive), &out))

	assert.Equal(t, "filename=a.txt\nsize=1\nx-owner=ops\n\nsize=3\n", out.String())
}

func TestHeaders_Empty(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Headers(t.Context(), zap.NewNop(), strings.NewReader(""), &out))
	assert.Empty(t, out.String())
}
