package sinks

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamSink(t *testing.T) {
	var out bytes.Buffer
	sink := NewStreamSink(&out)

	require.NoError(t, sink.Write(t.Context(), "a", strings.NewReader("first\n")))
	require.NoError(t, sink.Write(t.Context(), "b", strings.NewReader("second\n")))
	require.NoError(t, sink.Close(t.Context()))

	assert.Equal(t, "first\nsecond\n", out.String())
	assert.Equal(t, "stream", sink.Name())
	assert.Equal(t, "stream", sink.Kind())
}
