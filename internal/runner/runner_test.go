package runner

import (
	"bytes"
	"testing"

	"github.com/infracollect/oarchive/internal/oar"
	"github.com/stretchr/testify/require"
)

const (
	memberA         = "filename=a.txt\x00size=5\x00\x00hello"
	memberB         = "filename=b.bin\x00size=4\x00\x00\x00\x01\x02\x00"
	anonymousMember = "size=3\x00\x00abc"
	malformedMember = "filename=c.txt\x00size=notanumber\x00\x00xyz"
)

// buildArchive writes members given as filename/payload pairs.
func buildArchive(t *testing.T, members ...[2]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := oar.NewWriter(&buf)
	for _, m := range members {
		require.NoError(t, w.WriteMember(oar.NewFileHeader(m[0], 0), []byte(m[1])))
	}
	return buf.Bytes()
}
