// Package runner implements the archive operations behind the oarchive
// commands: create, list, extract, headers, verify and append.
package runner

import (
	"context"
	"io"

	"github.com/infracollect/oarchive/internal/oar"
	"go.uber.org/zap"
)

// MissingFilenamePlaceholder is printed by List for members without a
// filename key.
const MissingFilenamePlaceholder = "<<member lacks filename>>"

// Summary counts what an operation walked through.
type Summary struct {
	Members int `json:"members" yaml:"members"`
	// Anonymous is the number of members without a filename.
	Anonymous    int   `json:"anonymous" yaml:"anonymous"`
	PayloadBytes int64 `json:"payload_bytes" yaml:"payload_bytes"`
	// ArchiveBytes is the total length of the archive stream, headers included.
	ArchiveBytes int64 `json:"archive_bytes" yaml:"archive_bytes"`
	// Skipped counts members left out by a name filter.
	Skipped int `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	// Invalid counts members whose header failed validation without stopping
	// the stream, such as a missing size or filename.
	Invalid int `json:"invalid,omitempty" yaml:"invalid,omitempty"`
}

type namer interface {
	Name() string
}

func newReader(logger *zap.Logger, r io.Reader) *oar.Reader {
	opts := []oar.ReaderOption{oar.WithLogger(logger)}
	if n, ok := r.(namer); ok {
		opts = append(opts, oar.WithName(n.Name()))
	}
	return oar.NewReader(r, opts...)
}

// memberFunc adapts fn so that it stops once ctx is cancelled. The check runs
// before each member, so the current member always completes.
func memberFunc(ctx context.Context, fn oar.MemberFunc) oar.MemberFunc {
	return func(payload io.Reader, h *oar.Header, size int64) (bool, error) {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		return fn(payload, h, size)
	}
}
