package engine

import (
	"context"
	"io"
)

// Archiver packs named byte streams into a single archive blob. The archive
// is held until Close, which hands back the finished bytes.
type Archiver interface {
	// AddFile appends data as an entry called filename.
	AddFile(ctx context.Context, filename string, data io.Reader) error

	// Close finalizes the archive. Further calls to AddFile or Close fail.
	Close() (io.Reader, error)

	// Format names the archive format, as registered in a Registry.
	Format() string

	// Extension returns the file suffix for the format, e.g. ".oar" or ".tar.zst".
	Extension() string
}
