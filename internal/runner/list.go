package runner

import (
	"context"
	"fmt"
	"io"

	"github.com/infracollect/oarchive/internal/oar"
	"go.uber.org/zap"
)

// List prints the filename of every member in r, one per line. Payloads are
// skipped without being read.
func List(ctx context.Context, logger *zap.Logger, r io.Reader, out io.Writer) error {
	reader := newReader(logger, r)

	return reader.Stream(memberFunc(ctx, func(_ io.Reader, h *oar.Header, _ int64) (bool, error) {
		name, err := h.Filename()
		if err != nil {
			name = MissingFilenamePlaceholder
		}
		if _, err := fmt.Fprintln(out, name); err != nil {
			return false, fmt.Errorf("failed to write listing: %w", err)
		}
		return true, nil
	}))
}
