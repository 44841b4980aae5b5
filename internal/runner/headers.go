package runner

import (
	"context"
	"fmt"
	"io"

	"github.com/infracollect/oarchive/internal/oar"
	"go.uber.org/zap"
)

// Headers prints every member header as key=value lines, with a blank line
// between members.
func Headers(ctx context.Context, logger *zap.Logger, r io.Reader, out io.Writer) error {
	reader := newReader(logger, r)
	first := true

	return reader.Stream(memberFunc(ctx, func(_ io.Reader, h *oar.Header, _ int64) (bool, error) {
		if !first {
			if _, err := io.WriteString(out, "\n"); err != nil {
				return false, fmt.Errorf("failed to write headers: %w", err)
			}
		}
		first = false

		if _, err := io.WriteString(out, h.String()); err != nil {
			return false, fmt.Errorf("failed to write headers: %w", err)
		}
		return true, nil
	}))
}
