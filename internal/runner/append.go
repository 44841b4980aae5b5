package runner

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/infracollect/oarchive/internal/oar"
	"go.uber.org/zap"
)

// Append concatenates the members of every input archive onto w. Inputs are
// re-read member by member, so a corrupt input fails the operation instead of
// being copied through.
func Append(ctx context.Context, logger *zap.Logger, w io.Writer, inputs ...io.Reader) (Summary, error) {
	writer := oar.NewWriter(w)
	var summary Summary

	for i, input := range inputs {
		reader := newReader(logger, input)

		for {
			if err := ctx.Err(); err != nil {
				return summary, err
			}

			m, err := reader.Next()
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				return summary, fmt.Errorf("failed to read input %d: %w", i, err)
			}

			if err := writer.CopyMember(m.Header.Clone(), m, m.Size); err != nil {
				return summary, fmt.Errorf("failed to copy member at offset %d of input %d: %w", m.Offset, i, err)
			}

			summary.Members++
			summary.PayloadBytes += m.Size
			if !m.Header.Has(oar.FilenameKey) {
				summary.Anonymous++
			}
		}
	}

	summary.ArchiveBytes = writer.Offset()
	logger.Info("archives appended", zap.Int("inputs", len(inputs)), zap.Int("members", summary.Members))
	return summary, nil
}
