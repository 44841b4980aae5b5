package runner

import (
	"context"
	"fmt"
	"io"

	"github.com/infracollect/oarchive/internal/oar"
	"go.uber.org/zap"
)

// Verify walks the whole archive and fails on the first malformed size or
// truncated payload. Header problems that do not break the stream, like a
// missing size or filename, are logged and counted in Summary.Invalid.
func Verify(ctx context.Context, logger *zap.Logger, r io.Reader) (Summary, error) {
	reader := newReader(logger, r)
	var summary Summary

	err := reader.Stream(memberFunc(ctx, func(_ io.Reader, h *oar.Header, size int64) (bool, error) {
		if err := h.Validate(); err != nil {
			summary.Invalid++
			logger.Warn("member header has problems", zap.Int("member", summary.Members), zap.Error(err))
		}

		summary.Members++
		summary.PayloadBytes += size
		if !h.Has(oar.FilenameKey) {
			summary.Anonymous++
		}
		return true, nil
	}))
	summary.ArchiveBytes = reader.Offset()
	if err != nil {
		return summary, fmt.Errorf("archive is invalid after %d member(s): %w", summary.Members, err)
	}

	logger.Debug("archive verified",
		zap.Int("members", summary.Members),
		zap.Int("anonymous", summary.Anonymous),
		zap.Int("invalid", summary.Invalid),
		zap.Int64("payload_bytes", summary.PayloadBytes),
		zap.Int64("archive_bytes", summary.ArchiveBytes),
	)
	return summary, nil
}
