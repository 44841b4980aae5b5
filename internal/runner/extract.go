package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/infracollect/oarchive/internal/engine"
	"github.com/infracollect/oarchive/internal/oar"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// ErrMemberNotFound is returned by Extract when a requested name never appears
// in the archive.
var ErrMemberNotFound = errors.New("file not found in archive")

// Extract writes every member that has a filename to sink, then closes the
// sink. Members without a filename are skipped. When names is not empty only
// members with one of those filenames are extracted, and a name that never
// shows up fails the operation once the whole archive has been read.
func Extract(ctx context.Context, logger *zap.Logger, r io.Reader, sink engine.Sink, names ...string) (Summary, error) {
	reader := newReader(logger, r)
	var summary Summary

	wanted := lo.Keyify(names)
	seen := make(map[string]struct{}, len(wanted))

	logger = logger.With(zap.String("sink", sink.Name()))

	err := reader.Stream(memberFunc(ctx, func(payload io.Reader, h *oar.Header, size int64) (bool, error) {
		name, err := h.Filename()
		if err != nil {
			logger.Debug("skipping member without filename", zap.Int64("size", size))
			summary.Anonymous++
			return true, nil
		}

		if len(wanted) > 0 {
			if _, ok := wanted[name]; !ok {
				summary.Skipped++
				return true, nil
			}
			seen[name] = struct{}{}
		}

		if err := sink.Write(ctx, name, payload); err != nil {
			return false, fmt.Errorf("failed to extract %s: %w", name, err)
		}
		logger.Debug("extracted member", zap.String("filename", name), zap.Int64("size", size))

		summary.Members++
		summary.PayloadBytes += size
		return false, nil
	}))
	summary.ArchiveBytes = reader.Offset()
	if err != nil {
		return summary, err
	}

	missing := lo.Uniq(lo.Filter(names, func(name string, _ int) bool {
		_, ok := seen[name]
		return !ok
	}))
	if len(missing) > 0 {
		return summary, fmt.Errorf("%w: %s", ErrMemberNotFound, strings.Join(missing, ", "))
	}

	if err := sink.Close(ctx); err != nil {
		return summary, fmt.Errorf("failed to close sink: %w", err)
	}

	logger.Info("archive extracted",
		zap.Int("members", summary.Members),
		zap.Int("anonymous", summary.Anonymous),
		zap.Int("skipped", summary.Skipped),
	)
	return summary, nil
}
