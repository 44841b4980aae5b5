package runner

import (
	"context"
	"fmt"
	"io"

	"github.com/infracollect/oarchive/internal/oar"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Create writes one member per path to w, in the given order. Each file is
// read whole from fsys.
func Create(ctx context.Context, logger *zap.Logger, fsys afero.Fs, w io.Writer, paths []string) (Summary, error) {
	writer := oar.NewWriter(w)

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return Summary{}, err
		}

		before := writer.Offset()
		if err := writer.AddFile(fsys, path); err != nil {
			return Summary{}, fmt.Errorf("failed to add %s to archive: %w", path, err)
		}
		logger.Debug("added member", zap.String("filename", path), zap.Int64("offset", before), zap.Int64("bytes", writer.Offset()-before))
	}

	summary := Summary{
		Members:      writer.Members(),
		ArchiveBytes: writer.Offset(),
	}
	logger.Info("archive created", zap.Int("members", summary.Members), zap.Int64("bytes", summary.ArchiveBytes))

	return summary, nil
}
