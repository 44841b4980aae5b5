package archivers

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/infracollect/oarchive/internal/oar"
	"go.uber.org/zap"
)

const OarFormat = "oar"

// OarArchiver packs entries into an Omni Archive Format stream held in memory.
type OarArchiver struct {
	buf    *bytes.Buffer
	writer *oar.Writer
	logger *zap.Logger
	closed bool
}

// NewOarArchiver creates an archiver for the .oar format. The format has no
// compression, so only "" and "none" are accepted.
func NewOarArchiver(compression string, logger *zap.Logger) (*OarArchiver, error) {
	if compression != "" && CompressionType(compression) != CompressionNone {
		return nil, fmt.Errorf("%s archives do not support compression %q", OarFormat, compression)
	}

	buf := new(bytes.Buffer)
	return &OarArchiver{
		buf:    buf,
		writer: oar.NewWriter(buf),
		logger: logger,
	}, nil
}

func (a *OarArchiver) AddFile(ctx context.Context, filename string, data io.Reader) error {
	if a.closed {
		return fmt.Errorf("archiver is closed")
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context cancelled: %w", err)
	}

	content, err := io.ReadAll(data)
	if err != nil {
		return fmt.Errorf("failed to read file data: %w", err)
	}

	h := oar.NewHeader()
	h.Set(oar.FilenameKey, filename)
	if err := a.writer.WriteMember(h, content); err != nil {
		return fmt.Errorf("failed to write member %s: %w", filename, err)
	}

	a.logger.Debug("added oar member", zap.String("filename", filename), zap.Int64("offset", a.writer.Offset()))
	return nil
}

func (a *OarArchiver) Close() (io.Reader, error) {
	if a.closed {
		return nil, fmt.Errorf("archiver already closed")
	}
	a.closed = true
	return bytes.NewReader(a.buf.Bytes()), nil
}

func (a *OarArchiver) Format() string {
	return OarFormat
}

func (a *OarArchiver) Extension() string {
	return ".oar"
}
