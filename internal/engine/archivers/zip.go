package archivers

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"
)

const ZipFormat = "zip"

// CompressionDeflate is the default zip method.
const CompressionDeflate CompressionType = "deflate"

// ZipArchiver packs extracted members into a ZIP archive, one entry per member.
type ZipArchiver struct {
	buf    *bytes.Buffer
	zw     *zip.Writer
	method uint16
	logger *zap.Logger
	closed bool
}

// NewZipArchiver creates a zip archiver. Supported compression types are
// "deflate" and "none"; empty means deflate.
func NewZipArchiver(compression string, logger *zap.Logger) (*ZipArchiver, error) {
	var method uint16
	switch CompressionType(compression) {
	case "", CompressionDeflate:
		method = zip.Deflate
	case CompressionNone:
		method = zip.Store
	default:
		return nil, fmt.Errorf("unsupported compression type for %s: %s", ZipFormat, compression)
	}

	buf := new(bytes.Buffer)
	return &ZipArchiver{
		buf:    buf,
		zw:     zip.NewWriter(buf),
		method: method,
		logger: logger,
	}, nil
}

func (a *ZipArchiver) AddFile(ctx context.Context, filename string, data io.Reader) error {
	if a.closed {
		return fmt.Errorf("archiver is closed")
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context cancelled: %w", err)
	}

	entry, err := a.zw.CreateHeader(&zip.FileHeader{
		Name:   filename,
		Method: a.method,
	})
	if err != nil {
		return fmt.Errorf("failed to create zip entry %s: %w", filename, err)
	}

	n, err := io.Copy(entry, data)
	if err != nil {
		return fmt.Errorf("failed to write zip entry %s: %w", filename, err)
	}

	a.logger.Debug("added zip entry", zap.String("filename", filename), zap.Int64("size", n))
	return nil
}

// Close writes the central directory.
func (a *ZipArchiver) Close() (io.Reader, error) {
	if a.closed {
		return nil, fmt.Errorf("archiver already closed")
	}
	a.closed = true

	if err := a.zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to close zip writer: %w", err)
	}
	return bytes.NewReader(a.buf.Bytes()), nil
}

func (a *ZipArchiver) Format() string {
	return ZipFormat
}

func (a *ZipArchiver) Extension() string {
	return ".zip"
}
