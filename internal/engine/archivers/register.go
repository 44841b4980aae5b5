package archivers

import (
	"context"

	"github.com/infracollect/oarchive/internal/engine"
	"go.uber.org/zap"
)

func Register(registry *engine.Registry) {
	registry.RegisterArchiver(TarFormat, newTarArchiver)
	registry.RegisterArchiver(OarFormat, newOarArchiver)
	registry.RegisterArchiver(ZipFormat, newZipArchiver)
}

func newTarArchiver(_ context.Context, logger *zap.Logger, opts engine.ArchiverOptions) (engine.Archiver, error) {
	archiver, err := NewTarArchiver(opts.Compression, logger)
	if err != nil {
		return nil, err
	}
	return archiver, nil
}

func newOarArchiver(_ context.Context, logger *zap.Logger, opts engine.ArchiverOptions) (engine.Archiver, error) {
	archiver, err := NewOarArchiver(opts.Compression, logger)
	if err != nil {
		return nil, err
	}
	return archiver, nil
}

func newZipArchiver(_ context.Context, logger *zap.Logger, opts engine.ArchiverOptions) (engine.Archiver, error) {
	archiver, err := NewZipArchiver(opts.Compression, logger)
	if err != nil {
		return nil, err
	}
	return archiver, nil
}
