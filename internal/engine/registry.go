package engine

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

// ArchiverOptions are the format-independent knobs passed to every factory.
type ArchiverOptions struct {
	// Compression is interpreted by formats that support it; others reject
	// anything but "" and "none".
	Compression string
}

type ArchiverFactory func(ctx context.Context, logger *zap.Logger, opts ArchiverOptions) (Archiver, error)

// UnsupportedFormatError is returned when an archive format is not registered.
type UnsupportedFormatError struct {
	Format    string   // the requested format
	Available []string // registered formats
}

func (e *UnsupportedFormatError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("unsupported archive format %q: no formats registered", e.Format)
	}
	return fmt.Sprintf("unsupported archive format %q (available: %v)", e.Format, e.Available)
}

// Registry maps archive format names to archiver factories.
type Registry struct {
	mu        sync.RWMutex
	archivers map[string]ArchiverFactory
	logger    *zap.Logger
}

func NewRegistry(logger *zap.Logger) *Registry {
	return &Registry{
		archivers: make(map[string]ArchiverFactory),
		logger:    logger,
	}
}

func (r *Registry) RegisterArchiver(format string, factory ArchiverFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.archivers[format] = factory
}

func (r *Registry) CreateArchiver(ctx context.Context, format string, opts ArchiverOptions) (Archiver, error) {
	r.mu.RLock()
	factory, ok := r.archivers[format]
	available := r.availableFormats()
	r.mu.RUnlock()
	if !ok {
		return nil, &UnsupportedFormatError{Format: format, Available: available}
	}
	return factory(ctx, r.logger.With(zap.String("format", format)), opts)
}

func (r *Registry) AvailableFormats() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.availableFormats()
}

func (r *Registry) availableFormats() []string {
	formats := lo.Keys(r.archivers)
	slices.Sort(formats)
	return formats
}
