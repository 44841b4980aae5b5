package runner

import (
	"github.com/infracollect/oarchive/internal/engine"
	"github.com/infracollect/oarchive/internal/engine/archivers"
	"go.uber.org/zap"
)

// BuildRegistry creates a new registry with all archive formats registered.
func BuildRegistry(logger *zap.Logger) *engine.Registry {
	registry := engine.NewRegistry(logger)

	archivers.Register(registry)

	return registry
}
