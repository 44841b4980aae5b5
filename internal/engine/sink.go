package engine

import (
	"context"
	"io"
)

// Sink is a destination for extracted members.
type Sink interface {
	Named
	Closer
	// Write stores data under path. Implementations must read data to EOF or
	// return an error.
	Write(ctx context.Context, path string, data io.Reader) error
}
