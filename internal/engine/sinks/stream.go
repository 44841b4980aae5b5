package sinks

import (
	"context"
	"fmt"
	"io"

	"github.com/infracollect/oarchive/internal/engine"
)

// StreamSink writes the payload of every extracted member onto a single
// writer, whole and back to back with no separator or header, the way `tar -O`
// prints extracted files. The member filename is only used in errors.
type StreamSink struct {
	w io.Writer
}

func NewStreamSink(w io.Writer) engine.Sink {
	return &StreamSink{w: w}
}

func (s *StreamSink) Name() string {
	return "stream"
}

func (s *StreamSink) Kind() string {
	return "stream"
}

func (s *StreamSink) Write(ctx context.Context, path string, data io.Reader) error {
	if _, err := io.Copy(s.w, data); err != nil {
		return fmt.Errorf("failed to copy %s: %w", path, err)
	}
	return nil
}

func (s *StreamSink) Close(ctx context.Context) error {
	return nil
}
