package oar

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingSize is reported for a header without a size key. Readers treat
	// the payload as empty.
	ErrMissingSize = errors.New("header has no size")

	// ErrMissingFilename is reported for an anonymous member.
	ErrMissingFilename = errors.New("header has no filename")

	// ErrMalformedSize matches any *MalformedSizeError.
	ErrMalformedSize = errors.New("malformed size")

	// ErrPayloadNotConsumed is returned when a member handler claims to have
	// consumed a payload it left partially unread.
	ErrPayloadNotConsumed = errors.New("member payload not fully consumed")
)

// MalformedSizeError is returned when a size value is not a non-negative
// decimal integer. The stream can no longer be delimited past this point.
type MalformedSizeError struct {
	Offset int64
	Value  string
	Err    error
}

func (e *MalformedSizeError) Error() string {
	return fmt.Sprintf("unparseable size %q in header at offset %d: %v", e.Value, e.Offset, e.Err)
}

func (e *MalformedSizeError) Unwrap() error {
	return e.Err
}

func (e *MalformedSizeError) Is(target error) bool {
	return target == ErrMalformedSize
}

// IOError wraps a failure to open, read, write or skip.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

func ioError(op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &IOError{Op: op, Path: path, Err: err}
}
