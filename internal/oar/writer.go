package oar

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/afero"
)

// Writer appends members to an archive stream. Members are written back to
// back with no padding.
type Writer struct {
	w       io.Writer
	offset  int64
	members int
}

// NewWriter creates a writer that appends members to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Offset returns the number of bytes written so far.
func (w *Writer) Offset() int64 {
	return w.offset
}

// Members returns the number of members written so far.
func (w *Writer) Members() int {
	return w.members
}

// AddFile reads the whole file at path from fsys and appends it as a member
// with filename and size keys.
func (w *Writer) AddFile(fsys afero.Fs, path string) error {
	info, err := fsys.Stat(path)
	if err != nil {
		return ioError("stat", path, err)
	}
	if info.IsDir() {
		return ioError("read", path, errors.New("is a directory"))
	}

	content, err := afero.ReadFile(fsys, path)
	if err != nil {
		return ioError("read", path, err)
	}

	return w.WriteMember(NewFileHeader(path, int64(len(content))), content)
}

// WriteMember writes h followed by payload. The size key is set from the
// payload length.
func (w *Writer) WriteMember(h *Header, payload []byte) error {
	h.SetSize(int64(len(payload)))
	if err := w.writeHeader(h); err != nil {
		return err
	}
	n, err := w.w.Write(payload)
	w.offset += int64(n)
	if err != nil {
		return ioError("write", "", fmt.Errorf("payload: %w", err))
	}
	w.members++
	return nil
}

// CopyMember writes h and then exactly size bytes read from r. The size key is
// set to size.
func (w *Writer) CopyMember(h *Header, r io.Reader, size int64) error {
	h.SetSize(size)
	if err := w.writeHeader(h); err != nil {
		return err
	}
	n, err := io.CopyN(w.w, r, size)
	w.offset += n
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return ioError("copy", "", fmt.Errorf("payload: %w", err))
	}
	w.members++
	return nil
}

func (w *Writer) writeHeader(h *Header) error {
	n, err := h.WriteTo(w.w)
	w.offset += n
	if err != nil {
		return ioError("write", "", fmt.Errorf("header: %w", err))
	}
	return nil
}
