package oar

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"

	"go.uber.org/zap"
)

const readBufferSize = 64 * 1024

// MemberFunc handles one member during Reader.Stream. payload yields at most
// size bytes. Returning skip=true asks the reader to move past whatever the
// handler left unread; skip=false claims the payload was fully consumed.
type MemberFunc func(payload io.Reader, h *Header, size int64) (skip bool, err error)

// Reader iterates over the members of an archive stream.
type Reader struct {
	br      *bufio.Reader
	logger  *zap.Logger
	name    string
	offset  int64
	current *Member
	err     error
}

// ReaderOption configures a Reader.
type ReaderOption func(*Reader)

// WithLogger sets the logger used for warnings about missing sizes and
// truncated headers.
func WithLogger(logger *zap.Logger) ReaderOption {
	return func(r *Reader) {
		r.logger = logger
	}
}

// WithName sets the archive name reported in errors.
func WithName(name string) ReaderOption {
	return func(r *Reader) {
		r.name = name
	}
}

// NewReader creates a reader positioned at the first header of r.
func NewReader(r io.Reader, opts ...ReaderOption) *Reader {
	reader := &Reader{
		br:     bufio.NewReaderSize(r, readBufferSize),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(reader)
	}
	return reader
}

// Offset returns the number of archive bytes consumed so far. Right after Next
// it is the start of that member's payload; the unread payload is only skipped
// by the following Next. Inside and after a Stream callback that consumed or
// skipped its payload it is the offset of the next header.
func (r *Reader) Offset() int64 {
	return r.offset
}

// Member is one archive entry. Reading from it yields the payload; Next skips
// any part of it left unread.
type Member struct {
	Header *Header
	Size   int64
	// Offset is the position of the header start in the stream.
	Offset int64

	r         *Reader
	remaining int64
}

// Filename returns the member filename and whether it was present.
func (m *Member) Filename() (string, bool) {
	return m.Header.Get(FilenameKey)
}

// Remaining returns the number of payload bytes not yet read.
func (m *Member) Remaining() int64 {
	return m.remaining
}

func (m *Member) Read(p []byte) (int, error) {
	if m.remaining <= 0 {
		return 0, io.EOF
	}
	if int64(len(p)) > m.remaining {
		p = p[:m.remaining]
	}
	n, err := m.r.br.Read(p)
	m.remaining -= int64(n)
	m.r.offset += int64(n)
	if err == io.EOF {
		if m.remaining > 0 {
			return n, ioError("read", m.r.name, io.ErrUnexpectedEOF)
		}
		return n, nil
	}
	if err != nil {
		return n, ioError("read", m.r.name, err)
	}
	return n, nil
}

// Next returns the next member, or io.EOF at a clean end of archive. A
// *MalformedSizeError is sticky: every later call returns it again.
func (r *Reader) Next() (*Member, error) {
	if r.current != nil {
		if err := r.skip(r.current); err != nil {
			return nil, err
		}
		r.current = nil
	}
	if r.err != nil {
		return nil, r.err
	}

	start := r.offset
	h, stat, err := readHeader(r.br)
	r.offset += stat.n
	if errors.Is(err, io.EOF) {
		return nil, io.EOF
	}
	if err != nil {
		r.err = ioError("read", r.name, fmt.Errorf("header at offset %d: %w", start, err))
		return nil, r.err
	}
	if stat.truncated {
		r.logger.Warn("archive ends inside a header", zap.Int64("offset", start))
	}
	if ce := r.logger.Check(zap.DebugLevel, "read member header"); ce != nil {
		ce.Write(zap.Int64("offset", start), zap.Strings("keys", h.Keys()), zap.String("header", h.String()))
	}

	size, err := h.Size()
	if errors.Is(err, ErrMissingSize) {
		r.logger.Warn("encountered a header without an explicit size", zap.Int64("offset", start))
		size, err = 0, nil
	}
	if err != nil {
		var sizeErr *MalformedSizeError
		if errors.As(err, &sizeErr) {
			sizeErr.Offset = start
		}
		r.err = err
		return nil, err
	}

	r.current = &Member{
		Header:    h,
		Size:      size,
		Offset:    start,
		r:         r,
		remaining: size,
	}
	return r.current, nil
}

// Stream calls fn for every member until the end of the archive. It returns nil
// at a clean end of stream.
func (r *Reader) Stream(fn MemberFunc) error {
	for {
		m, err := r.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		skip, err := fn(m, m.Header, m.Size)
		if err != nil {
			return err
		}

		if skip {
			if err := r.skip(m); err != nil {
				return err
			}
		} else if m.Remaining() > 0 {
			return fmt.Errorf("member at offset %d left %d of %d bytes unread: %w",
				m.Offset, m.Remaining(), m.Size, ErrPayloadNotConsumed)
		}
		r.current = nil
	}
}

// skip discards the unread part of m's payload.
func (r *Reader) skip(m *Member) error {
	if m.Remaining() <= 0 {
		return nil
	}
	r.logger.Debug("skipping payload", zap.Int64("offset", r.offset), zap.Int64("bytes", m.Remaining()))
	for m.remaining > 0 {
		chunk := min(m.remaining, math.MaxInt32)
		n, err := r.br.Discard(int(chunk))
		m.remaining -= int64(n)
		r.offset += int64(n)
		if err != nil {
			if errors.Is(err, io.EOF) {
				err = io.ErrUnexpectedEOF
			}
			return ioError("skip", r.name, fmt.Errorf("payload of member at offset %d: %w", m.Offset, err))
		}
	}
	return nil
}
