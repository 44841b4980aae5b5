package oar

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	// FilenameKey holds the original path of the member.
	FilenameKey = "filename"
	// SizeKey holds the decimal number of payload bytes following the header.
	SizeKey = "size"

	keySeparator = '='
	pairEnd      = 0
)

type pair struct {
	key   string
	value string
}

// Header is the ordered key/value metadata block preceding a member payload.
// Insertion order is preserved so a decoded header re-encodes to the same bytes.
type Header struct {
	pairs []pair
	index map[string]int
}

// NewHeader creates an empty header.
func NewHeader() *Header {
	return &Header{index: make(map[string]int)}
}

// NewFileHeader creates a header with filename and size, in that order.
func NewFileHeader(filename string, size int64) *Header {
	h := NewHeader()
	h.Set(FilenameKey, filename)
	h.SetSize(size)
	return h
}

// Set stores value under key. An existing key keeps its position.
func (h *Header) Set(key, value string) {
	if h.index == nil {
		h.index = make(map[string]int)
	}
	if i, ok := h.index[key]; ok {
		h.pairs[i].value = value
		return
	}
	h.index[key] = len(h.pairs)
	h.pairs = append(h.pairs, pair{key: key, value: value})
}

// Get returns the value stored under key.
func (h *Header) Get(key string) (string, bool) {
	i, ok := h.index[key]
	if !ok {
		return "", false
	}
	return h.pairs[i].value, true
}

// Has reports whether key is present, even with an empty value.
func (h *Header) Has(key string) bool {
	_, ok := h.index[key]
	return ok
}

// Len returns the number of pairs.
func (h *Header) Len() int {
	return len(h.pairs)
}

// Keys returns the keys in insertion order.
func (h *Header) Keys() []string {
	keys := make([]string, len(h.pairs))
	for i, p := range h.pairs {
		keys[i] = p.key
	}
	return keys
}

// Filename returns the member filename, or ErrMissingFilename.
func (h *Header) Filename() (string, error) {
	name, ok := h.Get(FilenameKey)
	if !ok {
		return "", ErrMissingFilename
	}
	return name, nil
}

// SetSize stores size as decimal ASCII.
func (h *Header) SetSize(size int64) {
	h.Set(SizeKey, strconv.FormatInt(size, 10))
}

// Size parses the size field. It returns ErrMissingSize when the key is absent
// and a *MalformedSizeError when the value is not a non-negative decimal.
func (h *Header) Size() (int64, error) {
	raw, ok := h.Get(SizeKey)
	if !ok {
		return 0, ErrMissingSize
	}
	size, err := strconv.ParseUint(raw, 10, 63)
	if err != nil {
		return 0, &MalformedSizeError{Value: raw, Err: err}
	}
	return int64(size), nil
}

// Clone returns a copy that does not share storage with h.
func (h *Header) Clone() *Header {
	c := NewHeader()
	for _, p := range h.pairs {
		c.Set(p.key, p.value)
	}
	return c
}

// EncodedLen returns the number of bytes MarshalBinary produces.
func (h *Header) EncodedLen() int {
	n := 1
	for _, p := range h.pairs {
		n += len(p.key) + 1 + len(p.value) + 1
	}
	return n
}

// MarshalBinary encodes the header. Keys containing '=' and values
// containing NUL are written as-is and will not decode to the same header.
func (h *Header) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 0, h.EncodedLen())
	for _, p := range h.pairs {
		buf = append(buf, p.key...)
		buf = append(buf, keySeparator)
		buf = append(buf, p.value...)
		buf = append(buf, pairEnd)
	}
	buf = append(buf, pairEnd)
	return buf, nil
}

// WriteTo writes the encoded header to w.
func (h *Header) WriteTo(w io.Writer) (int64, error) {
	data, err := h.MarshalBinary()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}

// UnmarshalBinary decodes a header from data. Bytes after the terminator are
// ignored.
func (h *Header) UnmarshalBinary(data []byte) error {
	decoded, _, err := readHeader(bufio.NewReader(bytes.NewReader(data)))
	if errors.Is(err, io.EOF) {
		decoded, err = NewHeader(), nil
	}
	if err != nil {
		return err
	}
	*h = *decoded
	return nil
}

// String renders the header as key=value lines.
func (h *Header) String() string {
	var sb strings.Builder
	for _, p := range h.pairs {
		sb.WriteString(p.key)
		sb.WriteByte(keySeparator)
		sb.WriteString(p.value)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// DecodeHeader reads one header from r. It returns io.EOF when the stream ends
// before any header byte. A stream ending mid-header yields the pairs read so
// far and no error.
func DecodeHeader(r *bufio.Reader) (*Header, error) {
	h, _, err := readHeader(r)
	return h, err
}

type headerRead struct {
	n         int64
	truncated bool
}

func readHeader(r *bufio.Reader) (*Header, headerRead, error) {
	var stat headerRead
	h := NewHeader()

	for {
		b, err := r.ReadByte()
		if err == io.EOF {
			if stat.n == 0 {
				return nil, stat, io.EOF
			}
			stat.truncated = true
			return h, stat, nil
		}
		if err != nil {
			return nil, stat, err
		}
		stat.n++
		if b == pairEnd {
			return h, stat, nil
		}
		if err := r.UnreadByte(); err != nil {
			return nil, stat, err
		}
		stat.n--

		key, sep, n, err := readUntil(r, keySeparator, pairEnd)
		stat.n += n
		if err != nil && err != io.EOF {
			return nil, stat, err
		}
		if err == io.EOF {
			h.Set(string(key), "")
			stat.truncated = true
			return h, stat, nil
		}
		if sep == pairEnd {
			// A pair without '=' keeps its bytes as an opaque key.
			h.Set(string(key), "")
			continue
		}

		value, _, n, err := readUntil(r, pairEnd)
		stat.n += n
		if err != nil && err != io.EOF {
			return nil, stat, err
		}
		if len(key) == 0 && len(value) == 0 && err == nil {
			return h, stat, nil
		}
		h.Set(string(key), string(value))
		if err == io.EOF {
			stat.truncated = true
			return h, stat, nil
		}
	}
}

// readUntil reads bytes up to the first delimiter in delims and consumes the
// delimiter. It returns the delimiter found and the total bytes consumed.
func readUntil(r *bufio.Reader, delims ...byte) ([]byte, byte, int64, error) {
	var buf []byte
	var n int64
	for {
		b, err := r.ReadByte()
		if err != nil {
			return buf, 0, n, err
		}
		n++
		for _, d := range delims {
			if b == d {
				return buf, d, n, nil
			}
		}
		buf = append(buf, b)
	}
}

// Validate reports problems that do not prevent decoding.
func (h *Header) Validate() error {
	var errs error
	if !h.Has(SizeKey) {
		errs = errors.Join(errs, ErrMissingSize)
	} else if _, err := h.Size(); err != nil {
		errs = errors.Join(errs, err)
	}
	if !h.Has(FilenameKey) {
		errs = errors.Join(errs, ErrMissingFilename)
	}
	if errs != nil {
		return fmt.Errorf("invalid header: %w", errs)
	}
	return nil
}
