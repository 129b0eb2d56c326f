package cssparse

import (
	"fmt"
	"io"
)

// String is the owned, length-prefixed byte buffer holding raw CSS
// source text (spec.md §3's CssString). Only the payload is stored
// (plus one trailing NUL byte); there is no separate capacity field,
// and the length is derived from the payload slice.
//
// A String is non-owning from a KeyTable's perspective: the table
// only ever holds a pointer back into a live String. Close marks the
// buffer freed so KeyTable reads of the buffer (StringAt, KeyNode.Bytes)
// fail loudly instead of reading stale or nonexistent data.
type String struct {
	data  []byte
	freed bool
}

// NewString copies data into a new owned buffer. It fails with
// ErrInputTooLarge when len(data) would not leave room for the
// trailing NUL sentinel within the 20-bit offset space.
func NewString(data []byte, opts ...Option) (*String, error) {
	cfg := newOptions(opts...)
	if len(data) >= cfg.maxInputSize {
		return nil, newParseError(ErrKindInputTooLarge, len(data),
			fmt.Sprintf("input length %d exceeds maximum of %d bytes", len(data), cfg.maxInputSize-1))
	}
	buf := make([]byte, len(data)+1) // +1 for the NUL lookahead sentinel
	copy(buf, data)
	return &String{data: buf}, nil
}

// NewStringFromReader drains r in chunks until EOF, same size cap as
// NewString. Adapted from vm_input.go's MemInput, generalized from a
// fixed []byte source to any io.Reader per spec.md §4.1's "stream
// handle that yields bytes".
func NewStringFromReader(r io.Reader, opts ...Option) (*String, error) {
	cfg := newOptions(opts...)

	buf := make([]byte, 0, cfg.streamChunkSize)
	chunk := make([]byte, cfg.streamChunkSize)
	for {
		n, err := r.Read(chunk)
		if n > 0 {
			if len(buf)+n >= cfg.maxInputSize {
				return nil, newParseError(ErrKindInputTooLarge, len(buf)+n,
					fmt.Sprintf("stream exceeds maximum of %d bytes", cfg.maxInputSize-1))
			}
			buf = append(buf, chunk[:n]...)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, newParseError(ErrKindIO, len(buf), err.Error())
		}
	}
	return NewString(buf, opts...)
}

// Close marks the buffer freed. It never returns an error in this
// implementation (there is no underlying OS handle to release) but
// keeps the constructor/destructor pairing spec.md §3's Lifecycle
// section describes, and lets KeyTable accessors detect use-after-free.
func (s *String) Close() error {
	s.freed = true
	return nil
}

// Len returns the number of valid payload bytes (sblen), excluding the
// trailing NUL sentinel.
func (s *String) Len() int {
	if len(s.data) == 0 {
		return 0
	}
	return len(s.data) - 1
}

// Bytes returns the valid payload, [0, Len()). The returned slice
// aliases the buffer and must not be mutated by callers.
func (s *String) Bytes() []byte {
	return s.data[:s.Len()]
}

// byteAt returns the byte at i, or the NUL sentinel when i == Len().
// It is the scanner's one-byte-lookahead primitive.
func (s *String) byteAt(i int) byte {
	return s.data[i]
}

func (s *String) checkLive() error {
	if s.freed {
		return newParseError(ErrKindIO, 0, "use of closed cssparse.String")
	}
	return nil
}
