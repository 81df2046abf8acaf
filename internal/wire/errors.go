// Package wire implements the MCS length-prefixed binary framing used
// by the MTalk push endpoint: an optional leading version byte, a
// one-byte tag, a LEB128 varint size, and an opaque body.
package wire

import "errors"

var (
	// ErrBadVersion is returned when the peer's version byte is below
	// the minimum this client understands.
	ErrBadVersion = errors.New("wire: unsupported protocol version")
	// ErrVarintTooLong is returned when a size varint exceeds 5 bytes.
	ErrVarintTooLong = errors.New("wire: varint size exceeds 5 bytes")
	// ErrBodyTooLarge is returned when a decoded body size exceeds MaxBodyBytes.
	ErrBodyTooLarge = errors.New("wire: body size exceeds limit")
	// ErrUnexpectedEOF is returned when the transport closes mid-frame.
	ErrUnexpectedEOF = errors.New("wire: unexpected eof reading frame")
	// ErrUnknownTag is returned by WriteFrame for a tag outside the known table.
	ErrUnknownTag = errors.New("wire: unknown tag on write")
)
