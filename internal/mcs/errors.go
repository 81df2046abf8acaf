// Package mcs implements the MCS (Mobile Connection Server) message
// schema carried inside internal/wire frames: LoginRequest,
// LoginResponse, HeartbeatPing/Ack, Close and DataMessageStanza,
// hand-encoded against the protobuf wire format rather than generated
// from a .proto file.
package mcs

import "errors"

var (
	// ErrTruncated is returned when a message body ends mid-field.
	ErrTruncated = errors.New("mcs: truncated message body")
	// ErrMissingField is wrapped by the RequiredFieldError that the
	// Validate functions return when a required field was absent from
	// a decoded message.
	ErrMissingField = errors.New("mcs: missing required field")
	// ErrUnknownWireType is returned when a field's wire type doesn't
	// match what this decoder knows how to skip or interpret.
	ErrUnknownWireType = errors.New("mcs: unknown wire type")
)
