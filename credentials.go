package fcmreceiver

import "github.com/quietpush/fcmreceiver/internal/session"

// Credentials is everything Register produces and Listen needs. It is
// safe to marshal (e.g. to JSON) and persist across process restarts.
type Credentials = session.Credentials

// ResumeState lets Listen pick a session back up without redelivering
// messages the caller already saw. Round-trip it through storage
// between runs; the zero value is a valid first-run state.
type ResumeState = session.ResumeState

// Config tunes connection, handshake and backoff timing. The zero
// value resolves to sensible defaults (see internal/session.DefaultConfig).
type Config = session.Config
