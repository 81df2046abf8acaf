package fcmreceiver

import "github.com/quietpush/fcmreceiver/internal/session"

// Event is the sealed union of everything Listen can send on its
// events channel. Type-switch on the concrete type to handle it.
type Event = session.Event

// MessageEvent carries one decrypted push message.
type MessageEvent = session.MessageEvent

// HeartbeatTickEvent fires each time the server acks a heartbeat.
type HeartbeatTickEvent = session.HeartbeatTickEvent

// ReconnectingEvent fires when Listen is about to retry after a
// transient failure, before the backoff delay elapses.
type ReconnectingEvent = session.ReconnectingEvent

// AuthExpiredEvent fires when the server rejects the credentials
// outright; Listen returns immediately after sending it. The caller
// must Register again.
type AuthExpiredEvent = session.AuthExpiredEvent

// DecryptErrorEvent fires when a message arrives but this client's
// Web Push keys can't decrypt it (wrong keys, corrupted payload).
type DecryptErrorEvent = session.DecryptErrorEvent
