package session

import "errors"

var (
	// ErrAuthFailed marks a LoginResponse rejection the supervisor
	// must not retry: the credentials themselves are bad.
	ErrAuthFailed = errors.New("session: authentication rejected")
	// ErrHandshakeTimeout is returned when no LoginResponse arrives
	// within Config.LoginTimeout.
	ErrHandshakeTimeout = errors.New("session: handshake timed out")
	// ErrConnectTimeout is returned when the TCP+TLS dial does not
	// complete within Config.ConnectTimeout.
	ErrConnectTimeout = errors.New("session: connect timed out")
	// ErrSessionDead is returned by the stream loop when two
	// consecutive heartbeat probes go unanswered by any inbound frame.
	ErrSessionDead = errors.New("session: no inbound traffic, session presumed dead")
	// ErrClosedByServer is returned when the server sends a Close frame.
	ErrClosedByServer = errors.New("session: closed by server")
	// ErrCanceled is returned when the caller's context is done.
	ErrCanceled = errors.New("session: canceled")
	// ErrPersistentIDCapExceeded marks a resume state whose
	// received-id list grew past the negotiated cap.
	ErrPersistentIDCapExceeded = errors.New("session: received persistent id cap exceeded")
	// ErrUnexpectedLoginResponse is returned when a second LoginResponse
	// arrives after the session already reached LoginOk.
	ErrUnexpectedLoginResponse = errors.New("session: unexpected login response after login ok")
	// ErrProtocolViolation marks a frame sequence that violates the
	// handshake contract (e.g. a first frame that isn't LoginResponse).
	ErrProtocolViolation = errors.New("session: protocol violation")
)
