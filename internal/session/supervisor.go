package session

import (
	"context"
	"errors"
	"math/rand"
	"net"
	"time"

	"github.com/quietpush/fcmreceiver/internal/observability"
)

// dialFunc is the supervisor's transport hook: production code passes
// Dial (real TLS to MTalkAddress); tests substitute an in-memory
// net.Pipe-backed dialer to drive the S1-S6 scenarios without a
// network.
type dialFunc func(ctx context.Context, cfg Config) (net.Conn, error)

// Run drives one Credentials/ResumeState through however many
// dial-handshake-stream cycles it takes, reconnecting with backoff on
// transient failure and carrying ReceivedPersistentIDs forward each
// time. It returns only when ctx is canceled (ErrCanceled), the server
// sends a Close frame (nil), or the server rejects the credentials
// outright (ErrAuthFailed) — in the last case an AuthExpiredEvent is
// sent to events first.
func Run(ctx context.Context, cfg Config, creds Credentials, resume ResumeState, events chan<- Event) error {
	return run(ctx, cfg, creds, resume, events, func(ctx context.Context, cfg Config) (net.Conn, error) {
		return Dial(ctx, MTalkAddress, cfg)
	})
}

func run(ctx context.Context, cfg Config, creds Credentials, resume ResumeState, events chan<- Event, dial dialFunc) error {
	cfg = resolveConfig(cfg)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	attempt := 0

	for {
		if err := ctx.Err(); err != nil {
			return ErrCanceled
		}

		observability.SetConnectionState(int(StateConnecting))
		conn, err := dial(ctx, cfg)
		if err != nil {
			attempt++
			observability.RecordReconnect("dial_failed")
			if !waitBackoff(ctx, cfg.Backoff, attempt, rng, events, err) {
				return ErrCanceled
			}
			continue
		}

		fc := newFrameConn(conn)
		observability.SetConnectionState(int(StateHandshakeSent))
		login, err := handshake(ctx, fc, cfg, creds, resume)
		if err != nil {
			_ = fc.Close()
			if errors.Is(err, ErrAuthFailed) {
				events <- AuthExpiredEvent{Cause: err}
				return err
			}
			attempt++
			observability.RecordReconnect("handshake_failed")
			if !waitBackoff(ctx, cfg.Backoff, attempt, rng, events, err) {
				return ErrCanceled
			}
			continue
		}

		attempt = 0
		observability.SetConnectionState(int(StateLoginOK))
		state := NewState(resume)
		err = streamLoop(ctx, fc, cfg, state, creds, login, events)
		resume = state.Resume(creds)
		_ = fc.Close()

		if err == nil || errors.Is(err, ErrCanceled) || errors.Is(err, ErrClosedByServer) {
			// spec §4.3 Termination: a Close frame is a clean close, same
			// as caller cancellation — the supervisor stops rather than
			// reconnecting.
			observability.SetConnectionState(int(StateClosed))
			if errors.Is(err, ErrClosedByServer) {
				return nil
			}
			return err
		}
		attempt++
		observability.RecordReconnect("stream_error")
		if !waitBackoff(ctx, cfg.Backoff, attempt, rng, events, err) {
			return ErrCanceled
		}
	}
}

// waitBackoff sleeps the reconnect delay for attempt, reporting it via
// events, and reports whether the wait completed (false means ctx was
// canceled mid-wait).
func waitBackoff(ctx context.Context, cfg BackoffConfig, attempt int, rng *rand.Rand, events chan<- Event, cause error) bool {
	delay := NextBackoffDelay(cfg, attempt, rng)
	events <- ReconnectingEvent{Attempt: attempt, Delay: delay, Cause: cause}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
