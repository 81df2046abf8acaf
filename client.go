package fcmreceiver

import (
	"context"
	"net/http"

	"github.com/quietpush/fcmreceiver/internal/registration"
	"github.com/quietpush/fcmreceiver/internal/session"
)

// Options names the Firebase/GCM project Register registers a new
// synthetic device against.
type Options struct {
	// SenderID is the GCM/FCM sender ID (the numeric project number).
	SenderID string
	// FirebaseProjectID, FirebaseAPIKey and FirebaseAppID come from
	// the caller's Firebase project configuration (google-services.json
	// or the Firebase console).
	FirebaseProjectID string
	FirebaseAPIKey    string
	FirebaseAppID     string
	// HTTPClient overrides the client used for registration calls.
	// Defaults to http.DefaultClient.
	HTTPClient *http.Client
}

// Register runs the checkin/GCM-register/FCM-install sequence once
// and returns the Credentials a Listen call needs. Callers should
// persist the result; Register should typically run only on first
// install, not on every process start.
func Register(ctx context.Context, opts Options) (Credentials, error) {
	client := registration.NewClient()
	return client.Register(ctx, registration.Options{
		SenderID:          opts.SenderID,
		FirebaseProjectID: opts.FirebaseProjectID,
		FirebaseAPIKey:    opts.FirebaseAPIKey,
		FirebaseAppID:     opts.FirebaseAppID,
		HTTPClient:        opts.HTTPClient,
	})
}

// Listen holds a persistent MCS session open, reconnecting with
// backoff on transient failure, and sends an Event to events for
// every heartbeat, message, reconnect and terminal condition. It
// blocks until ctx is canceled, the server closes the session with a
// Close frame (Listen then returns nil), or the server rejects creds
// outright (AuthExpiredEvent is sent first in that case). Cancel ctx
// to stop.
func Listen(ctx context.Context, creds Credentials, resume ResumeState, events chan<- Event) error {
	return session.Run(ctx, Config{}, creds, resume, events)
}

// ListenWithConfig is Listen with explicit connection/backoff tuning.
func ListenWithConfig(ctx context.Context, cfg Config, creds Credentials, resume ResumeState, events chan<- Event) error {
	return session.Run(ctx, cfg, creds, resume, events)
}
