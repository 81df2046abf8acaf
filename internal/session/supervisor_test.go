package session

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"
)

func TestRunReturnsImmediatelyOnCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	events := make(chan Event, 1)
	err := Run(ctx, Config{}, Credentials{}, ResumeState{}, events)
	if !errors.Is(err, ErrCanceled) {
		t.Fatalf("expected ErrCanceled, got %v", err)
	}
}

func TestWaitBackoffReportsReconnectingEvent(t *testing.T) {
	events := make(chan Event, 1)
	cfg := BackoffConfig{Base: time.Millisecond, Max: 10 * time.Millisecond}
	rng := rand.New(rand.NewSource(1))
	cause := errors.New("dial failed")

	ok := waitBackoff(context.Background(), cfg, 1, rng, events, cause)
	if !ok {
		t.Fatalf("expected wait to complete")
	}
	select {
	case ev := <-events:
		re, isReconnecting := ev.(ReconnectingEvent)
		if !isReconnecting {
			t.Fatalf("expected ReconnectingEvent, got %T", ev)
		}
		if re.Attempt != 1 || re.Cause != cause {
			t.Fatalf("unexpected event: %+v", re)
		}
	default:
		t.Fatalf("expected an event")
	}
}

func TestWaitBackoffAbortsOnCancel(t *testing.T) {
	events := make(chan Event, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ok := waitBackoff(ctx, BackoffConfig{Base: time.Hour, Max: time.Hour}, 1, nil, events, errors.New("x"))
	if ok {
		t.Fatalf("expected wait to abort on canceled context")
	}
}
