package session

import (
	"math/rand"
	"time"
)

// NextBackoffDelay returns the wait before reconnect attempt N
// (1-based): min(Max, Base*2^(attempt-1)) plus uniform jitter in
// [0, JitterSpan).
func NextBackoffDelay(cfg BackoffConfig, attempt int, rng *rand.Rand) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	delay := cfg.Base
	for i := 1; i < attempt; i++ {
		delay *= 2
		if delay >= cfg.Max {
			delay = cfg.Max
			break
		}
	}
	if delay > cfg.Max {
		delay = cfg.Max
	}
	if cfg.JitterSpan > 0 {
		var jitter time.Duration
		if rng != nil {
			jitter = time.Duration(rng.Int63n(int64(cfg.JitterSpan)))
		}
		delay += jitter
	}
	return delay
}
