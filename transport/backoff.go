package transport

import (
	"context"
	"time"

	"github.com/goliatone/go-adyen/core"
)

const defaultMaxBackoff = 10 * time.Second

// ExponentialBackoffScheduler doubles the delay on every retry. The
// delay before retry n is Base * 2^(n-1), capped at Max.
type ExponentialBackoffScheduler struct {
	Base time.Duration
	Max  time.Duration
}

func (s ExponentialBackoffScheduler) NextDelay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	base := s.Base
	if base <= 0 {
		base = core.DefaultBaseBackoff
	}
	max := s.Max
	if max <= 0 {
		max = defaultMaxBackoff
	}

	delay := base
	for i := 1; i < attempt; i++ {
		delay *= 2
		if delay >= max {
			return max
		}
	}
	if delay > max {
		return max
	}
	return delay
}

var _ core.BackoffScheduler = ExponentialBackoffScheduler{}

func waitWithContext(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
