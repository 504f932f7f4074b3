package util

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter is a token bucket guarding bursty work such as watcher-triggered
// re-validation.
type Limiter struct {
	inner *rate.Limiter
}

// NewLimiter creates a limiter allowing perSecond events with the given burst.
func NewLimiter(perSecond float64, burst int) *Limiter {
	return &Limiter{inner: rate.NewLimiter(rate.Limit(perSecond), burst)}
}

// Allow reports whether one event may happen now.
func (l *Limiter) Allow() bool {
	return l.inner.Allow()
}

// Wait blocks until one token is available or ctx is done.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.inner.Wait(ctx)
}
