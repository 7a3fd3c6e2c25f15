// Package refresh provides a bounded, cancellable freshness poller used by
// consumers that wait for the catalog to finish loading.
package refresh

import (
	"context"
	"time"
)

// Poller re-runs a readiness check at a fixed interval until the check
// passes, MaxAttempts checks have failed, or the context is cancelled.
type Poller struct {
	MaxAttempts int
	Interval    time.Duration
}

// Run polls check and returns true as soon as it reports ready. It returns
// false when MaxAttempts checks have failed or ctx was cancelled first.
// The first check runs immediately, before any delay.
func (p Poller) Run(ctx context.Context, check func() bool) bool {
	attempts := p.MaxAttempts
	if attempts <= 0 {
		return false
	}

	if check() {
		return true
	}
	attempts--

	if attempts == 0 {
		return false
	}

	ticker := time.NewTicker(p.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return false
		case <-ticker.C:
			if check() {
				return true
			}
			attempts--
			if attempts == 0 {
				return false
			}
		}
	}
}
