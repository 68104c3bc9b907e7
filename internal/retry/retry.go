package retry

import (
	"context"
	"math"
	"time"
)

// Policy controls how often and how patiently an operation is retried.
type Policy struct {
	MaxRetries   int           // Retries after the first attempt; 0 disables retrying
	InitialDelay time.Duration // Wait before the first retry
	MaxDelay     time.Duration // Upper bound for any single wait
	Multiplier   float64       // Growth factor between waits

	// OnRetry is called before each wait. Optional.
	OnRetry func(attempt int, err error, delay time.Duration)
}

// DefaultPolicy retries three times starting at 200ms, capped at 5s.
func DefaultPolicy() Policy {
	return Policy{
		MaxRetries:   3,
		InitialDelay: 200 * time.Millisecond,
		MaxDelay:     5 * time.Second,
		Multiplier:   2,
	}
}

// Delay returns the wait before retry number attempt (0-based).
func (p Policy) Delay(attempt int) time.Duration {
	mult := p.Multiplier
	if mult < 1 {
		mult = 1
	}
	d := float64(p.InitialDelay) * math.Pow(mult, float64(attempt))
	if p.MaxDelay > 0 && d > float64(p.MaxDelay) {
		return p.MaxDelay
	}
	return time.Duration(d)
}

// Do runs op until it succeeds, fails with a non-transient error, the
// retries are used up or ctx is done. The last error is returned.
func Do(ctx context.Context, p Policy, op func(ctx context.Context) error) error {
	err := op(ctx)
	for attempt := 0; err != nil && attempt < p.MaxRetries && IsTransient(err); attempt++ {
		delay := p.Delay(attempt)
		if p.OnRetry != nil {
			p.OnRetry(attempt, err, delay)
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		err = op(ctx)
	}
	return err
}
