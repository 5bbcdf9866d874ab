package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNetwork marks a backend failure such as a dropped connection or a
// timeout.
var ErrNetwork = errors.New("network error")

type transient struct{ err error }

func (t transient) Error() string { return t.err.Error() }
func (t transient) Unwrap() error { return t.err }

// Transient marks err as worth another attempt. It returns nil for nil.
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return transient{err}
}

// IsTransient reports whether err, or an error it wraps, was marked with
// [Transient].
func IsTransient(err error) bool {
	var t transient
	return errors.As(err, &t)
}

// Backoff retries transient backend operations with a doubling delay.
type Backoff struct {
	Attempts int
	Delay    time.Duration
}

// DefaultBackoff makes three attempts, waiting 100ms and then 200ms.
var DefaultBackoff = Backoff{Attempts: 3, Delay: 100 * time.Millisecond}

// Do runs fn until it succeeds, fails with an error that is not transient,
// or runs out of attempts. A done ctx ends the wait between attempts with
// ctx.Err().
func (b Backoff) Do(ctx context.Context, fn func() error) error {
	attempts := max(b.Attempts, 1)
	delay := b.Delay
	var err error
	for i := range attempts {
		if err = fn(); err == nil || !IsTransient(err) {
			return err
		}
		if i == attempts-1 {
			break
		}
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		delay *= 2
	}
	return err
}
