package cache

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrUnavailable is returned when a remote cache backend cannot be reached.
var ErrUnavailable = errors.New("cache backend unavailable")

// Remote constructors ping their backend before returning. A server that
// is still starting gets pingAttempts tries, pingDelay apart, the delay
// doubling each time.
var (
	pingAttempts = 3
	pingDelay    = 250 * time.Millisecond
)

// ping runs probe until it succeeds. It gives up after pingAttempts or
// when ctx ends; either way the error wraps [ErrUnavailable].
func ping(ctx context.Context, backend string, probe func(context.Context) error) error {
	delay := pingDelay
	var err error
	for attempt := 1; ; attempt++ {
		if err = probe(ctx); err == nil {
			return nil
		}
		if attempt >= pingAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %s: %w", ErrUnavailable, backend, ctx.Err())
		case <-time.After(delay):
			delay *= 2
		}
	}
	return fmt.Errorf("%w: %s: %v", ErrUnavailable, backend, err)
}
