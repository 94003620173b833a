// Package retry wraps transient-failure handling for the broker-facing
// paths: connecting to NATS at startup and publishing transfer batches.
package retry

import (
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	DefaultMaxAttempts = 3
	DefaultInterval    = 2 * time.Second
)

type Operation func() error

// Notify is called after each failed attempt with the delay before the
// next one.
type Notify func(error, time.Duration)

// Exponential retries op with exponential backoff, starting at initial,
// until it succeeds or maxElapsed runs out. notify may be nil.
func Exponential(op Operation, initial, maxElapsed time.Duration, notify Notify) error {
	if initial <= 0 {
		return errors.New("retry: initial interval must be > 0")
	}
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = initial
	if maxElapsed > 0 {
		bo.MaxElapsedTime = maxElapsed
	}
	return backoff.RetryNotify(backoff.Operation(op), bo, backoff.Notify(notify))
}

// Constant retries op up to attempts times, pausing interval between
// tries, and reports the last error when every attempt fails.
func Constant(op Operation, attempts int, interval time.Duration) error {
	if attempts < 1 {
		attempts = 1
	}
	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			time.Sleep(interval)
		}
		if err = op(); err == nil {
			return nil
		}
	}
	return fmt.Errorf("retry: all %d attempts failed: %w", attempts, err)
}
