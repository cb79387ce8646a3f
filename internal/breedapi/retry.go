package breedapi

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

const (
	DefaultMaxRetries = 3
	DefaultRetryDelay = time.Second
)

// Sleeper blocks for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// SleepContext is the production Sleeper.
func SleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// RetryPolicy is a fixed-delay retry budget. MaxRetries counts attempts made
// after the first one.
type RetryPolicy struct {
	MaxRetries int
	Delay      time.Duration
}

// DefaultRetryPolicy returns 3 retries spaced one second apart.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxRetries: DefaultMaxRetries, Delay: DefaultRetryDelay}
}

// Retrier runs an operation under a RetryPolicy.
type Retrier struct {
	policy RetryPolicy
	sleep  Sleeper
	logger *zap.Logger
}

// NewRetrier creates a Retrier. A nil sleeper uses SleepContext.
func NewRetrier(policy RetryPolicy, sleep Sleeper, logger *zap.Logger) *Retrier {
	if policy.MaxRetries < 0 {
		policy.MaxRetries = 0
	}
	if sleep == nil {
		sleep = SleepContext
	}
	return &Retrier{policy: policy, sleep: sleep, logger: logger}
}

// Do calls fn until it succeeds, fails permanently, or the budget is spent.
// The last error is returned on exhaustion. A 404 or an undecodable body is a
// definite answer and is returned without retrying.
func (r *Retrier) Do(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	b := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(r.policy.Delay), uint64(r.policy.MaxRetries)),
		ctx,
	)
	timer := newSleeperTimer(ctx, r.sleep)

	attempts := 0
	operation := func() error {
		if timer.err != nil {
			return backoff.Permanent(fmt.Errorf("%s: %w", op, timer.err))
		}
		attempts++
		err := fn(ctx)
		if err != nil && (isPermanent(err) || ctx.Err() != nil) {
			return backoff.Permanent(err)
		}
		return err
	}
	notify := func(err error, next time.Duration) {
		r.logger.Warn("breed api request failed, retrying",
			zap.String("op", op),
			zap.Int("attempt", attempts),
			zap.Int("retries_left", r.policy.MaxRetries-attempts+1),
			zap.Duration("delay", next),
			zap.Error(err),
		)
	}

	err := backoff.RetryNotifyWithTimer(operation, b, notify, timer)
	if err == nil || isPermanent(err) || timer.err != nil {
		return err
	}
	return fmt.Errorf("%s: gave up after %d attempts: %w", op, attempts, err)
}

func isPermanent(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrMalformedResponse)
}

// sleeperTimer drives backoff's retry loop through a Sleeper. Start blocks in
// the Sleeper and then fires; a Sleeper error is kept and ends the loop on
// the next attempt.
type sleeperTimer struct {
	ctx   context.Context
	sleep Sleeper
	c     chan time.Time
	err   error
}

func newSleeperTimer(ctx context.Context, sleep Sleeper) *sleeperTimer {
	return &sleeperTimer{ctx: ctx, sleep: sleep, c: make(chan time.Time, 1)}
}

func (t *sleeperTimer) Start(d time.Duration) {
	if err := t.sleep(t.ctx, d); err != nil {
		t.err = err
	}
	t.c <- time.Now()
}

func (t *sleeperTimer) Stop() {}

func (t *sleeperTimer) C() <-chan time.Time { return t.c }
