// Package retry wraps mutating GitHub calls with the backoff GitHub's
// secondary rate limit demands: wait 60s, then 120s, then 180s, and try
// again until the limit clears. Every other failure is surfaced once and
// the batch moves on.
package retry

import (
	"errors"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/charmbracelet/log"
)

// HTTPStatusError is implemented by API errors that carry their HTTP
// status code. The executor only ever retries 403s whose message names the
// secondary rate limit.
type HTTPStatusError interface {
	error
	HTTPStatus() int
}

// IsSecondaryRateLimit reports whether err is the transient throttling
// signal GitHub emits alongside HTTP 403.
func IsSecondaryRateLimit(err error) bool {
	var se HTTPStatusError
	if !errors.As(err, &se) {
		return false
	}
	return se.HTTPStatus() == 403 &&
		strings.Contains(strings.ToLower(se.Error()), "secondary rate limit")
}

type Executor struct {
	initialWait  time.Duration
	waitIncrease time.Duration
	maxAttempts  int // retries after the first attempt; 0 = unbounded
	logger       *log.Logger
	timer        backoff.Timer // nil uses the real clock
}

func NewExecutor(initialWait, waitIncrease time.Duration, maxAttempts int, logger *log.Logger) *Executor {
	return &Executor{
		initialWait:  initialWait,
		waitIncrease: waitIncrease,
		maxAttempts:  maxAttempts,
		logger:       logger,
	}
}

// linearBackOff waits initial, initial+increase, initial+2*increase, ...
// The stock policies in the backoff package are constant or exponential;
// the observed GitHub behavior is linear, so the BackOff interface is
// implemented here and driven through backoff.RetryNotifyWithTimer.
type linearBackOff struct {
	initial  time.Duration
	increase time.Duration
	next     time.Duration
}

func (b *linearBackOff) NextBackOff() time.Duration {
	d := b.next
	b.next += b.increase
	return d
}

func (b *linearBackOff) Reset() {
	b.next = b.initial
}

// Do runs op, retrying only on the secondary-rate-limit signal. Any other
// error is returned to the caller after a single attempt so the outer loop
// can log it and continue with the next item.
func (e *Executor) Do(desc string, op func() error) error {
	// BackOff implementations are stateful; always build a fresh one.
	var bo backoff.BackOff = &linearBackOff{
		initial:  e.initialWait,
		increase: e.waitIncrease,
		next:     e.initialWait,
	}
	if e.maxAttempts > 0 {
		bo = backoff.WithMaxRetries(bo, uint64(e.maxAttempts))
	}

	attempt := 0
	return backoff.RetryNotifyWithTimer(func() error {
		err := op()
		if err == nil {
			return nil
		}
		if IsSecondaryRateLimit(err) {
			return err
		}
		return backoff.Permanent(err)
	}, bo, func(err error, wait time.Duration) {
		attempt++
		e.logger.Warn("rate limit hit, waiting before retry",
			"op", desc, "wait", wait, "attempt", attempt)
	}, e.timer)
}
