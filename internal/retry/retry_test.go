package retry

import (
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiError struct {
	status  int
	message string
}

func (e *apiError) Error() string   { return e.message }
func (e *apiError) HTTPStatus() int { return e.status }

// instantTimer fires immediately and records the requested waits.
type instantTimer struct {
	waits []time.Duration
	ch    chan time.Time
}

func (t *instantTimer) Start(d time.Duration) {
	t.waits = append(t.waits, d)
	t.ch = make(chan time.Time, 1)
	t.ch <- time.Now()
}

func (t *instantTimer) C() <-chan time.Time { return t.ch }
func (t *instantTimer) Stop()               {}

func newTestExecutor(timer *instantTimer) *Executor {
	e := NewExecutor(60*time.Second, 60*time.Second, 0, log.New(io.Discard))
	e.timer = timer
	return e
}

func rateLimitErr() error {
	return &apiError{status: 403, message: "You have exceeded a secondary rate limit"}
}

func TestDoRetriesSecondaryRateLimit(t *testing.T) {
	timer := &instantTimer{}
	e := newTestExecutor(timer)

	calls := 0
	err := e.Do("create issue", func() error {
		calls++
		if calls == 1 {
			return rateLimitErr()
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	require.Len(t, timer.waits, 1)
	assert.Equal(t, 60*time.Second, timer.waits[0])
}

func TestDoWaitsGrowLinearly(t *testing.T) {
	timer := &instantTimer{}
	e := newTestExecutor(timer)

	calls := 0
	err := e.Do("create issue", func() error {
		calls++
		if calls <= 3 {
			return rateLimitErr()
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, []time.Duration{60 * time.Second, 120 * time.Second, 180 * time.Second}, timer.waits)
}

func TestDoDoesNotRetryOtherErrors(t *testing.T) {
	timer := &instantTimer{}
	e := newTestExecutor(timer)

	boom := &apiError{status: 422, message: "Validation Failed"}
	calls := 0
	err := e.Do("create issue", func() error {
		calls++
		return boom
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, error(boom))
	assert.Equal(t, 1, calls)
	assert.Empty(t, timer.waits)
}

func TestDoDoesNotRetryPlainErrors(t *testing.T) {
	timer := &instantTimer{}
	e := newTestExecutor(timer)

	calls := 0
	err := e.Do("create issue", func() error {
		calls++
		return fmt.Errorf("connection reset")
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestDoAttemptCeiling(t *testing.T) {
	timer := &instantTimer{}
	e := NewExecutor(60*time.Second, 60*time.Second, 2, log.New(io.Discard))
	e.timer = timer

	calls := 0
	err := e.Do("create issue", func() error {
		calls++
		return rateLimitErr()
	})

	require.Error(t, err)
	assert.Equal(t, 3, calls) // first attempt + 2 retries
}

func TestIsSecondaryRateLimit(t *testing.T) {
	assert.True(t, IsSecondaryRateLimit(rateLimitErr()))
	assert.True(t, IsSecondaryRateLimit(fmt.Errorf("create issue: %w", rateLimitErr())))

	assert.False(t, IsSecondaryRateLimit(nil))
	assert.False(t, IsSecondaryRateLimit(errors.New("secondary rate limit")))
	assert.False(t, IsSecondaryRateLimit(&apiError{status: 403, message: "Forbidden"}))
	assert.False(t, IsSecondaryRateLimit(&apiError{status: 429, message: "secondary rate limit"}))
}
