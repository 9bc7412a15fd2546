package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var errRedisDown = errors.New("redis: connection refused")

func TestCircuitBreaker_StaysClosedOnSuccess(t *testing.T) {
	cb := NewCircuitBreaker("test-closed", Config{ReadyToTrip: ConsecutiveFailures(3)})

	for i := 0; i < 10; i++ {
		assert.NoError(t, cb.Execute(func() error { return nil }))
	}
	assert.Equal(t, StateClosed, cb.State())
	assert.Equal(t, uint32(10), cb.Counts().TotalSuccesses)
}

func TestCircuitBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	cb := NewCircuitBreaker("test-open", Config{
		Timeout:     time.Minute,
		ReadyToTrip: ConsecutiveFailures(3),
	})

	for i := 0; i < 3; i++ {
		assert.ErrorIs(t, cb.Execute(func() error { return errRedisDown }), errRedisDown)
	}
	assert.Equal(t, StateOpen, cb.State())

	called := false
	err := cb.Execute(func() error { called = true; return nil })
	assert.ErrorIs(t, err, ErrOpenState)
	assert.False(t, called)
}

func TestCircuitBreaker_HalfOpenRecovery(t *testing.T) {
	cb := NewCircuitBreaker("test-half-open", Config{
		MaxRequests: 1,
		Timeout:     20 * time.Millisecond,
		ReadyToTrip: ConsecutiveFailures(1),
	})

	_ = cb.Execute(func() error { return errRedisDown })
	assert.Equal(t, StateOpen, cb.State())

	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, StateHalfOpen, cb.State())

	assert.NoError(t, cb.Execute(func() error { return nil }))
	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	cb := NewCircuitBreaker("test-reopen", Config{
		Timeout:     20 * time.Millisecond,
		ReadyToTrip: ConsecutiveFailures(1),
	})

	_ = cb.Execute(func() error { return errRedisDown })
	time.Sleep(30 * time.Millisecond)

	_ = cb.Execute(func() error { return errRedisDown })
	assert.Equal(t, StateOpen, cb.State())
}

func TestCircuitBreaker_IntervalResetsCounts(t *testing.T) {
	cb := NewCircuitBreaker("test-interval", Config{
		Interval:    20 * time.Millisecond,
		ReadyToTrip: ConsecutiveFailures(2),
	})

	_ = cb.Execute(func() error { return errRedisDown })
	time.Sleep(30 * time.Millisecond)
	_ = cb.Execute(func() error { return errRedisDown })

	assert.Equal(t, StateClosed, cb.State())
	assert.Equal(t, uint32(1), cb.Counts().ConsecutiveFailures)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "CLOSED", StateClosed.String())
	assert.Equal(t, "OPEN", StateOpen.String())
	assert.Equal(t, "HALF_OPEN", StateHalfOpen.String())
	assert.Equal(t, "UNKNOWN", State(9).String())
}
