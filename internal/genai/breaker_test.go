package genai

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gabrielmiguelok/sitewizard/internal/locale"
)

func TestBreakerTransitions(t *testing.T) {
	var transitions []string
	b := NewBreaker(&BreakerConfig{
		MaxErrors:        2,
		ResetTimeout:     time.Minute,
		SuccessThreshold: 1,
		OnStateChange: func(from, to CircuitState) {
			transitions = append(transitions, from.String()+">"+to.String())
		},
	})
	now := time.Unix(1000, 0)
	b.now = func() time.Time { return now }

	require.NoError(t, b.Allow())
	b.RecordError()
	assert.Equal(t, CircuitClosed, b.State())
	b.RecordError()
	assert.Equal(t, CircuitOpen, b.State())
	assert.ErrorIs(t, b.Allow(), ErrCircuitOpen)

	now = now.Add(2 * time.Minute)
	require.NoError(t, b.Allow())
	assert.Equal(t, CircuitHalfOpen, b.State())

	b.RecordSuccess()
	assert.Equal(t, CircuitClosed, b.State())

	assert.Equal(t, []string{"closed>open", "open>half-open", "half-open>closed"}, transitions)
}

func TestBreakerHalfOpenFailureReopens(t *testing.T) {
	b := NewBreaker(&BreakerConfig{MaxErrors: 1, ResetTimeout: time.Second, SuccessThreshold: 2})
	now := time.Unix(1000, 0)
	b.now = func() time.Time { return now }

	b.RecordError()
	now = now.Add(2 * time.Second)
	require.NoError(t, b.Allow())

	b.RecordError()
	assert.Equal(t, CircuitOpen, b.State())

	b.Reset()
	assert.Equal(t, CircuitClosed, b.State())
}

func TestBreakerAdmitsOneTrialAtATime(t *testing.T) {
	t.Parallel()
	b := NewBreaker(&BreakerConfig{MaxErrors: 1, ResetTimeout: time.Second, SuccessThreshold: 2})
	now := time.Unix(1000, 0)
	b.now = func() time.Time { return now }

	b.RecordError()
	now = now.Add(2 * time.Second)

	require.NoError(t, b.Allow())
	assert.ErrorIs(t, b.Allow(), ErrCircuitOpen, "second caller while the trial is in flight")

	b.RecordSuccess()
	assert.Equal(t, CircuitHalfOpen, b.State())
	require.NoError(t, b.Allow(), "next trial after the first one reported")
	assert.ErrorIs(t, b.Allow(), ErrCircuitOpen)

	b.RecordSuccess()
	assert.Equal(t, CircuitClosed, b.State())
	require.NoError(t, b.Allow())
	require.NoError(t, b.Allow())
}

func TestBreakerConcurrentTrialAdmission(t *testing.T) {
	t.Parallel()
	b := NewBreaker(&BreakerConfig{MaxErrors: 1, ResetTimeout: time.Second, SuccessThreshold: 1})
	now := time.Unix(1000, 0)
	b.now = func() time.Time { return now }
	b.RecordError()
	now = now.Add(2 * time.Second)

	var admitted atomic.Int32
	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if b.Allow() == nil {
				admitted.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), admitted.Load())
	assert.Equal(t, CircuitHalfOpen, b.State())
}

func TestSuccessResetsErrorCount(t *testing.T) {
	b := NewBreaker(&BreakerConfig{MaxErrors: 2, ResetTimeout: time.Minute, SuccessThreshold: 1})

	b.RecordError()
	b.RecordSuccess()
	b.RecordError()

	assert.Equal(t, CircuitClosed, b.State())
}

func TestServiceSkipsBackendWhileOpen(t *testing.T) {
	m := &fakeModel{err: errors.New("unavailable")}
	b := NewBreaker(&BreakerConfig{MaxErrors: 1, ResetTimeout: time.Hour, SuccessThreshold: 1})
	s := NewService(m, WithBreaker(b))
	ctx := context.Background()

	assert.Equal(t, "Untitled Site", s.GenerateNameSuggestion(ctx, "photo", locale.EN))
	assert.Equal(t, CircuitOpen, b.State())

	assert.Equal(t, "Untitled Site", s.GenerateNameSuggestion(ctx, "photo", locale.EN))
	assert.Nil(t, s.GenerateTailoredContent(ctx, "photo", "Lumen", locale.EN))

	m.mu.Lock()
	defer m.mu.Unlock()
	assert.Len(t, m.prompts, 1, "open circuit must not reach the model")
}
