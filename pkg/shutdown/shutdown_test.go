package shutdown

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunOrdersByPriority(t *testing.T) {
	t.Parallel()

	var order []string
	s := New(nil)
	record := func(name string) func(context.Context) error {
		return func(context.Context) error {
			order = append(order, name)
			return nil
		}
	}
	s.Register("store", PriorityStorage, record("store"))
	s.Register("sessions", PriorityConnections, record("sessions"))
	s.Register("http", PriorityServer, record("http"))
	s.Register("sessions-2", PriorityConnections, record("sessions-2"))

	require.NoError(t, s.Run(context.Background()))
	assert.Equal(t, []string{"sessions", "sessions-2", "http", "store"}, order)
}

func TestRunContinuesAfterFailure(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	closed := false
	s := New(nil)
	s.Register("http", PriorityServer, func(context.Context) error { return boom })
	s.RegisterCloser("store", PriorityStorage, func() error {
		closed = true
		return nil
	})

	err := s.Run(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "http: boom")
	assert.True(t, closed)
}

func TestRunOnce(t *testing.T) {
	t.Parallel()

	calls := 0
	s := New(nil)
	s.Register("x", 0, func(context.Context) error {
		calls++
		return nil
	})
	require.NoError(t, s.Run(context.Background()))
	assert.ErrorIs(t, s.Run(context.Background()), ErrAlreadyRun)
	assert.Equal(t, 1, calls)
}

func TestRunPassesContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := New(nil)
	s.Register("waits", 0, func(ctx context.Context) error { return ctx.Err() })
	assert.ErrorIs(t, s.Run(ctx), context.Canceled)
}
