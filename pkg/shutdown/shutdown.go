// Package shutdown runs named teardown hooks in priority order.
package shutdown

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/gabrielmiguelok/sitewizard/pkg/logging"
)

// ErrAlreadyRun is returned when Run is called twice.
var ErrAlreadyRun = errors.New("shutdown: already run")

// Hook priorities used by the server. Lower runs first.
const (
	PriorityConnections = 10
	PriorityServer      = 20
	PriorityStorage     = 30
)

type hook struct {
	name     string
	priority int
	seq      int
	fn       func(ctx context.Context) error
}

// Sequence collects teardown hooks.
type Sequence struct {
	logger logging.Logger

	mu    sync.Mutex
	hooks []hook
	ran   bool
}

// New creates an empty sequence. A nil logger discards output.
func New(logger logging.Logger) *Sequence {
	if logger == nil {
		logger = logging.NopLogger{}
	}
	return &Sequence{logger: logger}
}

// Register adds fn under name. Hooks with equal priority run in
// registration order.
func (s *Sequence) Register(name string, priority int, fn func(ctx context.Context) error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks = append(s.hooks, hook{name: name, priority: priority, seq: len(s.hooks), fn: fn})
}

// RegisterCloser adds a hook for a resource whose Close takes no context.
func (s *Sequence) RegisterCloser(name string, priority int, close func() error) {
	s.Register(name, priority, func(context.Context) error { return close() })
}

// Run executes every hook once, in order, even when earlier hooks fail.
// The returned error joins every hook failure.
func (s *Sequence) Run(ctx context.Context) error {
	s.mu.Lock()
	if s.ran {
		s.mu.Unlock()
		return ErrAlreadyRun
	}
	s.ran = true
	hooks := append([]hook(nil), s.hooks...)
	s.mu.Unlock()

	sort.Slice(hooks, func(i, j int) bool {
		if hooks[i].priority != hooks[j].priority {
			return hooks[i].priority < hooks[j].priority
		}
		return hooks[i].seq < hooks[j].seq
	})

	var errs []error
	for _, h := range hooks {
		start := time.Now()
		err := h.fn(ctx)
		fields := []logging.Field{logging.String("hook", h.name), logging.Duration("duration", time.Since(start))}
		if err != nil {
			s.logger.Warn("shutdown hook failed", append(fields, logging.Err(err))...)
			errs = append(errs, fmt.Errorf("%s: %w", h.name, err))
			continue
		}
		s.logger.Debug("shutdown hook done", fields...)
	}
	return errors.Join(errs...)
}
