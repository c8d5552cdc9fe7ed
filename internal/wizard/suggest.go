package wizard

import (
	"context"
	"sync"
	"time"
	"unicode/utf8"
)

// Suggestion defaults.
const (
	DefaultSuggestDelay   = 600 * time.Millisecond
	DefaultMinQueryLength = 2
)

// Debouncer runs only the last function triggered within its delay.
type Debouncer struct {
	delay time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

// NewDebouncer creates a debouncer with the given delay.
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Trigger cancels any pending function and schedules fn.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Stop cancels the pending function, if any.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Suggestions is the outcome of one fired query.
type Suggestions struct {
	Query  string
	Topics []string
}

// SuggesterConfig tunes a Suggester.
type SuggesterConfig struct {
	Delay          time.Duration
	MinQueryLength int
	// Timeout bounds one prediction request. Zero means no extra bound.
	Timeout time.Duration
}

// Suggester turns keystrokes in the topic field into at most one topic
// prediction per pause in typing. Results of superseded requests are
// discarded.
type Suggester struct {
	predict  func(ctx context.Context, query string) []string
	deliver  func(Suggestions)
	debounce *Debouncer
	minLen   int
	timeout  time.Duration

	mu      sync.Mutex
	seq     uint64
	busy    bool
	current []string
}

// NewSuggester creates a suggester. predict performs the lookup and deliver
// receives results that are still current; deliver is called from a timer
// goroutine.
func NewSuggester(cfg SuggesterConfig, predict func(ctx context.Context, query string) []string, deliver func(Suggestions)) *Suggester {
	if cfg.Delay <= 0 {
		cfg.Delay = DefaultSuggestDelay
	}
	if cfg.MinQueryLength <= 0 {
		cfg.MinQueryLength = DefaultMinQueryLength
	}
	return &Suggester{
		predict:  predict,
		deliver:  deliver,
		debounce: NewDebouncer(cfg.Delay),
		minLen:   cfg.MinQueryLength,
		timeout:  cfg.Timeout,
	}
}

// Query records the latest field value. Short queries clear the
// suggestions without a request; longer ones schedule a request once
// typing pauses.
func (s *Suggester) Query(q string) {
	s.mu.Lock()
	s.seq++
	seq := s.seq

	if utf8.RuneCountInString(q) <= s.minLen {
		s.busy = false
		s.current = nil
		s.mu.Unlock()
		s.debounce.Stop()
		return
	}

	s.busy = true
	s.mu.Unlock()

	s.debounce.Trigger(func() { s.fire(seq, q) })
}

func (s *Suggester) fire(seq uint64, q string) {
	ctx := context.Background()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	topics := s.predict(ctx, q)
	if topics == nil {
		topics = []string{}
	}

	s.mu.Lock()
	if seq != s.seq {
		s.mu.Unlock()
		return
	}
	s.busy = false
	s.current = topics
	s.mu.Unlock()

	if s.deliver != nil {
		s.deliver(Suggestions{Query: q, Topics: topics})
	}
}

// Busy reports whether a request is pending or in flight.
func (s *Suggester) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// Current returns the latest delivered suggestions.
func (s *Suggester) Current() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.current...)
}

// Stop cancels any pending request and invalidates one in flight.
func (s *Suggester) Stop() {
	s.mu.Lock()
	s.seq++
	s.busy = false
	s.mu.Unlock()
	s.debounce.Stop()
}
