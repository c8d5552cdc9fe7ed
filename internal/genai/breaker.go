package genai

import (
	"errors"
	"sync/atomic"
	"time"
)

// ErrCircuitOpen is returned when the backend is being skipped after
// repeated failures.
var ErrCircuitOpen = errors.New("generation circuit is open")

// CircuitState represents the state of a Breaker.
type CircuitState int32

const (
	// CircuitClosed lets every call through.
	CircuitClosed CircuitState = iota
	// CircuitOpen skips the backend until the reset timeout passes.
	CircuitOpen
	// CircuitHalfOpen lets one trial call through at a time.
	CircuitHalfOpen
)

func (s CircuitState) String() string {
	switch s {
	case CircuitClosed:
		return "closed"
	case CircuitOpen:
		return "open"
	case CircuitHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// BreakerConfig configures a Breaker.
type BreakerConfig struct {
	// MaxErrors is the number of consecutive failures that opens the circuit.
	MaxErrors int

	// ResetTimeout is how long the circuit stays open.
	ResetTimeout time.Duration

	// SuccessThreshold is the number of half-open successes that close it.
	SuccessThreshold int

	// OnStateChange is called when the circuit state changes.
	OnStateChange func(from, to CircuitState)
}

// DefaultBreakerConfig returns sensible defaults.
func DefaultBreakerConfig() *BreakerConfig {
	return &BreakerConfig{
		MaxErrors:        5,
		ResetTimeout:     30 * time.Second,
		SuccessThreshold: 2,
	}
}

// Breaker stops a Service from waiting on a backend that keeps failing.
// While open, calls fall back immediately.
type Breaker struct {
	config *BreakerConfig

	state        atomic.Int32
	errorCount   atomic.Int32
	successCount atomic.Int32
	lastError    atomic.Int64 // Unix nanoseconds
	trial        atomic.Bool  // a half-open call is in flight

	now func() time.Time
}

// NewBreaker creates a closed breaker.
func NewBreaker(config *BreakerConfig) *Breaker {
	if config == nil {
		config = DefaultBreakerConfig()
	}
	b := &Breaker{config: config, now: time.Now}
	b.state.Store(int32(CircuitClosed))
	return b
}

// State returns the current circuit state.
func (b *Breaker) State() CircuitState {
	return CircuitState(b.state.Load())
}

// Allow returns nil if a call may go to the backend. Once the reset timeout
// has passed, a single trial call is admitted; the rest get ErrCircuitOpen
// until its outcome is recorded.
func (b *Breaker) Allow() error {
	switch b.State() {
	case CircuitOpen:
		lastErr := time.Unix(0, b.lastError.Load())
		if b.now().Sub(lastErr) <= b.config.ResetTimeout {
			return ErrCircuitOpen
		}
		if !b.trial.CompareAndSwap(false, true) {
			return ErrCircuitOpen
		}
		b.setState(CircuitHalfOpen)
		return nil
	case CircuitHalfOpen:
		if !b.trial.CompareAndSwap(false, true) {
			return ErrCircuitOpen
		}
		return nil
	default:
		return nil
	}
}

// RecordSuccess records a successful call.
func (b *Breaker) RecordSuccess() {
	switch b.State() {
	case CircuitHalfOpen:
		if int(b.successCount.Add(1)) >= b.config.SuccessThreshold {
			b.setState(CircuitClosed)
			b.successCount.Store(0)
			b.errorCount.Store(0)
		}
		b.trial.Store(false)
	default:
		b.errorCount.Store(0)
	}
}

// RecordError records a failed call.
func (b *Breaker) RecordError() {
	b.lastError.Store(b.now().UnixNano())

	switch b.State() {
	case CircuitClosed:
		if int(b.errorCount.Add(1)) >= b.config.MaxErrors {
			b.setState(CircuitOpen)
		}
	case CircuitHalfOpen:
		b.setState(CircuitOpen)
		b.successCount.Store(0)
		b.trial.Store(false)
	}
}

// Reset closes the circuit.
func (b *Breaker) Reset() {
	b.setState(CircuitClosed)
	b.errorCount.Store(0)
	b.successCount.Store(0)
	b.trial.Store(false)
}

func (b *Breaker) setState(newState CircuitState) {
	oldState := CircuitState(b.state.Swap(int32(newState)))
	if b.config.OnStateChange != nil && oldState != newState {
		b.config.OnStateChange(oldState, newState)
	}
}
