package testing

import (
	"sync"

	"github.com/google/uuid"

	"github.com/gabrielmiguelok/sitewizard/pkg/core"
)

// MockSocket implements core.Transport and records what was sent.
type MockSocket struct {
	ID string

	mu          sync.Mutex
	connected   bool
	sent        []core.Message
	errorToSend error
}

// NewMockSocket creates a connected mock transport.
func NewMockSocket() *MockSocket {
	return &MockSocket{
		ID:        "test-socket-" + uuid.NewString()[:8],
		connected: true,
	}
}

// Send records a sent message.
func (ms *MockSocket) Send(msg core.Message) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if ms.errorToSend != nil {
		return ms.errorToSend
	}
	if !ms.connected {
		return core.ErrSocketClosed
	}
	ms.sent = append(ms.sent, msg)
	return nil
}

// Close marks the transport as closed.
func (ms *MockSocket) Close() error {
	ms.mu.Lock()
	ms.connected = false
	ms.mu.Unlock()
	return nil
}

// IsConnected returns the connection status.
func (ms *MockSocket) IsConnected() bool {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return ms.connected
}

// LastSent returns the last sent message.
func (ms *MockSocket) LastSent() core.Message {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if len(ms.sent) == 0 {
		return core.Message{}
	}
	return ms.sent[len(ms.sent)-1]
}

// SentCount returns the number of sent messages.
func (ms *MockSocket) SentCount() int {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return len(ms.sent)
}

// SentMessages returns a copy of all sent messages.
func (ms *MockSocket) SentMessages() []core.Message {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return append([]core.Message(nil), ms.sent...)
}

// SentEvent reports whether a message with the given event was sent.
func (ms *MockSocket) SentEvent(event string) bool {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	for _, msg := range ms.sent {
		if msg.Event == event {
			return true
		}
	}
	return false
}

// SetError makes every Send fail with err until cleared with nil.
func (ms *MockSocket) SetError(err error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.errorToSend = err
}

// Reset clears recorded messages and reconnects.
func (ms *MockSocket) Reset() {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.sent = nil
	ms.connected = true
	ms.errorToSend = nil
}
