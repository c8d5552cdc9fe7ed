// Package transport carries live-view messages between the browser and the
// server over WebSocket.
package transport

import (
	"encoding/json"
	"errors"
	"sync"
	"time"
)

// Common transport errors.
var (
	ErrNotConnected     = errors.New("transport not connected")
	ErrTransportClosed  = errors.New("transport closed")
	ErrSendTimeout      = errors.New("send timeout")
	ErrTransportFull    = errors.New("transport buffer full")
	ErrOriginNotAllowed = errors.New("origin not allowed")
)

// Message is one frame on the wire.
type Message struct {
	// Ref correlates a reply with its request.
	Ref string `json:"ref,omitempty"`

	Topic   string         `json:"topic"`
	Event   string         `json:"event"`
	Payload map[string]any `json:"payload,omitempty"`

	Timestamp time.Time `json:"ts,omitempty"`
}

// NewMessage creates a timestamped message.
func NewMessage(topic, event string, payload map[string]any) Message {
	return Message{
		Topic:     topic,
		Event:     event,
		Payload:   payload,
		Timestamp: time.Now(),
	}
}

// WithRef adds a reference to the message.
func (m Message) WithRef(ref string) Message {
	m.Ref = ref
	return m
}

// Marshal serializes the message to JSON.
func (m Message) Marshal() ([]byte, error) {
	return json.Marshal(m)
}

// Unmarshal deserializes a message from JSON.
func Unmarshal(data []byte) (Message, error) {
	var m Message
	err := json.Unmarshal(data, &m)
	return m, err
}

// Config holds transport timeouts and buffer sizes.
type Config struct {
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// PingInterval is how often a keepalive ping is sent.
	PingInterval time.Duration

	MaxMessageSize    int64
	SendBufferSize    int
	ReceiveBufferSize int

	// AllowedOrigins lists cross-origin pages allowed to connect. Same-origin
	// requests are always accepted; "*" accepts any origin.
	AllowedOrigins []string
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      10 * time.Second,
		PingInterval:      30 * time.Second,
		MaxMessageSize:    512 * 1024,
		SendBufferSize:    256,
		ReceiveBufferSize: 256,
	}
}

// base holds the channel plumbing shared by transports.
type base struct {
	config    *Config
	connected bool
	sendCh    chan Message
	recvCh    chan Message
	closeCh   chan struct{}
	closeOnce sync.Once
	mu        sync.RWMutex
}

func newBase(config *Config) *base {
	if config == nil {
		config = DefaultConfig()
	}
	return &base{
		config:  config,
		sendCh:  make(chan Message, config.SendBufferSize),
		recvCh:  make(chan Message, config.ReceiveBufferSize),
		closeCh: make(chan struct{}),
	}
}

// IsConnected returns the connection status.
func (b *base) IsConnected() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.connected
}

func (b *base) setConnected(connected bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.connected = connected
}

// Receive returns the channel of inbound messages.
func (b *base) Receive() <-chan Message {
	return b.recvCh
}

// CloseChan is closed when the transport shuts down.
func (b *base) CloseChan() <-chan struct{} {
	return b.closeCh
}

func (b *base) close() {
	b.closeOnce.Do(func() {
		b.setConnected(false)
		close(b.closeCh)
	})
}
