package core

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// Common socket errors.
var (
	ErrSocketClosed = errors.New("socket is closed")
	ErrSendFailed   = errors.New("failed to send message")
	ErrMailboxFull  = errors.New("socket mailbox is full")
)

// MailboxSize is the number of undelivered info messages a socket buffers.
const MailboxSize = 64

// Transport is the connection a socket writes to.
type Transport interface {
	Send(msg Message) error
	Close() error
	IsConnected() bool
}

// Message is an outbound frame.
type Message struct {
	Ref     string         `json:"ref,omitempty"`
	Topic   string         `json:"topic"`
	Event   string         `json:"event"`
	Payload map[string]any `json:"payload,omitempty"`
}

// Socket is one browser connection. Besides sending frames it owns the
// component's mailbox: messages posted with Dispatch are handed to
// HandleInfo on the connection's loop goroutine, so background work never
// touches component state concurrently with an event.
type Socket struct {
	id          string
	connected   bool
	connectedAt time.Time

	lastActivity atomic.Int64

	transport Transport
	mailbox   chan any
	metadata  map[string]any

	mu sync.RWMutex
}

// NewSocket creates a connected socket.
func NewSocket(id string, transport Transport) *Socket {
	now := time.Now()
	s := &Socket{
		id:          id,
		connected:   true,
		connectedAt: now,
		transport:   transport,
		mailbox:     make(chan any, MailboxSize),
		metadata:    make(map[string]any),
	}
	s.lastActivity.Store(now.UnixNano())
	return s
}

// ID returns the socket's unique identifier.
func (s *Socket) ID() string {
	return s.id
}

// Topic returns the channel topic of this socket.
func (s *Socket) Topic() string {
	return "lv:" + s.id
}

// IsConnected returns true if the socket is connected.
func (s *Socket) IsConnected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.connected && s.transport != nil && s.transport.IsConnected()
}

// ConnectedAt returns when the socket connected.
func (s *Socket) ConnectedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.connectedAt
}

// LastActivity returns the time of last activity.
func (s *Socket) LastActivity() time.Time {
	return time.Unix(0, s.lastActivity.Load())
}

// UpdateActivity updates the last activity timestamp.
func (s *Socket) UpdateActivity() {
	s.lastActivity.Store(time.Now().UnixNano())
}

// Send sends a message to the client.
func (s *Socket) Send(msg Message) error {
	s.mu.RLock()
	connected := s.connected
	transport := s.transport
	s.mu.RUnlock()

	if !connected || transport == nil || !transport.IsConnected() {
		return ErrSocketClosed
	}

	s.lastActivity.Store(time.Now().UnixNano())

	if err := transport.Send(msg); err != nil {
		s.mu.RLock()
		stillConnected := s.connected
		s.mu.RUnlock()
		if !stillConnected {
			return ErrSocketClosed
		}
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	return nil
}

// Push sends an event on the socket topic.
func (s *Socket) Push(event string, payload map[string]any) error {
	return s.Send(Message{
		Topic:   s.Topic(),
		Event:   event,
		Payload: payload,
	})
}

// Dispatch posts msg to the mailbox without blocking.
func (s *Socket) Dispatch(msg any) error {
	s.mu.RLock()
	connected := s.connected
	s.mu.RUnlock()
	if !connected {
		return ErrSocketClosed
	}

	select {
	case s.mailbox <- msg:
		return nil
	default:
		return ErrMailboxFull
	}
}

// Mailbox returns the channel of posted messages.
func (s *Socket) Mailbox() <-chan any {
	return s.mailbox
}

// DiffPayload is the update sent to the client after a render. Changed
// data-slot regions are sent individually; a render without slots is sent
// whole.
type DiffPayload struct {
	Version   uint64            `json:"v"`
	Slots     map[string]string `json:"s,omitempty"` // text-only slots
	HTMLSlots map[string]string `json:"h,omitempty"` // slots containing markup
	Full      string            `json:"f,omitempty"`
}

// IsEmpty returns true if the payload has no changes.
func (d *DiffPayload) IsEmpty() bool {
	return len(d.Slots) == 0 && len(d.HTMLSlots) == 0 && d.Full == ""
}

// Size returns the total size of the payload in bytes.
func (d *DiffPayload) Size() int {
	size := len(d.Full)
	for _, content := range d.Slots {
		size += len(content)
	}
	for _, content := range d.HTMLSlots {
		size += len(content)
	}
	return size
}

// SendDiff pushes a non-empty diff to the client.
func (s *Socket) SendDiff(payload *DiffPayload) error {
	if payload == nil || payload.IsEmpty() {
		return nil
	}
	return s.Push("diff", map[string]any{
		"v": payload.Version,
		"s": payload.Slots,
		"h": payload.HTMLSlots,
		"f": payload.Full,
	})
}

// GetMetadata retrieves metadata by key.
func (s *Socket) GetMetadata(key string) any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.metadata[key]
}

// SetMetadata stores metadata.
func (s *Socket) SetMetadata(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metadata[key] = value
}

// Close closes the socket connection. Later Dispatch calls fail.
func (s *Socket) Close() error {
	s.mu.Lock()
	s.connected = false
	transport := s.transport
	s.mu.Unlock()

	if transport != nil {
		return transport.Close()
	}
	return nil
}

// SocketManager tracks live sockets so they can be closed on shutdown.
type SocketManager struct {
	sockets    map[string]*Socket
	isShutdown bool
	mu         sync.RWMutex
}

// NewSocketManager creates a new socket manager.
func NewSocketManager() *SocketManager {
	return &SocketManager{
		sockets: make(map[string]*Socket),
	}
}

// Add registers a socket. It returns false once shutdown has started.
func (sm *SocketManager) Add(socket *Socket) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if sm.isShutdown {
		return false
	}
	sm.sockets[socket.ID()] = socket
	return true
}

// Remove unregisters a socket.
func (sm *SocketManager) Remove(id string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	delete(sm.sockets, id)
}

// Get retrieves a socket by ID.
func (sm *SocketManager) Get(id string) (*Socket, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	s, ok := sm.sockets[id]
	return s, ok
}

// Count returns the number of active sockets.
func (sm *SocketManager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sockets)
}

// Shutdown closes every socket and refuses new ones. It returns early
// with ctx's error if ctx ends first.
func (sm *SocketManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	sm.isShutdown = true
	sockets := make([]*Socket, 0, len(sm.sockets))
	for _, s := range sm.sockets {
		sockets = append(sockets, s)
	}
	sm.sockets = make(map[string]*Socket)
	sm.mu.Unlock()

	for _, s := range sockets {
		if err := ctx.Err(); err != nil {
			return err
		}
		_ = s.Close()
	}
	return nil
}

// IsShutdown returns true if the manager is shutting down.
func (sm *SocketManager) IsShutdown() bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.isShutdown
}
