package router

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gabrielmiguelok/sitewizard/pkg/core"
	"github.com/gabrielmiguelok/sitewizard/pkg/transport"
)

// ErrTooManySessions is returned when the session limit is reached.
var ErrTooManySessions = errors.New("too many live sessions")

// liveConn is the transport side of a live session.
type liveConn interface {
	Send(msg transport.Message) error
	Receive() <-chan transport.Message
	CloseChan() <-chan struct{}
	Close() error
	IsConnected() bool
}

// LiveSession binds a component to one live connection.
type LiveSession struct {
	ID       string
	SocketID string

	Component core.Component
	Socket    *core.Socket
	Params    core.Params
	Session   core.Session

	CreatedAt time.Time

	conn    liveConn
	joinRef string
	mounted bool
	version uint64

	slotHashes map[string]uint64

	mu sync.RWMutex
}

// SetMounted marks the component as mounted.
func (s *LiveSession) SetMounted(mounted bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mounted = mounted
}

// IsMounted reports whether the component has been mounted.
func (s *LiveSession) IsMounted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mounted
}

// SetJoinRef records the client's join reference.
func (s *LiveSession) SetJoinRef(ref string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.joinRef = ref
}

// JoinRef returns the client's join reference.
func (s *LiveSession) JoinRef() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.joinRef
}

// NextVersion returns the next diff version.
func (s *LiveSession) NextVersion() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.version++
	return s.version
}

// GetSlotHashes returns the slot hashes of the last render.
func (s *LiveSession) GetSlotHashes() map[string]uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.slotHashes
}

// SetSlotHashes stores the slot hashes of the last render.
func (s *LiveSession) SetSlotHashes(hashes map[string]uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slotHashes = hashes
}

// SessionManager tracks the live sessions of a router.
type SessionManager struct {
	sessions    map[string]*LiveSession
	bySocket    map[string]*LiveSession
	maxSessions int

	mu sync.RWMutex
}

// NewSessionManager creates a manager. maxSessions of zero means no limit.
func NewSessionManager(maxSessions int) *SessionManager {
	return &SessionManager{
		sessions:    make(map[string]*LiveSession),
		bySocket:    make(map[string]*LiveSession),
		maxSessions: maxSessions,
	}
}

// Create registers a new session for socket.
func (m *SessionManager) Create(socket *core.Socket, conn liveConn, comp core.Component, params core.Params, session core.Session) (*LiveSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.maxSessions > 0 && len(m.sessions) >= m.maxSessions {
		return nil, ErrTooManySessions
	}

	s := &LiveSession{
		ID:        uuid.NewString(),
		SocketID:  socket.ID(),
		Component: comp,
		Socket:    socket,
		Params:    params,
		Session:   session,
		CreatedAt: time.Now(),
		conn:      conn,
	}
	m.sessions[s.ID] = s
	m.bySocket[s.SocketID] = s
	return s, nil
}

// Get returns a session by ID.
func (m *SessionManager) Get(id string) (*LiveSession, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// GetBySocket returns a session by socket ID.
func (m *SessionManager) GetBySocket(socketID string) (*LiveSession, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.bySocket[socketID]
	return s, ok
}

// Remove deletes a session.
func (m *SessionManager) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[id]; ok {
		delete(m.bySocket, s.SocketID)
		delete(m.sessions, id)
	}
}

// Count returns the number of live sessions.
func (m *SessionManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

func newSocketID() string {
	return uuid.NewString()
}
