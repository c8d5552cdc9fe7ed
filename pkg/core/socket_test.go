package core

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockTransport implements Transport for testing.
type MockTransport struct {
	connected bool
	failWith  error
	messages  []Message
	mu        sync.Mutex
}

func NewMockTransport() *MockTransport {
	return &MockTransport{connected: true}
}

func (m *MockTransport) Send(msg Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.connected {
		return ErrSocketClosed
	}
	if m.failWith != nil {
		return m.failWith
	}
	m.messages = append(m.messages, msg)
	return nil
}

func (m *MockTransport) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connected = false
	return nil
}

func (m *MockTransport) IsConnected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connected
}

func (m *MockTransport) Messages() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]Message, len(m.messages))
	copy(result, m.messages)
	return result
}

func TestNewSocket(t *testing.T) {
	socket := NewSocket("test-id", NewMockTransport())

	assert.Equal(t, "test-id", socket.ID())
	assert.Equal(t, "lv:test-id", socket.Topic())
	assert.True(t, socket.IsConnected())
	assert.WithinDuration(t, time.Now(), socket.LastActivity(), time.Second)
}

func TestSocket_Send(t *testing.T) {
	transport := NewMockTransport()
	socket := NewSocket("test-id", transport)

	require.NoError(t, socket.Push("test-event", map[string]any{"key": "value"}))

	messages := transport.Messages()
	require.Len(t, messages, 1)
	assert.Equal(t, "test-event", messages[0].Event)
	assert.Equal(t, "lv:test-id", messages[0].Topic)
	assert.Equal(t, "value", messages[0].Payload["key"])
}

func TestSocket_Send_Closed(t *testing.T) {
	socket := NewSocket("test-id", NewMockTransport())
	require.NoError(t, socket.Close())

	assert.ErrorIs(t, socket.Send(Message{Event: "test"}), ErrSocketClosed)
	assert.False(t, socket.IsConnected())
}

func TestSocket_Send_TransportError(t *testing.T) {
	transport := NewMockTransport()
	transport.failWith = errors.New("boom")
	socket := NewSocket("test-id", transport)

	assert.ErrorIs(t, socket.Send(Message{Event: "test"}), ErrSendFailed)
}

func TestSocket_Send_Concurrent(t *testing.T) {
	transport := NewMockTransport()
	socket := NewSocket("test-id", transport)

	const goroutines = 20
	const perGoroutine = 50

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				_ = socket.Push("tick", nil)
			}
		}()
	}
	wg.Wait()

	assert.Len(t, transport.Messages(), goroutines*perGoroutine)
}

func TestSocket_UpdateActivity(t *testing.T) {
	socket := NewSocket("test-id", NewMockTransport())
	before := socket.LastActivity()

	time.Sleep(5 * time.Millisecond)
	socket.UpdateActivity()

	assert.True(t, socket.LastActivity().After(before))
}

func TestSocket_Dispatch(t *testing.T) {
	socket := NewSocket("test-id", NewMockTransport())

	require.NoError(t, socket.Dispatch("first"))
	require.NoError(t, socket.Dispatch(42))

	assert.Equal(t, "first", <-socket.Mailbox())
	assert.Equal(t, 42, <-socket.Mailbox())
}

func TestSocket_Dispatch_Full(t *testing.T) {
	socket := NewSocket("test-id", NewMockTransport())
	for i := 0; i < MailboxSize; i++ {
		require.NoError(t, socket.Dispatch(i))
	}

	assert.ErrorIs(t, socket.Dispatch("overflow"), ErrMailboxFull)
}

func TestSocket_Dispatch_Closed(t *testing.T) {
	socket := NewSocket("test-id", NewMockTransport())
	require.NoError(t, socket.Close())

	assert.ErrorIs(t, socket.Dispatch("late"), ErrSocketClosed)
}

func TestBaseComponent_Post(t *testing.T) {
	var c BaseComponent
	assert.False(t, c.Post("no socket"))

	socket := NewSocket("test-id", NewMockTransport())
	c.SetSocket(socket)
	assert.True(t, c.Post("hello"))
	assert.Equal(t, "hello", <-socket.Mailbox())
}

func TestSocket_SendDiff(t *testing.T) {
	transport := NewMockTransport()
	socket := NewSocket("test-id", transport)

	require.NoError(t, socket.SendDiff(nil))
	require.NoError(t, socket.SendDiff(&DiffPayload{Version: 1}))
	assert.Empty(t, transport.Messages(), "empty diffs are not sent")

	require.NoError(t, socket.SendDiff(&DiffPayload{
		Version:   2,
		HTMLSlots: map[string]string{"step": "<p>Hi</p>"},
	}))

	messages := transport.Messages()
	require.Len(t, messages, 1)
	assert.Equal(t, "diff", messages[0].Event)
	assert.Equal(t, uint64(2), messages[0].Payload["v"])
	assert.Equal(t, map[string]string{"step": "<p>Hi</p>"}, messages[0].Payload["h"])
}

func TestDiffPayload(t *testing.T) {
	assert.True(t, (&DiffPayload{}).IsEmpty())
	assert.False(t, (&DiffPayload{Full: "<div></div>"}).IsEmpty())
	assert.False(t, (&DiffPayload{Slots: map[string]string{"a": "b"}}).IsEmpty())

	d := &DiffPayload{
		Full:      "12345",
		Slots:     map[string]string{"a": "123"},
		HTMLSlots: map[string]string{"b": "12"},
	}
	assert.Equal(t, 10, d.Size())
}

func TestSocket_Metadata(t *testing.T) {
	socket := NewSocket("test-id", NewMockTransport())

	assert.Nil(t, socket.GetMetadata("lang"))
	socket.SetMetadata("lang", "ar")
	assert.Equal(t, "ar", socket.GetMetadata("lang"))
}

func TestSocketManager_Add_Remove(t *testing.T) {
	sm := NewSocketManager()
	s1 := NewSocket("s1", NewMockTransport())
	s2 := NewSocket("s2", NewMockTransport())

	assert.True(t, sm.Add(s1))
	assert.True(t, sm.Add(s2))
	assert.Equal(t, 2, sm.Count())

	got, ok := sm.Get("s1")
	require.True(t, ok)
	assert.Same(t, s1, got)

	sm.Remove("s1")
	assert.Equal(t, 1, sm.Count())
	_, ok = sm.Get("s1")
	assert.False(t, ok)
}

func TestSocketManager_Shutdown(t *testing.T) {
	sm := NewSocketManager()
	t1 := NewMockTransport()
	t2 := NewMockTransport()
	sm.Add(NewSocket("s1", t1))
	sm.Add(NewSocket("s2", t2))

	require.NoError(t, sm.Shutdown(context.Background()))

	assert.True(t, sm.IsShutdown())
	assert.Equal(t, 0, sm.Count())
	assert.False(t, t1.IsConnected())
	assert.False(t, t2.IsConnected())
	assert.False(t, sm.Add(NewSocket("s3", NewMockTransport())), "no sockets after shutdown")
}

func TestSocketManager_Shutdown_ContextDone(t *testing.T) {
	sm := NewSocketManager()
	sm.Add(NewSocket("s1", NewMockTransport()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, sm.Shutdown(ctx), context.Canceled)
}
