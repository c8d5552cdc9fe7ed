// Package testing drives live components without a browser or WebSocket
// connection. Events go straight to the component, mailbox messages are
// delivered on demand, and every step re-renders.
package testing

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/gabrielmiguelok/sitewizard/pkg/core"
)

// LiveViewTest is a mounted component under test.
type LiveViewTest struct {
	t         testing.TB
	component core.Component
	transport *MockSocket
	socket    *core.Socket
	params    core.Params
	session   core.Session
	ctx       context.Context
	rendered  string
	events    []string
}

// MountOption configures the test mount.
type MountOption func(*LiveViewTest)

// WithParams sets the mount parameters.
func WithParams(params core.Params) MountOption {
	return func(lvt *LiveViewTest) { lvt.params = params }
}

// WithSession sets the mount session.
func WithSession(session core.Session) MountOption {
	return func(lvt *LiveViewTest) { lvt.session = session }
}

// WithContext sets the context passed to every callback.
func WithContext(ctx context.Context) MountOption {
	return func(lvt *LiveViewTest) { lvt.ctx = ctx }
}

// Mount attaches a socket to comp, mounts it and renders once. The
// component is terminated when the test ends.
func Mount(t testing.TB, comp core.Component, opts ...MountOption) *LiveViewTest {
	t.Helper()

	lvt := &LiveViewTest{
		t:         t,
		component: comp,
		transport: NewMockSocket(),
		params:    core.Params{},
		session:   core.Session{},
		ctx:       context.Background(),
	}
	for _, opt := range opts {
		opt(lvt)
	}

	lvt.socket = core.NewSocket(lvt.transport.ID, lvt.transport)
	if setter, ok := comp.(interface{ SetSocket(*core.Socket) }); ok {
		setter.SetSocket(lvt.socket)
	}

	if err := comp.Mount(lvt.ctx, lvt.params, lvt.session); err != nil {
		t.Fatalf("mount %s: %v", comp.Name(), err)
	}
	lvt.render()

	t.Cleanup(func() {
		_ = comp.Terminate(context.Background(), core.TerminateNormal)
		_ = lvt.socket.Close()
	})
	return lvt
}

// Event sends one browser event and re-renders. The handler's error is
// returned; the render happens either way, as in a live session.
func (lvt *LiveViewTest) Event(event string, payload map[string]any) error {
	lvt.t.Helper()
	lvt.events = append(lvt.events, event)
	if payload == nil {
		payload = map[string]any{}
	}
	err := lvt.component.HandleEvent(lvt.ctx, event, payload)
	lvt.render()
	return err
}

// Click sends an lv-click event with its lv-value-* values and fails the
// test if the handler errors.
func (lvt *LiveViewTest) Click(event string, values map[string]string) *LiveViewTest {
	lvt.t.Helper()
	payload := make(map[string]any, len(values))
	for k, v := range values {
		payload[k] = v
	}
	if err := lvt.Event(event, payload); err != nil {
		lvt.t.Errorf("event %q: %v", event, err)
	}
	return lvt
}

// Input sends an lv-input or lv-change event carrying value, plus any
// lv-value-* pairs given as alternating keys and values.
func (lvt *LiveViewTest) Input(event, value string, kv ...string) *LiveViewTest {
	lvt.t.Helper()
	payload := map[string]any{"value": value}
	for i := 0; i+1 < len(kv); i += 2 {
		payload[kv[i]] = kv[i+1]
	}
	if err := lvt.Event(event, payload); err != nil {
		lvt.t.Errorf("event %q: %v", event, err)
	}
	return lvt
}

// SendInfo delivers msg to HandleInfo directly and re-renders.
func (lvt *LiveViewTest) SendInfo(msg any) error {
	lvt.t.Helper()
	err := lvt.component.HandleInfo(lvt.ctx, msg)
	lvt.render()
	return err
}

// AwaitInfo waits for the next mailbox message, delivers it and reports
// whether one arrived before timeout.
func (lvt *LiveViewTest) AwaitInfo(timeout time.Duration) bool {
	lvt.t.Helper()
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case msg := <-lvt.socket.Mailbox():
		if err := lvt.SendInfo(msg); err != nil {
			lvt.t.Errorf("info %T: %v", msg, err)
		}
		return true
	case <-timer.C:
		return false
	}
}

// Drain delivers every mailbox message already queued and returns how many
// were handled.
func (lvt *LiveViewTest) Drain() int {
	lvt.t.Helper()
	n := 0
	for {
		select {
		case msg := <-lvt.socket.Mailbox():
			if err := lvt.SendInfo(msg); err != nil {
				lvt.t.Errorf("info %T: %v", msg, err)
			}
			n++
		default:
			return n
		}
	}
}

// Render re-renders after state was changed outside an event, for example
// through a component's own API.
func (lvt *LiveViewTest) Render() *LiveViewTest {
	lvt.t.Helper()
	lvt.render()
	return lvt
}

func (lvt *LiveViewTest) render() {
	lvt.t.Helper()
	var buf bytes.Buffer
	if err := lvt.component.Render(lvt.ctx).Render(lvt.ctx, &buf); err != nil {
		lvt.t.Fatalf("render %s: %v", lvt.component.Name(), err)
	}
	lvt.rendered = buf.String()
}

// Rendered returns the latest rendered HTML.
func (lvt *LiveViewTest) Rendered() string {
	return lvt.rendered
}

// Socket returns the mock transport behind the component's socket.
func (lvt *LiveViewTest) Socket() *MockSocket {
	return lvt.transport
}

// Component returns the component under test.
func (lvt *LiveViewTest) Component() core.Component {
	return lvt.component
}

// Events returns the names of all events sent so far.
func (lvt *LiveViewTest) Events() []string {
	return append([]string(nil), lvt.events...)
}
