// Package core provides the component and socket abstractions the live
// runtime is built on.
package core

import (
	"context"
	"io"
)

// Component is a stateful server-side view. The router mounts it once per
// connection, forwards browser events and mailbox messages to it, and
// re-renders after each one.
type Component interface {
	// Name returns the component type name.
	Name() string

	// Mount is called once, before the first render.
	Mount(ctx context.Context, params Params, session Session) error

	// Render returns the current HTML representation of the component.
	Render(ctx context.Context) Renderer

	// HandleEvent processes a browser event.
	HandleEvent(ctx context.Context, event string, payload map[string]any) error

	// HandleInfo processes a message posted to the socket mailbox, usually
	// the result of background work started by an event.
	HandleInfo(ctx context.Context, msg any) error

	// Terminate is called when the connection goes away.
	Terminate(ctx context.Context, reason TerminateReason) error
}

// Renderer writes HTML.
type Renderer interface {
	Render(ctx context.Context, w io.Writer) error
}

// RendererFunc is an adapter to allow ordinary functions to be used as Renderers.
type RendererFunc func(ctx context.Context, w io.Writer) error

func (f RendererFunc) Render(ctx context.Context, w io.Writer) error {
	return f(ctx, w)
}

// Params contains the query parameters of the connection.
type Params map[string]string

// Get returns a parameter value or empty string if not found.
func (p Params) Get(key string) string {
	return p[key]
}

// GetDefault returns a parameter value or the default if not found.
func (p Params) GetDefault(key, defaultValue string) string {
	if v, ok := p[key]; ok && v != "" {
		return v
	}
	return defaultValue
}

// Session contains request data captured at connect time. Cookies are
// stored under "cookie:<name>".
type Session map[string]any

// Get returns a session value.
func (s Session) Get(key string) any {
	return s[key]
}

// GetString returns a session value as string.
func (s Session) GetString(key string) string {
	if v, ok := s[key].(string); ok {
		return v
	}
	return ""
}

// Cookie returns the value of a request cookie.
func (s Session) Cookie(name string) string {
	return s.GetString("cookie:" + name)
}

// TerminateReason indicates why a component is being terminated.
type TerminateReason int

const (
	TerminateNormal TerminateReason = iota
	TerminateShutdown
	TerminateError
	TerminateTimeout
)

func (r TerminateReason) String() string {
	switch r {
	case TerminateNormal:
		return "normal"
	case TerminateShutdown:
		return "shutdown"
	case TerminateError:
		return "error"
	case TerminateTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// BaseComponent provides no-op implementations of the optional methods.
type BaseComponent struct {
	socket *Socket
}

// SetSocket sets the socket for the component (called by the framework).
func (bc *BaseComponent) SetSocket(s *Socket) {
	bc.socket = s
}

// Socket returns the component's socket, or nil before connect and during
// the initial HTTP render.
func (bc *BaseComponent) Socket() *Socket {
	return bc.socket
}

// Post delivers msg to the component's HandleInfo through the socket
// mailbox. It reports false when there is no live socket.
func (bc *BaseComponent) Post(msg any) bool {
	if bc.socket == nil {
		return false
	}
	return bc.socket.Dispatch(msg) == nil
}

// Mount does nothing by default.
func (bc *BaseComponent) Mount(ctx context.Context, params Params, session Session) error {
	return nil
}

// HandleEvent does nothing by default.
func (bc *BaseComponent) HandleEvent(ctx context.Context, event string, payload map[string]any) error {
	return nil
}

// HandleInfo does nothing by default.
func (bc *BaseComponent) HandleInfo(ctx context.Context, msg any) error {
	return nil
}

// Terminate does nothing by default.
func (bc *BaseComponent) Terminate(ctx context.Context, reason TerminateReason) error {
	return nil
}
