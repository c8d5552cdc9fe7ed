// Package router serves live components over HTTP and WebSocket.
package router

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"runtime/debug"
	"strings"
	"sync"

	"github.com/gabrielmiguelok/sitewizard/pkg/core"
	"github.com/gabrielmiguelok/sitewizard/pkg/i18n"
	"github.com/gabrielmiguelok/sitewizard/pkg/logging"
	"github.com/gabrielmiguelok/sitewizard/pkg/pool"
	"github.com/gabrielmiguelok/sitewizard/pkg/transport"
)

// Common router errors.
var (
	ErrNilRenderer  = errors.New("component returned nil renderer")
	ErrNotMounted   = errors.New("component not mounted")
	ErrShuttingDown = errors.New("router is shutting down")
)

// Router handles HTTP routing and the live connection loop.
type Router struct {
	mux          *http.ServeMux
	middleware   []Middleware
	errorHandler ErrorHandler

	sessions *SessionManager
	sockets  *core.SocketManager

	transportConfig *transport.Config
	timeouts        core.TimeoutConfig
	translator      *i18n.Translator
	logger          logging.Logger

	mu sync.RWMutex
}

// LiveRoute defines a route that renders a live component.
type LiveRoute struct {
	Path string

	// Component creates a fresh component for each request and connection.
	Component func() core.Component

	// Layout wraps the first HTTP render in a page.
	Layout Layout

	Middleware []Middleware
}

// Layout writes the page around a component's initial HTML.
type Layout func(ctx context.Context, w io.Writer, content string) error

// Middleware is a function that wraps an HTTP handler.
type Middleware func(http.Handler) http.Handler

// ErrorHandler handles errors during request processing.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// Option configures a Router.
type Option func(*Router)

// WithLogger sets the router logger.
func WithLogger(l logging.Logger) Option {
	return func(r *Router) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithTimeouts sets the component callback timeouts.
func WithTimeouts(t core.TimeoutConfig) Option {
	return func(r *Router) {
		r.timeouts = t.Normalize()
	}
}

// WithTransportConfig sets the WebSocket transport configuration.
func WithTransportConfig(c *transport.Config) Option {
	return func(r *Router) {
		if c != nil {
			r.transportConfig = c
		}
	}
}

// WithTranslator makes tr available to components through
// i18n.TranslatorFromContext, on the first render and for the whole live
// session.
func WithTranslator(tr *i18n.Translator) Option {
	return func(r *Router) {
		r.translator = tr
	}
}

// WithMaxSessions caps concurrent live connections. Zero means no limit.
func WithMaxSessions(n int) Option {
	return func(r *Router) {
		r.sessions = NewSessionManager(n)
	}
}

// New creates a new router.
func New(opts ...Option) *Router {
	r := &Router{
		mux:             http.NewServeMux(),
		sessions:        NewSessionManager(0),
		sockets:         core.NewSocketManager(),
		transportConfig: transport.DefaultConfig(),
		timeouts:        core.DefaultTimeoutConfig(),
		logger:          logging.NopLogger{},
	}
	r.errorHandler = func(w http.ResponseWriter, req *http.Request, err error) {
		r.logger.Error("request failed", logging.String("path", req.URL.Path), logging.Err(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Use adds middleware to the router. It applies to routes registered after
// the call.
func (r *Router) Use(mw Middleware) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.middleware = append(r.middleware, mw)
}

// SetErrorHandler sets the error handler.
func (r *Router) SetErrorHandler(handler ErrorHandler) {
	r.errorHandler = handler
}

// Sessions returns the live session manager.
func (r *Router) Sessions() *SessionManager {
	return r.sessions
}

// Sockets returns the socket manager.
func (r *Router) Sockets() *core.SocketManager {
	return r.sockets
}

// RouteOption configures a LiveRoute.
type RouteOption func(*LiveRoute)

// WithLayout sets the page layout.
func WithLayout(layout Layout) RouteOption {
	return func(r *LiveRoute) {
		r.Layout = layout
	}
}

// WithRouteMiddleware adds middleware to the route.
func WithRouteMiddleware(mw ...Middleware) RouteOption {
	return func(r *LiveRoute) {
		r.Middleware = append(r.Middleware, mw...)
	}
}

// Live registers a live route. GET renders the page; a WebSocket upgrade
// on the same path starts a live session.
func (r *Router) Live(path string, component func() core.Component, opts ...RouteOption) {
	route := &LiveRoute{
		Path:      path,
		Component: component,
	}
	for _, opt := range opts {
		opt(route)
	}

	var h http.Handler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		r.serveLive(w, req, route)
	})
	for i := len(route.Middleware) - 1; i >= 0; i-- {
		h = route.Middleware[i](h)
	}
	r.Handle(path, h)
}

// Handle registers a standard HTTP handler.
func (r *Router) Handle(pattern string, handler http.Handler) {
	r.mu.RLock()
	middleware := make([]Middleware, len(r.middleware))
	copy(middleware, r.middleware)
	r.mu.RUnlock()

	h := handler
	for i := len(middleware) - 1; i >= 0; i-- {
		h = middleware[i](h)
	}
	r.mux.Handle(pattern, h)
}

// HandleFunc registers a standard HTTP handler function.
func (r *Router) HandleFunc(pattern string, handler http.HandlerFunc) {
	r.Handle(pattern, handler)
}

// ServeHTTP implements http.Handler.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// Shutdown closes every live connection. Each session terminates its
// component on the way out.
func (r *Router) Shutdown(ctx context.Context) error {
	return r.sockets.Shutdown(ctx)
}

func (r *Router) serveLive(w http.ResponseWriter, req *http.Request, route *LiveRoute) {
	if isWebSocketRequest(req) {
		r.handleWebSocket(w, req, route.Component())
		return
	}
	if req.Method != http.MethodGet && req.Method != http.MethodHead {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	component := route.Component()
	ctx := r.componentContext(req.Context())

	mountCtx, cancel := context.WithTimeout(ctx, r.timeouts.ComponentMount)
	err := safeCall(func() error {
		return component.Mount(mountCtx, extractParams(req), extractSession(req))
	})
	cancel()
	if err != nil {
		r.errorHandler(w, req, err)
		return
	}

	buf := pool.GetBuffer()
	defer pool.PutBuffer(buf)

	if err := r.render(ctx, component, buf); err != nil {
		r.errorHandler(w, req, err)
		return
	}

	page := pool.GetBuffer()
	defer pool.PutBuffer(page)

	if route.Layout != nil {
		err = route.Layout(ctx, page, buf.String())
	} else {
		_, err = page.Write(buf.Bytes())
	}
	if err != nil {
		r.errorHandler(w, req, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = page.WriteTo(w)
}

func (r *Router) handleWebSocket(w http.ResponseWriter, req *http.Request, component core.Component) {
	if r.sockets.IsShutdown() {
		http.Error(w, "Service Unavailable", http.StatusServiceUnavailable)
		return
	}

	ws := transport.NewWebSocketTransport(r.transportConfig, r.logger)
	if err := ws.Upgrade(w, req); err != nil {
		r.logger.Warn("websocket upgrade failed",
			logging.String("origin", req.Header.Get("Origin")),
			logging.Err(err),
		)
		return
	}

	if _, err := r.connect(ws, component, extractParams(req), extractSession(req)); err != nil {
		r.logger.Warn("live session refused", logging.Err(err))
		_ = ws.Close()
	}
}

// connect binds component to conn and starts the session loop.
func (r *Router) connect(conn liveConn, component core.Component, params core.Params, session core.Session) (*LiveSession, error) {
	socket := core.NewSocket(newSocketID(), NewTransportAdapter(conn))

	s, err := r.sessions.Create(socket, conn, component, params, session)
	if err != nil {
		return nil, err
	}
	if !r.sockets.Add(socket) {
		r.sessions.Remove(s.ID)
		return nil, ErrShuttingDown
	}

	if bc, ok := component.(interface{ SetSocket(*core.Socket) }); ok {
		bc.SetSocket(socket)
	}

	// The connection outlives the upgrade request, so its context does too.
	ctx := logging.ContextWithLogger(r.componentContext(context.Background()), r.logger.With(
		logging.String("socket", socket.ID()),
		logging.String("component", component.Name()),
	))

	go r.loop(ctx, s)
	return s, nil
}

func (r *Router) componentContext(ctx context.Context) context.Context {
	if r.translator != nil {
		ctx = i18n.WithTranslator(ctx, r.translator)
	}
	return ctx
}

// loop serializes every component callback of one connection: browser
// events and mailbox messages are handled one at a time, each followed by
// a render.
func (r *Router) loop(ctx context.Context, s *LiveSession) {
	ctx, cancel := context.WithCancel(ctx)
	reason := core.TerminateShutdown
	defer func() {
		cancel()
		r.disconnect(s, reason)
	}()

	recvCh := s.conn.Receive()
	closeCh := s.conn.CloseChan()
	mailbox := s.Socket.Mailbox()

	for {
		select {
		case msg, ok := <-recvCh:
			if !ok {
				return
			}
			s.Socket.UpdateActivity()

			switch msg.Event {
			case "heartbeat", "phx_heartbeat":
				r.sendReply(s, msg.Ref, msg.Topic, nil)

			case "phx_join":
				r.handleJoin(ctx, s, msg)

			case "phx_leave":
				reason = core.TerminateNormal
				return

			default:
				if err := r.dispatchEvent(ctx, s, msg); err != nil {
					logging.L(ctx).Warn("event failed", logging.String("event", msg.Event), logging.Err(err))
					r.sendError(s, msg.Ref, msg.Topic, err)
					continue
				}
				r.renderAndSendDiff(ctx, s)
			}

		case info := <-mailbox:
			if !s.IsMounted() {
				continue
			}
			if err := r.dispatchInfo(ctx, s, info); err != nil {
				logging.L(ctx).Warn("info failed", logging.String("type", fmt.Sprintf("%T", info)), logging.Err(err))
				continue
			}
			r.renderAndSendDiff(ctx, s)

		case <-closeCh:
			return

		case <-ctx.Done():
			return
		}
	}
}

func (r *Router) handleJoin(ctx context.Context, s *LiveSession, msg transport.Message) {
	if joinRef, ok := msg.Payload["join_ref"].(string); ok {
		s.SetJoinRef(joinRef)
	}

	if !s.IsMounted() {
		mountCtx, cancel := context.WithTimeout(ctx, r.timeouts.ComponentMount)
		err := safeCall(func() error {
			return s.Component.Mount(mountCtx, s.Params, s.Session)
		})
		cancel()
		if err != nil {
			logging.L(ctx).Error("mount failed", logging.Err(err))
			r.sendError(s, msg.Ref, msg.Topic, err)
			return
		}
		s.SetMounted(true)
	}

	buf := pool.GetBuffer()
	defer pool.PutBuffer(buf)

	if err := r.render(ctx, s.Component, buf); err != nil {
		r.sendError(s, msg.Ref, msg.Topic, err)
		return
	}

	html := buf.String()
	s.SetSlotHashes(hashSlots(html))

	r.sendReply(s, msg.Ref, msg.Topic, map[string]any{
		"rendered": map[string]any{
			"s": []string{html},
		},
	})
}

func (r *Router) dispatchEvent(ctx context.Context, s *LiveSession, msg transport.Message) error {
	if !s.IsMounted() {
		return ErrNotMounted
	}

	payload := msg.Payload
	if payload == nil {
		payload = make(map[string]any)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeouts.ComponentEvent)
	defer cancel()

	return safeCall(func() error {
		return s.Component.HandleEvent(ctx, msg.Event, payload)
	})
}

func (r *Router) dispatchInfo(ctx context.Context, s *LiveSession, info any) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeouts.ComponentInfo)
	defer cancel()

	return safeCall(func() error {
		return s.Component.HandleInfo(ctx, info)
	})
}

func (r *Router) render(ctx context.Context, component core.Component, buf *bytes.Buffer) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeouts.ComponentRender)
	defer cancel()

	return safeCall(func() error {
		renderer := component.Render(ctx)
		if renderer == nil {
			return ErrNilRenderer
		}
		return renderer.Render(ctx, buf)
	})
}

// renderAndSendDiff re-renders the component and sends the slots whose
// content changed since the last render.
func (r *Router) renderAndSendDiff(ctx context.Context, s *LiveSession) {
	buf := pool.GetBuffer()
	defer pool.PutBuffer(buf)

	if err := r.render(ctx, s.Component, buf); err != nil {
		logging.L(ctx).Error("render failed", logging.Err(err))
		return
	}

	payload := buildDiffPayload(s, buf.String())
	if err := s.Socket.SendDiff(payload); err != nil {
		logging.L(ctx).Debug("diff not sent", logging.Err(err))
	}
}

func (r *Router) disconnect(s *LiveSession, reason core.TerminateReason) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeouts.ComponentEvent)
	defer cancel()

	if err := safeCall(func() error { return s.Component.Terminate(ctx, reason) }); err != nil {
		r.logger.Warn("terminate failed", logging.String("socket", s.SocketID), logging.Err(err))
	}

	r.sessions.Remove(s.ID)
	r.sockets.Remove(s.SocketID)
	_ = s.Socket.Close()

	r.logger.Debug("live session closed",
		logging.String("socket", s.SocketID),
		logging.String("reason", reason.String()),
	)
}

func (r *Router) sendReply(s *LiveSession, ref, topic string, response map[string]any) {
	msg := transport.NewMessage(topic, "phx_reply", map[string]any{
		"status":   "ok",
		"response": response,
	}).WithRef(ref)

	if err := s.conn.Send(msg); err != nil {
		r.logger.Debug("reply not sent", logging.String("socket", s.SocketID), logging.Err(err))
	}
}

func (r *Router) sendError(s *LiveSession, ref, topic string, err error) {
	msg := transport.NewMessage(topic, "phx_reply", map[string]any{
		"status": "error",
		"response": map[string]any{
			"reason": err.Error(),
		},
	}).WithRef(ref)

	_ = s.conn.Send(msg)
}

// safeCall runs fn, turning a panic into an error.
func safeCall(fn func() error) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			logging.Error("component panic", logging.Any("panic", rec), logging.String("stack", string(debug.Stack())))
			err = fmt.Errorf("component panic: %v", rec)
		}
	}()
	return fn()
}

// extractSession captures the request cookies.
func extractSession(req *http.Request) core.Session {
	session := make(core.Session)
	for _, cookie := range req.Cookies() {
		session["cookie:"+cookie.Name] = cookie.Value
	}
	return session
}

// extractParams extracts query parameters.
func extractParams(req *http.Request) core.Params {
	params := make(core.Params)
	for key, values := range req.URL.Query() {
		if len(values) > 0 {
			params[key] = values[0]
		}
	}
	return params
}

// isWebSocketRequest checks if this is a WebSocket upgrade request.
func isWebSocketRequest(req *http.Request) bool {
	return strings.Contains(strings.ToLower(req.Header.Get("Upgrade")), "websocket")
}
