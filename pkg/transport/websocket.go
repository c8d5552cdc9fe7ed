package transport

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/coder/websocket"

	"github.com/gabrielmiguelok/sitewizard/pkg/logging"
)

// WebSocketTransport is the server side of a live-view WebSocket.
type WebSocketTransport struct {
	*base
	conn   *websocket.Conn
	logger logging.Logger
	mu     sync.Mutex
}

// NewWebSocketTransport creates an unconnected transport.
func NewWebSocketTransport(config *Config, logger logging.Logger) *WebSocketTransport {
	if logger == nil {
		logger = logging.NopLogger{}
	}
	return &WebSocketTransport{
		base:   newBase(config),
		logger: logger,
	}
}

// originAllowed reports whether a page at origin may connect to host.
func (t *WebSocketTransport) originAllowed(origin, host string) bool {
	if origin == "" {
		return true
	}
	originURL, err := url.Parse(origin)
	if err != nil {
		return false
	}
	if originURL.Host == host {
		return true
	}
	for _, allowed := range t.config.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
		if allowedURL, err := url.Parse(allowed); err == nil && allowedURL.Host == originURL.Host {
			return true
		}
	}
	return false
}

// Upgrade accepts the WebSocket handshake and starts the I/O loops.
func (t *WebSocketTransport) Upgrade(w http.ResponseWriter, r *http.Request) error {
	if !t.originAllowed(r.Header.Get("Origin"), r.Host) {
		http.Error(w, "Forbidden: origin not allowed", http.StatusForbidden)
		return ErrOriginNotAllowed
	}

	// Origin was checked above against the configured list.
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
	if err != nil {
		return fmt.Errorf("accept websocket: %w", err)
	}

	t.mu.Lock()
	t.conn = conn
	t.setConnected(true)
	t.mu.Unlock()

	conn.SetReadLimit(t.config.MaxMessageSize)

	go t.readLoop()
	go t.writeLoop()
	go t.pingLoop()

	return nil
}

// Send queues a message for the write loop.
func (t *WebSocketTransport) Send(msg Message) error {
	if !t.IsConnected() {
		return ErrNotConnected
	}

	timer := time.NewTimer(t.config.WriteTimeout)
	defer timer.Stop()

	select {
	case t.sendCh <- msg:
		return nil
	case <-t.closeCh:
		return ErrTransportClosed
	case <-timer.C:
		return ErrSendTimeout
	}
}

// Close closes the connection. It is safe to call more than once.
func (t *WebSocketTransport) Close() error {
	t.close()

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.conn != nil {
		err := t.conn.Close(websocket.StatusNormalClosure, "closing")
		t.conn = nil
		return err
	}
	return nil
}

func (t *WebSocketTransport) current() *websocket.Conn {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.conn
}

func (t *WebSocketTransport) readLoop() {
	defer t.Close()

	for {
		conn := t.current()
		if conn == nil {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), t.config.ReadTimeout)
		_, data, err := conn.Read(ctx)
		cancel()

		if err != nil {
			if websocket.CloseStatus(err) != websocket.StatusNormalClosure {
				t.logger.Debug("websocket read ended", logging.Err(err))
			}
			return
		}

		msg, err := Unmarshal(data)
		if err != nil {
			t.logger.Debug("dropping malformed frame", logging.Err(err), logging.Int("bytes", len(data)))
			continue
		}

		select {
		case t.recvCh <- msg:
		case <-t.closeCh:
			return
		default:
			t.logger.Warn("receive buffer full, dropping message", logging.String("event", msg.Event))
		}
	}
}

func (t *WebSocketTransport) writeLoop() {
	for {
		select {
		case msg := <-t.sendCh:
			conn := t.current()
			if conn == nil {
				return
			}

			data, err := msg.Marshal()
			if err != nil {
				t.logger.Error("marshal message", logging.String("event", msg.Event), logging.Err(err))
				continue
			}

			ctx, cancel := context.WithTimeout(context.Background(), t.config.WriteTimeout)
			err = conn.Write(ctx, websocket.MessageText, data)
			cancel()

			if err != nil {
				t.logger.Debug("websocket write failed", logging.Err(err))
				t.Close()
				return
			}

		case <-t.closeCh:
			return
		}
	}
}

func (t *WebSocketTransport) pingLoop() {
	ticker := time.NewTicker(t.config.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			conn := t.current()
			if conn == nil {
				return
			}
			ctx, cancel := context.WithTimeout(context.Background(), t.config.WriteTimeout)
			if err := conn.Ping(ctx); err != nil {
				t.logger.Debug("websocket ping failed", logging.Err(err))
			}
			cancel()
		case <-t.closeCh:
			return
		}
	}
}
