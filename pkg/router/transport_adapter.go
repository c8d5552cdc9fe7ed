package router

import (
	"github.com/gabrielmiguelok/sitewizard/pkg/core"
	"github.com/gabrielmiguelok/sitewizard/pkg/transport"
)

// TransportAdapter lets a core.Socket write to a live connection.
type TransportAdapter struct {
	conn liveConn
}

// NewTransportAdapter wraps conn.
func NewTransportAdapter(conn liveConn) *TransportAdapter {
	return &TransportAdapter{conn: conn}
}

// Send implements core.Transport.
func (a *TransportAdapter) Send(msg core.Message) error {
	return a.conn.Send(transport.NewMessage(msg.Topic, msg.Event, msg.Payload).WithRef(msg.Ref))
}

// Close implements core.Transport.
func (a *TransportAdapter) Close() error {
	return a.conn.Close()
}

// IsConnected implements core.Transport.
func (a *TransportAdapter) IsConnected() bool {
	return a.conn.IsConnected()
}
