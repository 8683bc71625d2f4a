package rpc

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

var _ roundTripper = &wsTransport{}

// wsTransport performs JSON-RPC calls over a websocket connection, for
// nodes that expose their RPC interface on a ws:// or wss:// endpoint.
// Calls are serialized over the single connection; the connection is
// dialed lazily and re-dialed after a transport fault so that the
// dispatcher's retries get a fresh connection.
type wsTransport struct {
	dialer   *websocket.Dialer
	endpoint string
	headers  http.Header
	timeout  time.Duration

	mu   sync.Mutex
	conn *websocket.Conn
}

func newWSTransport(config Config) *wsTransport {
	headers := defaultHeaders(config)
	// The websocket handshake manages its own content type.
	headers.Del("Content-Type")
	return &wsTransport{
		dialer: &websocket.Dialer{
			HandshakeTimeout: config.Timeout,
		},
		endpoint: config.Endpoint,
		headers:  headers,
		timeout:  config.Timeout,
	}
}

func (t *wsTransport) RoundTrip(ctx context.Context, req *Request) (*Response, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.conn == nil {
		conn, _, err := t.dialer.DialContext(ctx, t.endpoint, t.headers)
		if err != nil {
			return nil, err
		}
		t.conn = conn
	}

	deadline := time.Now().Add(t.timeout)
	if err := t.conn.SetWriteDeadline(deadline); err != nil {
		return nil, t.drop(err)
	}
	if err := t.conn.WriteJSON(req); err != nil {
		return nil, t.drop(err)
	}
	if err := t.conn.SetReadDeadline(deadline); err != nil {
		return nil, t.drop(err)
	}

	var msg Response
	if err := t.conn.ReadJSON(&msg); err != nil {
		return nil, t.drop(err)
	}
	if msg.ID != req.ID {
		return nil, t.drop(fmt.Errorf("response ID mismatch: sent %d, received %d", req.ID, msg.ID))
	}
	return &msg, nil
}

// drop discards the connection so the next attempt re-dials.
func (t *wsTransport) drop(err error) error {
	if t.conn != nil {
		t.conn.Close()
		t.conn = nil
	}
	return err
}

func (t *wsTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.conn == nil {
		return nil
	}
	err := t.conn.Close()
	t.conn = nil
	return err
}
