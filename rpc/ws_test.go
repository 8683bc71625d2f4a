package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/websocket"
)

// wsEcho serves the JSON-RPC envelope over a websocket, answering every
// request with the given result. The returned func closes all accepted
// connections: httptest.Server.Close does not close hijacked websocket
// connections, so tests that shut the server down must call it too.
func wsEcho(t *testing.T, result interface{}) (http.Handler, func()) {
	t.Helper()
	upgrader := websocket.Upgrader{}
	var mu sync.Mutex
	var conns []*websocket.Conn
	closeConns := func() {
		mu.Lock()
		defer mu.Unlock()
		for _, c := range conns {
			c.Close()
		}
		conns = nil
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		mu.Lock()
		conns = append(conns, conn)
		mu.Unlock()
		defer conn.Close()
		for {
			var req Request
			if err := conn.ReadJSON(&req); err != nil {
				return
			}
			raw, err := json.Marshal(result)
			if err != nil {
				t.Error(err)
				return
			}
			resp := Response{Version: Version, ID: req.ID, Result: raw}
			if err := conn.WriteJSON(&resp); err != nil {
				return
			}
		}
	}), closeConns
}

func TestWebSocketCall(t *testing.T) {
	handler, closeConns := wsEcho(t, 42)
	server := httptest.NewServer(handler)
	defer server.Close()
	defer closeConns()

	config := testConfig()
	config.Endpoint = "ws" + strings.TrimPrefix(server.URL, "http")

	client, err := NewClient(config)
	if err != nil {
		t.Fatal(err)
	}
	defer client.Close()

	if err := client.Connect(); err != nil {
		t.Fatal(err)
	}
	if _, ok := client.transport.(*wsTransport); !ok {
		t.Fatalf("expected websocket transport for %s, got %T", config.Endpoint, client.transport)
	}

	var count int
	if err := client.Call(context.Background(), &count, "get_block_count"); err != nil {
		t.Fatal(err)
	}
	if count != 42 {
		t.Errorf("got %d; want 42", count)
	}

	// A second call reuses the dialed connection.
	if err := client.Call(context.Background(), &count, "get_block_count"); err != nil {
		t.Fatal(err)
	}
}

func TestWebSocketFaultSurfacesAsNetworkError(t *testing.T) {
	handler, closeConns := wsEcho(t, true)
	server := httptest.NewServer(handler)

	config := testConfig()
	config.Endpoint = "ws" + strings.TrimPrefix(server.URL, "http")

	client, err := NewClient(config)
	if err != nil {
		t.Fatal(err)
	}
	defer client.Close()

	if err := client.Call(context.Background(), nil, "is_node_ready"); err != nil {
		t.Fatal(err)
	}

	// Kill the server; the dropped connection must surface as a network
	// fault, not a decode error. Close does not terminate hijacked
	// websocket connections, so drop them explicitly as well.
	server.Close()
	closeConns()
	err = client.Call(context.Background(), nil, "is_node_ready")
	if err == nil {
		t.Fatal("expected error after server shutdown")
	}
	var rpcErr *Error
	if !errors.As(err, &rpcErr) || rpcErr.Code != CodeNetworkError {
		t.Errorf("got %v; want network error code %d", err, CodeNetworkError)
	}
}
