package rpc

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Client is a JSON-RPC client for an Arch node. It owns a single session
// against the configured endpoint and dispatches calls over it, retrying
// transport-level faults with linearly increasing delays.
//
// Independent calls may be issued concurrently; each allocates its own
// request ID. Calling Call concurrently with Close is not safe; callers
// are responsible for draining in-flight calls before disconnecting.
type Client struct {
	config Config
	id     int64

	mu        sync.Mutex // protects transport
	transport roundTripper
}

// NewClient returns a client for the given config. No connection is opened
// until Connect or the first call.
func NewClient(config Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Client{config: config}, nil
}

// Config returns a copy of the client's configuration.
func (c *Client) Config() Config {
	return c.config
}

// Connect opens the session for the configured endpoint. It is idempotent:
// connecting an already-connected client is a no-op.
func (c *Client) Connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.transport != nil {
		return nil
	}

	u, err := url.Parse(c.config.Endpoint)
	if err != nil {
		return fmt.Errorf("invalid endpoint %q: %s", c.config.Endpoint, err)
	}
	switch u.Scheme {
	case "ws", "wss":
		c.transport = newWSTransport(c.config)
	default:
		c.transport = newHTTPTransport(c.config)
	}
	logger.Printf("Connected to Arch RPC at %s (%s)", c.config.Endpoint, c.config.Network)
	return nil
}

// Close tears down the session. It is idempotent: closing an
// already-closed client is a no-op.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.transport == nil {
		return nil
	}
	err := c.transport.Close()
	c.transport = nil
	logger.Printf("Disconnected from Arch RPC")
	return err
}

// Session runs fn within a connected session and always disconnects
// afterwards, whether or not fn failed.
func (c *Client) Session(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := c.Connect(); err != nil {
		return err
	}
	defer c.Close()
	return fn(ctx)
}

// nextID allocates the next request identifier, strictly increasing from 1
// for the lifetime of the client.
func (c *Client) nextID() int64 {
	return atomic.AddInt64(&c.id, 1)
}

// Call invokes a remote method and decodes its result into result (which
// may be nil for methods without a return value). The session is opened
// lazily if needed.
//
// Transport faults are retried up to MaxRetries attempts with delays of
// RetryDelay*1, RetryDelay*2, and so on between them, then surfaced as an
// *Error with CodeNetworkError. Non-200 HTTP statuses, undecodable bodies,
// and errors reported by the node are never retried; all failures are
// returned as *Error.
func (c *Client) Call(ctx context.Context, result interface{}, method string, params ...interface{}) error {
	if err := c.Connect(); err != nil {
		return err
	}
	c.mu.Lock()
	transport := c.transport
	c.mu.Unlock()

	req := NewRequest(c.nextID(), method, params)

	attempt := 0
	operation := func() error {
		attempt++
		resp, err := transport.RoundTrip(ctx, req)
		if err != nil {
			var rpcErr *Error
			if errors.As(err, &rpcErr) {
				return backoff.Permanent(err)
			}
			logger.Printf("Call %q failed (attempt %d/%d): %s", method, attempt, c.config.MaxRetries, err)
			return err
		}
		if resp.Error != nil {
			return backoff.Permanent(resp.Error)
		}
		if err := resp.UnmarshalResult(result); err != nil {
			return backoff.Permanent(&Error{
				Code:    CodeNetworkError,
				Message: fmt.Sprintf("invalid JSON response: %s", err),
			})
		}
		return nil
	}

	schedule := backoff.WithContext(
		backoff.WithMaxRetries(&linearBackOff{Interval: c.config.RetryDelay}, uint64(c.config.MaxRetries-1)),
		ctx,
	)
	if err := backoff.Retry(operation, schedule); err != nil {
		var rpcErr *Error
		if errors.As(err, &rpcErr) {
			return rpcErr
		}
		return &Error{Code: CodeNetworkError, Message: fmt.Sprintf("connection failed: %s", err)}
	}
	return nil
}

var _ backoff.BackOff = &linearBackOff{}

// linearBackOff waits Interval*n before the nth retry. The node's
// transient faults clear quickly, so a linear schedule is used instead of
// backoff's default exponential one.
type linearBackOff struct {
	Interval time.Duration
	attempt  int
}

func (b *linearBackOff) Reset() {
	b.attempt = 0
}

func (b *linearBackOff) NextBackOff() time.Duration {
	b.attempt++
	return b.Interval * time.Duration(b.attempt)
}
