package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

const httpContentType = "application/json"

// userAgent identifies the SDK to the node. User-supplied headers may
// override it.
const userAgent = "arch-go-sdk/1.0.0"

// roundTripper sends one request envelope and produces one response
// envelope. An error of type *Error is terminal; any other error is a
// transport fault that the dispatcher may retry.
type roundTripper interface {
	RoundTrip(ctx context.Context, req *Request) (*Response, error)
	Close() error
}

// defaultHeaders builds the session headers: content type and client
// identifier first, then user-supplied headers, then the bearer token.
func defaultHeaders(config Config) http.Header {
	headers := http.Header{}
	headers.Set("Content-Type", httpContentType)
	headers.Set("User-Agent", userAgent)
	for k, v := range config.Headers {
		headers.Set(k, v)
	}
	if config.AuthToken != "" {
		headers.Set("Authorization", "Bearer "+config.AuthToken)
	}
	return headers
}

var _ roundTripper = &httpTransport{}

// httpTransport performs JSON-RPC calls over HTTP POST.
type httpTransport struct {
	client   *http.Client
	endpoint string
	headers  http.Header
}

func newHTTPTransport(config Config) *httpTransport {
	return &httpTransport{
		client:   &http.Client{Timeout: config.Timeout},
		endpoint: config.Endpoint,
		headers:  defaultHeaders(config),
	}
}

func (t *httpTransport) RoundTrip(ctx context.Context, req *Request) (*Response, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, &Error{Code: CodeNetworkError, Message: fmt.Sprintf("failed to encode request: %s", err)}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &Error{Code: CodeNetworkError, Message: fmt.Sprintf("failed to build request: %s", err)}
	}
	httpReq.Header = t.headers.Clone()

	resp, err := t.client.Do(httpReq)
	if err != nil {
		// Connection refused, timeout, DNS failure. Retryable.
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &Error{
			Code:    resp.StatusCode,
			Message: fmt.Sprintf("HTTP error: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
		}
	}

	var msg Response
	if err := json.NewDecoder(resp.Body).Decode(&msg); err != nil {
		return nil, &Error{Code: CodeNetworkError, Message: fmt.Sprintf("invalid JSON response: %s", err)}
	}
	return &msg, nil
}

func (t *httpTransport) Close() error {
	t.client.CloseIdleConnections()
	return nil
}
