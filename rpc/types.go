package rpc

import (
	"encoding/json"
)

// Version is the JSON-RPC protocol version sent with every request.
const Version = "2.0"

// Request is a JSON-RPC 2.0 request envelope. Params is always encoded as
// an array, even when empty, because the Arch node rejects requests with a
// missing params field.
type Request struct {
	Version string        `json:"jsonrpc"`
	ID      int64         `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

// NewRequest returns a request envelope for the given ID and method. A nil
// params slice is normalized to an empty array.
func NewRequest(id int64, method string, params []interface{}) *Request {
	if params == nil {
		params = []interface{}{}
	}
	return &Request{
		Version: Version,
		ID:      id,
		Method:  method,
		Params:  params,
	}
}

// Response is a JSON-RPC 2.0 response envelope. Exactly one of Result or
// Error is set. Result may be JSON null for methods without a return value.
type Response struct {
	Version string          `json:"jsonrpc,omitempty"`
	ID      int64           `json:"id,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
}

// UnmarshalResult decodes the response's result payload into the given
// value. A nil value or an absent/null result is a no-op.
func (r *Response) UnmarshalResult(result interface{}) error {
	if result == nil || len(r.Result) == 0 || string(r.Result) == "null" {
		return nil
	}
	return json.Unmarshal(r.Result, result)
}
