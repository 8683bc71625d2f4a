package rpc

import (
	"encoding/json"
	"fmt"
)

// CodeNetworkError is the reserved error code for faults that did not
// originate from the remote node: transport failures that exhausted the
// retry budget, and response bodies that could not be decoded.
const CodeNetworkError = -1

// Well-known JSON-RPC 2.0 error codes, as reported by the node.
const (
	ErrCodeParse          = -32700
	ErrCodeInvalidRequest = -32600
	ErrCodeMethodNotFound = -32601
	ErrCodeInvalidParams  = -32602
	ErrCodeInternal       = -32603
)

// Error is the uniform error type returned by the client for every failure
// class: transport faults, non-200 HTTP statuses, undecodable bodies, and
// structured errors reported by the node. Code carries either the node's
// JSON-RPC error code, the HTTP status, or CodeNetworkError.
type Error struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (err *Error) Error() string {
	return fmt.Sprintf("%d: %s", err.Code, err.Message)
}

// UnmarshalJSON fills in the defaults the node is allowed to omit: a
// missing code becomes CodeNetworkError and a missing message becomes
// "unknown error".
func (err *Error) UnmarshalJSON(data []byte) error {
	var raw struct {
		Code    *int            `json:"code"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	if jsonErr := json.Unmarshal(data, &raw); jsonErr != nil {
		return jsonErr
	}
	if raw.Code != nil {
		err.Code = *raw.Code
	} else {
		err.Code = CodeNetworkError
	}
	if raw.Message != "" {
		err.Message = raw.Message
	} else {
		err.Message = "unknown error"
	}
	err.Data = raw.Data
	return nil
}
