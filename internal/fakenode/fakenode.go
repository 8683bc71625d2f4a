// Package fakenode provides a fake Arch node for tests: an http.Handler
// that speaks the JSON-RPC wire format, serves canned per-method results,
// and records every call it receives.
package fakenode

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/sirloso/arch-go-sdk/rpc"
)

type call struct {
	Method string
	Params []interface{}
}

type Calls []call

func Call(method string, params ...interface{}) call {
	return call{method, params}
}

// Node returns a FakeNode with empty canned state.
func Node() *FakeNode {
	return &FakeNode{
		Results: map[string]interface{}{},
		Errors:  map[string]*rpc.Error{},
	}
}

// FakeNode implements http.Handler for the node's RPC endpoint. Results
// maps method names to canned result payloads, Errors to canned JSON-RPC
// error objects. FailStatus, when non-zero, makes the next FailCount
// requests answer with that bare HTTP status instead of an envelope, which
// is how tests exercise the client's HTTP-level error handling.
type FakeNode struct {
	Results map[string]interface{}
	Errors  map[string]*rpc.Error

	FailStatus int
	FailCount  int

	mu    sync.Mutex
	Calls Calls
}

// CallCount returns the number of requests received so far.
func (n *FakeNode) CallCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.Calls)
}

func (n *FakeNode) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req rpc.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	n.mu.Lock()
	n.Calls = append(n.Calls, Call(req.Method, req.Params...))
	failing := n.FailCount > 0
	if failing {
		n.FailCount--
	}
	n.mu.Unlock()

	if failing && n.FailStatus != 0 {
		http.Error(w, http.StatusText(n.FailStatus), n.FailStatus)
		return
	}

	resp := rpc.Response{Version: rpc.Version, ID: req.ID}
	if rpcErr, ok := n.Errors[req.Method]; ok {
		resp.Error = rpcErr
	} else if result, ok := n.Results[req.Method]; ok {
		raw, err := json.Marshal(result)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		resp.Result = raw
	} else {
		resp.Error = &rpc.Error{Code: rpc.ErrCodeMethodNotFound, Message: "method not found"}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(&resp); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
