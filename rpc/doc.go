/*
Package rpc implements the JSON-RPC 2.0 client core for the Arch Network
SDK: session lifecycle, request dispatch, and retry-on-failure.

Client owns a single session against one configured endpoint. Connect and
Close are idempotent, and Session provides scoped acquisition where the
session is always released, even when the body fails.

Call builds the request envelope, sends it over the session, and maps
every failure class onto the uniform *Error type: transport faults are
retried with linearly increasing delays and then surfaced with
CodeNetworkError, while HTTP-level errors, undecodable bodies, and errors
reported by the node surface immediately. HTTP-level errors are
deliberately never retried: a non-200 status reflects a problem with the
request or a server-side decision, and retrying could duplicate side
effects for non-idempotent methods such as transaction submission.
*/
package rpc
