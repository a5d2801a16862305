// Package rpc implements the line-framed JSON-RPC 2.0 protocol spoken by
// the demonstration harness: an ASCII "Content-Length: <N>" header block
// terminated by an empty line, followed by exactly N bytes of UTF-8 JSON.
package rpc

import "encoding/json"

const Version = "2.0"

// Standard JSON-RPC 2.0 error codes.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
)

// Request is an incoming call. A nil ID marks a notification, which
// receives no response. Responses are correlated to requests solely by ID.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      any             `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// Notification reports whether the request expects no response.
func (r *Request) Notification() bool { return r.ID == nil }

// Response carries either a result or an error, never both.
type Response struct {
	JSONRPC string    `json:"jsonrpc"`
	ID      any       `json:"id"`
	Result  any       `json:"result,omitempty"`
	Error   *ErrorObj `json:"error,omitempty"`
}

type ErrorObj struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func newResult(id, result any) Response {
	return Response{JSONRPC: Version, ID: id, Result: result}
}

func newError(id any, code int, message string) Response {
	return Response{JSONRPC: Version, ID: id, Error: &ErrorObj{Code: code, Message: message}}
}
