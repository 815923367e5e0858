// Copyright 2026 Teradata
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package protocol defines the JSON-RPC 2.0 framing and the MCP message
// types the medsupply server speaks: the initialize handshake, the tools
// surface, and the resources surface. The field names and error codes
// are fixed by the JSON-RPC 2.0 and MCP wire formats.
package protocol

import (
	"encoding/json"
	"fmt"
)

// JSONRPCVersion is the version string every message must carry.
const JSONRPCVersion = "2.0"

// RequestID is a JSON-RPC request id, which the wire format allows to be
// a string, a number, or null. Exactly one of Str and Num is set; both
// nil means null.
type RequestID struct {
	Str *string
	Num *int64
}

// NewStringRequestID creates a string-valued request id.
func NewStringRequestID(s string) *RequestID {
	return &RequestID{Str: &s}
}

// NewNumericRequestID creates a number-valued request id.
func NewNumericRequestID(n int64) *RequestID {
	return &RequestID{Num: &n}
}

// MarshalJSON encodes the id in whichever form it holds.
func (r *RequestID) MarshalJSON() ([]byte, error) {
	switch {
	case r == nil:
		return []byte("null"), nil
	case r.Str != nil:
		return json.Marshal(r.Str)
	case r.Num != nil:
		return json.Marshal(r.Num)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts a string, a number, or null.
func (r *RequestID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		r.Str = &s
		return nil
	}

	var n int64
	if err := json.Unmarshal(data, &n); err == nil {
		r.Num = &n
		return nil
	}

	if string(data) == "null" {
		return nil
	}
	return fmt.Errorf("invalid request ID: %s", data)
}

// String renders the id for log output.
func (r *RequestID) String() string {
	switch {
	case r == nil:
		return "null"
	case r.Str != nil:
		return *r.Str
	case r.Num != nil:
		return fmt.Sprintf("%d", *r.Num)
	default:
		return "null"
	}
}

// Request is a JSON-RPC 2.0 request or notification. A notification
// carries no id and gets no response.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      *RequestID      `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// Validate checks the JSON-RPC envelope before dispatch. Method-specific
// params are decoded and checked by the handler, not here.
func (r *Request) Validate() error {
	if r.JSONRPC != JSONRPCVersion {
		return fmt.Errorf("invalid jsonrpc version: %s (expected %s)", r.JSONRPC, JSONRPCVersion)
	}
	if r.Method == "" {
		return fmt.Errorf("method is required")
	}
	return nil
}

// Response is a JSON-RPC 2.0 response. Result and Error are mutually
// exclusive; the id echoes the request's.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      *RequestID      `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
}

// Error is a JSON-RPC 2.0 error object.
type Error struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// JSON-RPC 2.0 error codes.
const (
	ParseError     = -32700
	InvalidRequest = -32600
	MethodNotFound = -32601
	InvalidParams  = -32602
	InternalError  = -32603
	ServerError    = -32000
)

// NewError creates an error object. A non-nil data value is attached if
// it marshals cleanly and silently dropped otherwise.
func NewError(code int, message string, data interface{}) *Error {
	e := &Error{
		Code:    code,
		Message: message,
	}
	if data != nil {
		if dataJSON, err := json.Marshal(data); err == nil {
			e.Data = dataJSON
		}
	}
	return e
}

// Error implements the error interface so handlers can return an *Error
// and have the dispatcher preserve its code.
func (e *Error) Error() string {
	if e.Data != nil {
		return fmt.Sprintf("JSON-RPC error %d: %s (data: %s)", e.Code, e.Message, e.Data)
	}
	return fmt.Sprintf("JSON-RPC error %d: %s", e.Code, e.Message)
}
