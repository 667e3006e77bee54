package router

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// Request carries one simulated call through the dispatcher to a handler.
type Request struct {
	Method string
	Path   string
	// Params holds wildcard captures from the matched pattern.
	Params map[string]string
	Query  url.Values
	Body   json.RawMessage
	// Headers uses canonical keys ("Authorization").
	Headers map[string]string
}

// Result is a handler outcome: a status code plus the payload (or failure
// message) the dispatcher wraps into the wire envelope. Handlers signal
// failure through Results, never by panicking past their own boundary.
type Result struct {
	Status  int
	Data    any
	Message string
}

// HandlerFunc is the stateful handler contract bound into a route registry.
type HandlerFunc func(ctx context.Context, req *Request) *Result

// OK returns a 200 result with data.
func OK(data any) *Result {
	return &Result{Status: http.StatusOK, Data: data}
}

// OKMessage returns a 200 result carrying only a human-readable message.
func OKMessage(message string) *Result {
	return &Result{Status: http.StatusOK, Message: message}
}

// Created returns a 201 result with data.
func Created(data any) *Result {
	return &Result{Status: http.StatusCreated, Data: data}
}

// Fail returns a failing result with a human-readable message.
func Fail(status int, message string) *Result {
	return &Result{Status: status, Message: message}
}

// Bind decodes the JSON request body into v.
func (r *Request) Bind(v any) error {
	if len(r.Body) == 0 {
		return fmt.Errorf("router:request - empty request body")
	}
	return json.Unmarshal(r.Body, v)
}

// Param returns the named wildcard capture, or "".
func (r *Request) Param(name string) string {
	return r.Params[name]
}

// QueryValue returns the first query value for key, or "".
func (r *Request) QueryValue(key string) string {
	if r.Query == nil {
		return ""
	}
	return r.Query.Get(key)
}

// QueryInt returns the query value for key as an int, or def when the key is
// absent or malformed.
func (r *Request) QueryInt(key string, def int) int {
	s := r.QueryValue(key)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// Header returns the named header value, or "".
func (r *Request) Header(name string) string {
	return r.Headers[name]
}
