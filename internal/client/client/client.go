package client

import (
	"context"
	"encoding/json"
	"net/http"
)

// Client is the request surface the services depend on.
type Client interface {
	// Request performs one API call; see HTTPClient.Request.
	Request(ctx context.Context, path string, opts *RequestOptions) (json.RawMessage, error)
	// Do is Request with JSON encoding of in and decoding into out.
	Do(ctx context.Context, method, path string, in, out any) error
	// URL resolves path against the API base URL.
	URL(path string) string
}

// RequestOptions carries the standard request options. A nil *RequestOptions
// means GET with no body.
type RequestOptions struct {
	Method string
	Body   []byte
	Header http.Header
}
