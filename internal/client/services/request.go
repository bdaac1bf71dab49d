package services

import (
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/storefront/internal/client/client"
)

// jsonBody builds request options with v encoded as the body. v is always a
// plain map or struct, so encoding cannot fail.
func jsonBody(method string, v any) *client.RequestOptions {
	b, _ := json.Marshal(v)
	return &client.RequestOptions{Method: method, Body: b}
}

func withQuery(path string, q url.Values) string {
	if enc := q.Encode(); enc != "" {
		return path + "?" + enc
	}
	return path
}

// sizeQuery returns the ?size= selector of a cart line, empty when size is.
func sizeQuery(size string) url.Values {
	q := url.Values{}
	if size != "" {
		q.Set("size", size)
	}
	return q
}

func itoa(n int) string { return strconv.Itoa(n) }
