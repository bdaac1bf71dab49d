// Package client is the authenticated request gateway of the storefront
// client.
//
// # Overview
//
// HTTPClient performs JSON requests against the storefront API. It attaches
// the stored access token as a bearer credential and, when the API answers
// 401 and a refresh token is stored, exchanges the refresh token for a new
// pair and retries the original request exactly once.
//
// Concurrent requests that hit 401 together share one refresh call
// (golang.org/x/sync/singleflight). The shared call is forgotten as soon as it
// settles, so a later independent 401 starts a new cycle. A failed refresh
// clears all stored credentials and lets the original 401 surface to the
// caller as an *APIError; it is never reported as an error of its own.
//
// # Error Handling
//
//   - transport failures wrap ErrUnavailable;
//   - non-2xx responses (after any retry) are *APIError, whose message is the
//     body's "error" field or "HTTP <status>";
//   - errors.Is(err, ErrUnauthorized) holds for 401 responses.
package client
