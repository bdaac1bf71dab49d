package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/logging"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

const (
	RequestIDHeader = "X-Request-ID"

	refreshPath           = "/auth/refresh"
	refreshKey            = "refresh"
	defaultRefreshTimeout = 10 * time.Second
	defaultRequestTimeout = 30 * time.Second
)

var errRefreshRejected = errors.New("refresh rejected")

// TokenStore is the credential storage the gateway reads and updates.
// Implementations must not fail: storage problems are their own concern.
type TokenStore interface {
	AccessToken(ctx context.Context) string
	RefreshToken(ctx context.Context) string
	SetPair(ctx context.Context, pair models.CredentialPair)
	ClearAll(ctx context.Context)
}

type HTTPClient struct {
	baseURL        string
	http           *http.Client
	tokens         TokenStore
	logger         logging.Logger
	limiter        *rate.Limiter
	refreshTimeout time.Duration

	// refreshes holds at most one in-flight refresh under refreshKey.
	refreshes singleflight.Group
}

type Option func(*HTTPClient)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.http = hc }
}

// WithRefreshTimeout bounds a refresh call. Waiters are released when it
// expires and the refresh counts as failed.
func WithRefreshTimeout(d time.Duration) Option {
	return func(c *HTTPClient) {
		if d > 0 {
			c.refreshTimeout = d
		}
	}
}

// WithRateLimit throttles outbound calls to rps. rps <= 0 disables throttling.
func WithRateLimit(rps float64) Option {
	return func(c *HTTPClient) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

func NewHTTPClient(baseURL string, tokens TokenStore, logger logging.Logger, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid API base URL %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid API base URL %q: scheme must be http or https", baseURL)
	}

	c := &HTTPClient{
		baseURL:        strings.TrimSuffix(baseURL, "/"),
		http:           &http.Client{Timeout: defaultRequestTimeout},
		tokens:         tokens,
		logger:         logger.With("component", "gateway"),
		refreshTimeout: defaultRefreshTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *HTTPClient) URL(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL + path
}

// Request performs one API call against path (relative to the base URL).
//
// A 401 answer is retried once with a refreshed access token when a refresh
// token is stored. The result is nil for 204 and for empty bodies, otherwise
// the raw JSON body.
func (c *HTTPClient) Request(ctx context.Context, path string, opts *RequestOptions) (json.RawMessage, error) {
	if opts == nil {
		opts = &RequestOptions{}
	}
	reqID := uuid.NewString()

	used := c.tokens.AccessToken(ctx)
	resp, err := c.send(ctx, reqID, path, opts, used, false)
	if err != nil {
		return nil, err
	}

	if resp.status == http.StatusUnauthorized && c.tokens.RefreshToken(ctx) != "" {
		next, err := c.renewAccess(ctx, used)
		if err != nil {
			return nil, err
		}
		if next != "" {
			resp, err = c.send(ctx, reqID, path, opts, next, true)
			if err != nil {
				return nil, err
			}
		}
	}

	if resp.status < 200 || resp.status > 299 {
		return nil, newAPIError(resp.status, errorMessage(resp.body))
	}
	if resp.status == http.StatusNoContent || len(bytes.TrimSpace(resp.body)) == 0 {
		return nil, nil
	}
	if !json.Valid(resp.body) {
		return nil, fmt.Errorf("decode %s: response is not JSON", path)
	}
	return resp.body, nil
}

func (c *HTTPClient) Do(ctx context.Context, method, path string, in, out any) error {
	opts := &RequestOptions{Method: method}
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		opts.Body = b
	}

	raw, err := c.Request(ctx, path, opts)
	if err != nil {
		return err
	}
	if out == nil || raw == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// renewAccess returns the access token to retry with, or "" when the
// refresh failed. Callers that hit 401 together share one refresh; a caller
// whose token was already replaced by a finished refresh reuses the new one.
// The only error is the caller's own context ending while it waits.
func (c *HTTPClient) renewAccess(ctx context.Context, used string) (string, error) {
	ch := c.refreshes.DoChan(refreshKey, func() (any, error) {
		if current := c.tokens.AccessToken(ctx); current != "" && current != used {
			return current, nil
		}
		return c.refresh(ctx), nil
	})

	select {
	case res := <-ch:
		token, _ := res.Val.(string)
		return token, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// refresh exchanges the stored refresh token for a new pair. It runs
// detached from the initiating caller's cancellation but bounded by the
// refresh timeout. On failure every stored credential is cleared.
func (c *HTTPClient) refresh(parent context.Context) string {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(parent), c.refreshTimeout)
	defer cancel()

	rt := c.tokens.RefreshToken(ctx)
	if rt == "" {
		return ""
	}

	c.logger.Info(ctx, "refreshing access token")

	pair, err := c.postRefresh(ctx, rt)
	if err != nil {
		c.logger.Warn(ctx, "token refresh failed, signing out", "error", err)
		c.tokens.ClearAll(ctx)
		return ""
	}

	c.tokens.SetPair(ctx, pair)
	c.logger.Info(ctx, "access token refreshed")
	return pair.AccessToken
}

func (c *HTTPClient) postRefresh(ctx context.Context, refreshToken string) (models.CredentialPair, error) {
	body, err := json.Marshal(map[string]string{"refreshToken": refreshToken})
	if err != nil {
		return models.CredentialPair{}, err
	}

	resp, err := c.send(ctx, uuid.NewString(), refreshPath, &RequestOptions{Method: http.MethodPost, Body: body}, "", false)
	if err != nil {
		return models.CredentialPair{}, err
	}
	if resp.status < 200 || resp.status > 299 {
		return models.CredentialPair{}, fmt.Errorf("%w: HTTP %d", errRefreshRejected, resp.status)
	}

	var pair models.CredentialPair
	if err := json.Unmarshal(resp.body, &pair); err != nil {
		return models.CredentialPair{}, fmt.Errorf("decode refresh response: %w", err)
	}
	if pair.AccessToken == "" {
		return models.CredentialPair{}, fmt.Errorf("%w: empty access token", errRefreshRejected)
	}
	return pair, nil
}

type response struct {
	status int
	body   []byte
}

// send issues a single HTTP exchange. Caller headers are applied over the
// defaults; forceToken re-applies token over whatever the caller set.
func (c *HTTPClient) send(ctx context.Context, reqID, path string, opts *RequestOptions, token string, forceToken bool) (*response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if opts.Body != nil {
		body = bytes.NewReader(opts.Body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.URL(path), body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(RequestIDHeader, reqID)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, vs := range opts.Header {
		req.Header.Del(k)
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if forceToken && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrUnavailable, path, err)
	}

	c.logger.Debug(ctx, "api call", "request_id", reqID, "method", method, "path", path, "status", resp.StatusCode)
	return &response{status: resp.StatusCode, body: b}, nil
}

func errorMessage(body []byte) string {
	if !gjson.ValidBytes(body) {
		return ""
	}
	return gjson.GetBytes(body, "error").String()
}
