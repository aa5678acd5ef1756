// Package api is the request gateway for the Dojo backend. It wraps every
// outbound call with bearer-token injection, JSON (de)serialization, and
// uniform error normalization, and exposes one typed method per endpoint.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dojoapp/dojo-client/internal/ratelimit"
)

const (
	// Rate limit: polite client-side throttle per endpoint family.
	defaultRPS   = 10.0
	defaultBurst = 20

	// HTTP client settings
	defaultTimeout = 30 * time.Second
)

// TokenSource is a read-only view of the credential store. Only the
// session manager holds the writable side.
type TokenSource interface {
	Token() (string, bool)
}

// Client is a rate-limited Dojo API client.
type Client struct {
	http    *http.Client
	baseURL string
	tokens  TokenSource
	limiter *ratelimit.KeyedRateLimiter
	logger  *slog.Logger
}

// New creates a new Dojo client. A zero timeout selects the default.
func New(baseURL string, timeout time.Duration, tokens TokenSource, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		limiter: ratelimit.New(defaultRPS, defaultBurst),
		logger:  logger,
	}
}

// requestOpts controls a single gateway call.
type requestOpts struct {
	method string // defaults to POST when body is set, GET otherwise
	body   any
	noAuth bool // skip bearer injection (login only)
}

// errorBody is the server's error envelope.
type errorBody struct {
	Detail string `json:"detail"`
}

// do executes one request against the backend and decodes the JSON
// response into out (which may be nil). All failures come back as *Error
// carrying the server-provided detail when one could be extracted.
func (c *Client) do(ctx context.Context, op, endpoint string, opts requestOpts, out any) error {
	if err := c.limiter.Wait(ctx, limiterKey(endpoint)); err != nil {
		return wrapError(op, 0, unknownErrorMessage, fmt.Errorf("rate limit wait: %w", err))
	}

	method := opts.method
	if method == "" {
		if opts.body != nil {
			method = http.MethodPost
		} else {
			method = http.MethodGet
		}
	}

	var reqBody io.Reader
	if opts.body != nil {
		encoded, err := json.Marshal(opts.body)
		if err != nil {
			return wrapError(op, 0, unknownErrorMessage, fmt.Errorf("encode request: %w", err))
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reqBody)
	if err != nil {
		return wrapError(op, 0, unknownErrorMessage, fmt.Errorf("create request: %w", err))
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if !opts.noAuth {
		if token, ok := c.tokens.Token(); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	c.logger.Debug("api request", "op", op, "method", method, "endpoint", endpoint)

	resp, err := c.http.Do(req)
	if err != nil {
		return wrapError(op, 0, unknownErrorMessage, fmt.Errorf("execute request: %w", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return wrapError(op, resp.StatusCode, unknownErrorMessage, fmt.Errorf("read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return wrapError(op, resp.StatusCode, extractDetail(body), nil)
	}

	// 204 means no content; callers get the zero value.
	if resp.StatusCode == http.StatusNoContent || out == nil {
		return nil
	}

	if err := json.Unmarshal(body, out); err != nil {
		return wrapError(op, resp.StatusCode, unknownErrorMessage, fmt.Errorf("decode response: %w", err))
	}
	return nil
}

// Login exchanges credentials for a token. Unlike every other call this
// sends a form-encoded body with the user's email in the username field
// (OAuth2 password grant shape), and never attaches an existing bearer
// token: it is the operation that produces one.
func (c *Client) Login(ctx context.Context, email, password string) (*TokenResponse, error) {
	const op = "login"

	if err := c.limiter.Wait(ctx, "auth"); err != nil {
		return nil, wrapError(op, 0, unknownErrorMessage, fmt.Errorf("rate limit wait: %w", err))
	}

	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/login", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, wrapError(op, 0, unknownErrorMessage, fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("api request", "op", op, "method", http.MethodPost, "endpoint", "/auth/login")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, wrapError(op, 0, unknownErrorMessage, fmt.Errorf("execute request: %w", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, wrapError(op, resp.StatusCode, unknownErrorMessage, fmt.Errorf("read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, wrapError(op, resp.StatusCode, extractDetail(body), nil)
	}

	var tokens TokenResponse
	if err := json.Unmarshal(body, &tokens); err != nil {
		return nil, wrapError(op, resp.StatusCode, unknownErrorMessage, fmt.Errorf("decode response: %w", err))
	}
	return &tokens, nil
}

// extractDetail pulls the detail field from a server error body, falling
// back to the generic message when the body is not parseable JSON.
func extractDetail(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil || eb.Detail == "" {
		return unknownErrorMessage
	}
	return eb.Detail
}

// limiterKey buckets endpoints by their first path segment.
func limiterKey(endpoint string) string {
	trimmed := strings.TrimPrefix(endpoint, "/")
	if i := strings.IndexByte(trimmed, '/'); i > 0 {
		return trimmed[:i]
	}
	if trimmed == "" {
		return "root"
	}
	return trimmed
}
