package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/shift-agent/shift-agent/internal/client/session"
)

const (
	DefaultTimeout = 10 * time.Second
	// LongTimeout applies to AI generation and evaluation. It outlasts the
	// server's two-minute AI deadline so its 504 detail reaches the caller.
	LongTimeout = 150 * time.Second
)

var publicPaths = map[string]bool{
	"/login":   true,
	"/signin":  true,
	"/sign-in": true,
}

// IsPublicPath reports whether path is sent without credentials.
func IsPublicPath(path string) bool {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	return publicPaths["/"+strings.Trim(path, "/")]
}

// AuthFailureFunc is notified once for every authorization failure, after the
// session has been cleared.
type AuthFailureFunc func(ctx context.Context, err *AuthError)

type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
	// Long selects the long timeout.
	Long bool
}

// Client is the single pipeline every backend call goes through.
type Client struct {
	baseURL       string
	sessions      *session.Manager
	httpClient    *http.Client
	longClient    *http.Client
	onAuthFailure AuthFailureFunc
	logger        *zap.Logger
}

type Option func(*Client)

func WithTimeouts(def, long time.Duration) Option {
	return func(c *Client) {
		if def > 0 {
			c.httpClient.Timeout = def
		}
		if long > 0 {
			c.longClient.Timeout = long
		}
	}
}

// WithTransport replaces the round tripper of both timeout classes.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.httpClient.Transport = rt
		c.longClient.Transport = rt
	}
}

func WithAuthFailureHook(fn AuthFailureFunc) Option {
	return func(c *Client) {
		c.onAuthFailure = fn
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

func New(baseURL string, sessions *session.Manager, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		sessions:   sessions,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		longClient: &http.Client{Timeout: LongTimeout},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Sessions() *session.Manager {
	return c.sessions
}

func (c *Client) Logger() *zap.Logger {
	return c.logger
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: path, Query: query}, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: path, Body: body}, out)
}

// PostLong is Post with the long timeout.
func (c *Client) PostLong(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: path, Body: body, Long: true}, out)
}

// Do sends r and decodes a 2xx JSON body into out (when out is non-nil).
//
// Requests to non-public paths are refused with *AuthError before reaching the
// network when the session is expired. 401 and 403 responses clear the session
// and return *AuthError; other non-2xx statuses return *HTTPError. Transport
// errors are returned as the http.Client produced them.
func (c *Client) Do(ctx context.Context, r Request, out any) error {
	method := r.Method
	if method == "" {
		method = http.MethodGet
	}

	var token *oauth2.Token
	if !IsPublicPath(r.Path) {
		s, ok := c.sessions.ValidSession(ctx)
		if !ok {
			return c.authFailure(ctx, &AuthError{Reason: ReasonExpired, Method: method, Path: r.Path})
		}
		token = &oauth2.Token{AccessToken: s.Token, TokenType: s.TokenType, Expiry: s.ExpiresAt}
	}

	req, err := c.newRequest(ctx, method, r)
	if err != nil {
		return err
	}
	if token != nil {
		token.SetAuthHeader(req)
	}

	hc := c.httpClient
	if r.Long {
		hc = c.longClient
	}

	start := time.Now()
	resp, err := hc.Do(req)
	if err != nil {
		c.logger.Debug("request failed",
			zap.String("method", method),
			zap.String("path", r.Path),
			zap.Duration("latency", time.Since(start)),
			zap.Error(err))
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	c.logger.Debug("request",
		zap.String("method", method),
		zap.String("path", r.Path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
		zap.String("request_id", req.Header.Get("X-Request-Id")))

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		reason := ReasonUnauthorized
		if resp.StatusCode == http.StatusForbidden {
			reason = ReasonForbidden
		}
		detail, msg := parseErrorBody(body)
		if detail == "" {
			detail = msg
		}
		return c.authFailure(ctx, &AuthError{
			Reason: reason,
			Status: resp.StatusCode,
			Method: method,
			Path:   r.Path,
			Detail: detail,
		})

	case resp.StatusCode < 200 || resp.StatusCode > 299:
		detail, msg := parseErrorBody(body)
		return &HTTPError{
			Status:  resp.StatusCode,
			Method:  method,
			Path:    r.Path,
			Detail:  detail,
			Message: msg,
			Body:    body,
		}
	}

	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, r.Path, err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method string, r Request) (*http.Request, error) {
	u := c.baseURL + "/" + strings.TrimLeft(r.Path, "/")
	if len(r.Query) > 0 {
		u += "?" + r.Query.Encode()
	}

	var body io.Reader
	if r.Body != nil {
		data, err := json.Marshal(r.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if r.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	return req, nil
}

// authFailure is the one place a session is torn down for authorization
// reasons.
func (c *Client) authFailure(ctx context.Context, aerr *AuthError) error {
	if err := c.sessions.Clear(ctx); err != nil {
		c.logger.Warn("failed to clear session", zap.Error(err))
	}
	c.logger.Info("authorization failure",
		zap.String("reason", string(aerr.Reason)),
		zap.String("path", aerr.Path),
		zap.Int("status", aerr.Status))
	if c.onAuthFailure != nil {
		c.onAuthFailure(ctx, aerr)
	}
	return aerr
}
