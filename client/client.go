// Package client talks to the folio HTTP API on behalf of the admin console.
//
// A Client tracks at most one admin session. Every call that needs the
// session sends it as a bearer token; a 401 on such a call drops the
// session and notifies OnSessionChange listeners. With WithSessionCache the
// session also survives restarts.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"folio/config"
	"folio/models"
	"io"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var (
	// ErrNotConfigured is returned by every call when the API URL or key is missing.
	ErrNotConfigured = errors.New("folio API is not configured: set FOLIO_API_URL and FOLIO_API_KEY")
	// ErrUnauthorized means the call needs a session and there is none.
	ErrUnauthorized = errors.New("not signed in")
	// ErrInvalidCredentials is the sign-in rejection.
	ErrInvalidCredentials = errors.New("invalid login credentials")
)

// codeInvalidCredentials is the error code the API attaches to a login
// rejected for a wrong email or password.
const codeInvalidCredentials = "invalid_credentials"

// APIError is a non-2xx response from the API. Message is the API's own
// error text.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: %d %s", e.Status, http.StatusText(e.Status))
	}
	return e.Message
}

// Unwrap lets callers match 404 with models.ErrNotFound, 401 with
// ErrUnauthorized and a rejected login with ErrInvalidCredentials.
func (e *APIError) Unwrap() []error {
	var errs []error
	if e.Code == codeInvalidCredentials {
		errs = append(errs, ErrInvalidCredentials)
	}
	switch e.Status {
	case http.StatusNotFound:
		errs = append(errs, models.ErrNotFound)
	case http.StatusUnauthorized:
		errs = append(errs, ErrUnauthorized)
	}
	return errs
}

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	limiter *rate.Limiter
	logger  *zap.Logger
	cache   SessionCache

	mu        sync.Mutex
	session   *models.Session
	listeners map[int]func(*models.Session)
	nextID    int
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithSessionCache keeps the session in cache so a later Client built on
// the same cache starts signed in.
func WithSessionCache(cache SessionCache) Option {
	return func(c *Client) { c.cache = cache }
}

// WithRateLimit throttles outgoing requests.
func WithRateLimit(limit rate.Limit, burst int) Option {
	return func(c *Client) { c.limiter = rate.NewLimiter(limit, burst) }
}

// New builds a client. A missing URL or key is not an error here; each
// call reports ErrNotConfigured instead.
func New(cfg config.ClientConfig, opts ...Option) *Client {
	c := &Client{
		baseURL:   cfg.APIURL,
		apiKey:    cfg.APIKey,
		http:      &http.Client{Timeout: 30 * time.Second},
		logger:    zap.NewNop(),
		listeners: map[int]func(*models.Session){},
	}
	for _, opt := range opts {
		opt(c)
	}
	if !c.Configured() {
		c.logger.Warn("folio API not configured, all calls will fail")
	}
	c.restoreSession()
	return c
}

// Configured reports whether both the API URL and key are set.
func (c *Client) Configured() bool {
	return c.baseURL != "" && c.apiKey != ""
}

// BaseURL is the API root requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type request struct {
	method      string
	path        string
	body        io.Reader
	contentType string
	auth        bool
}

func jsonBody(v any) (io.Reader, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}
	return bytes.NewReader(data), nil
}

// do sends r and decodes a successful response into out (if non-nil).
func (c *Client) do(ctx context.Context, r request, out any) error {
	if !c.Configured() {
		return ErrNotConfigured
	}

	var token string
	if r.auth {
		sess := c.currentSession()
		if sess == nil {
			return ErrUnauthorized
		}
		token = sess.AccessToken
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, r.method, c.baseURL+r.path, r.body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Accept", "application/json")
	if r.body != nil {
		ct := r.contentType
		if ct == "" {
			ct = "application/json"
		}
		req.Header.Set("Content-Type", ct)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", r.method, r.path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("api call",
		zap.String("method", r.method),
		zap.String("path", r.path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)))

	if resp.StatusCode >= 300 {
		apiErr := decodeError(resp)
		if r.auth && resp.StatusCode == http.StatusUnauthorized {
			c.setSession(nil)
		}
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s %s: %w", r.method, r.path, err)
	}
	return nil
}

func decodeError(resp *http.Response) *APIError {
	apiErr := &APIError{Status: resp.StatusCode}
	var body struct {
		Error string `json:"error"`
		Code  string `json:"code"`
	}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if json.Unmarshal(data, &body) == nil {
		apiErr.Message = body.Error
		apiErr.Code = body.Code
	}
	return apiErr
}
