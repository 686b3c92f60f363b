// Package backend is a typed client for the QueenCare REST API.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/cookiejar"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// ErrUnavailable marks connectivity failures: the request never completed or
// the response could not be decoded.
var ErrUnavailable = errors.New("backend unavailable")

// APIError is a non-2xx response. Message carries the backend's "error" field
// and may be empty.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend status %d", e.Status)
	}
	return fmt.Sprintf("backend status %d: %s", e.Status, e.Message)
}

// Client talks to the backend on behalf of a single visitor. Each Client owns
// a cookie jar so the backend's session cookie follows that visitor only.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *log.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithTransport sets the round tripper shared by clients. Use NewTransport
// for the instrumented default.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) { c.http.Transport = rt }
}

// WithTimeout bounds every request. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithLogger sets the logger used for transport failures.
func WithLogger(logger *log.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewTransport returns an otelhttp-instrumented transport suitable for
// sharing between visitor clients.
func NewTransport() http.RoundTripper {
	return otelhttp.NewTransport(http.DefaultTransport.(*http.Transport).Clone())
}

// New builds a Client rooted at baseURL (no trailing slash).
func New(baseURL string, opts ...Option) *Client {
	jar, _ := cookiejar.New(nil)
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Jar: jar},
		logger:  log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type errorBody struct {
	Error string `json:"error"`
}

// do sends body as JSON and decodes a JSON response into out. A non-2xx
// status becomes *APIError; anything that prevents reading a JSON reply
// becomes ErrUnavailable.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	resp, err := c.send(ctx, method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Printf("backend: read %s %s error=%v", method, path, err)
		return fmt.Errorf("%w: read response: %v", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		if err := json.Unmarshal(raw, &eb); err != nil {
			c.logger.Printf("backend: %s %s status=%d undecodable body", method, path, resp.StatusCode)
			return fmt.Errorf("%w: status %d with undecodable body", ErrUnavailable, resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: eb.Error}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		c.logger.Printf("backend: %s %s decode error=%v", method, path, err)
		return fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Printf("backend: %s %s error=%v", method, path, err)
		return nil, fmt.Errorf("%w: %s %s: %v", ErrUnavailable, method, path, err)
	}
	return resp, nil
}
