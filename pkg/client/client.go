// Package client is the JSON-over-HTTP adapter for the snack-shop API. It
// performs no retries and holds no state beyond the base URL and session:
// transient failures surface to the caller as typed errors.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// TokenSource provides the bearer token attached to every request. An empty
// token leaves the request anonymous.
type TokenSource interface {
	Token() string
}

// Client talks to one API deployment.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
}

// New returns a client for the API at baseURL. tokens may be nil for
// endpoints that need no session.
func New(baseURL string, tokens TokenSource) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
		tokens:  tokens,
	}
}

type errorBody struct {
	Error string `json:"error"`
}

// do issues one request and decodes a 2xx body into out (when non-nil).
// notFound is attached to 404 responses so callers get a typed stale-id
// error; a nil notFound maps 404 to a ValidationError like any other 4xx.
func (c *Client) do(ctx context.Context, method, path string, body, out any, notFound *NotFoundError) error {
	var buf io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		buf = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, buf)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if t := c.tokens.Token(); t != "" {
			req.Header.Set("Authorization", "Bearer "+t)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	case resp.StatusCode == http.StatusNotFound && notFound != nil:
		return notFound
	case resp.StatusCode >= 500:
		return &ServerError{StatusCode: resp.StatusCode, Message: readError(resp.Body)}
	default:
		return &ValidationError{StatusCode: resp.StatusCode, Message: readError(resp.Body)}
	}
}

func readError(r io.Reader) string {
	var eb errorBody
	if err := json.NewDecoder(r).Decode(&eb); err == nil && eb.Error != "" {
		return eb.Error
	}
	return "request rejected"
}
