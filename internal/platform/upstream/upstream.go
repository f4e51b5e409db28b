// Package upstream performs outbound HTTP calls to third-party APIs behind a
// circuit breaker. Calls are made once; there is no retry or backoff.
package upstream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

// maxBodyBytes bounds how much of an upstream response is read.
const maxBodyBytes = 4 << 20

var (
	ErrRateLimited  = errors.New("rate limited")
	ErrServerError  = errors.New("server error")
	ErrUnexpected   = errors.New("unexpected status code")
	ErrCircuitOpen  = errors.New("circuit breaker open")
	ErrNoHTTPClient = errors.New("http client not configured")
)

// Client wraps an http.Client and a named circuit breaker.
type Client struct {
	name    string
	http    *http.Client
	circuit *gobreaker.CircuitBreaker
}

// New creates a Client. The breaker opens after five consecutive failures
// and half-opens again after a minute.
func New(name string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
	return &Client{name: name, http: httpClient, circuit: cb}
}

// Name returns the breaker name.
func (c *Client) Name() string {
	return c.name
}

// GetBody issues a GET to rawURL and returns the response body of a 2xx
// response. Non-2xx statuses are returned as errors wrapping ErrRateLimited,
// ErrServerError or ErrUnexpected.
func (c *Client) GetBody(ctx context.Context, rawURL string) ([]byte, error) {
	if c == nil || c.http == nil {
		return nil, ErrNoHTTPClient
	}

	result, err := c.circuit.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, fmt.Errorf("building %s request: %w", c.name, err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, fmt.Errorf("calling %s: %w", c.name, err)
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		if err != nil {
			return nil, fmt.Errorf("reading %s response: %w", c.name, err)
		}

		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			return nil, fmt.Errorf("%s: %w", c.name, ErrRateLimited)
		case resp.StatusCode >= 500:
			return nil, fmt.Errorf("%s: %w: %d", c.name, ErrServerError, resp.StatusCode)
		case resp.StatusCode < 200 || resp.StatusCode >= 300:
			return nil, fmt.Errorf("%s: %w: %d", c.name, ErrUnexpected, resp.StatusCode)
		}
		return body, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%s: %w: %v", c.name, ErrCircuitOpen, err)
		}
		return nil, err
	}

	body, ok := result.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected result type from circuit breaker")
	}
	return body, nil
}
