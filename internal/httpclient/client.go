// Package httpclient provides a shared HTTP client for provider backends.
// It includes retry with exponential backoff, request ID tagging, and
// JSON request/response helpers.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// RequestIDHeader is attached to every outgoing request so failures can be
// correlated with backend logs.
const RequestIDHeader = "X-Request-ID"

// Config configures the HTTP client
type Config struct {
	Timeout        time.Duration
	MaxRetries     int
	BaseRetryDelay time.Duration
	MaxRetryDelay  time.Duration
	UserAgent      string
}

// Client wraps http.Client with retry logic for provider API calls.
// Requests are retried on 429 and 5xx responses and on transport errors,
// with exponential backoff between attempts.
type Client struct {
	client *http.Client
	config Config
}

// New creates a client with defaults filled in for zero-valued config fields
func New(config Config) *Client {
	if config.Timeout == 0 {
		config.Timeout = 60 * time.Second
	}
	if config.MaxRetries == 0 {
		config.MaxRetries = 3
	}
	if config.BaseRetryDelay == 0 {
		config.BaseRetryDelay = time.Second
	}
	if config.MaxRetryDelay == 0 {
		config.MaxRetryDelay = 30 * time.Second
	}
	if config.UserAgent == "" {
		config.UserAgent = "provider-kit/1.0"
	}

	return &Client{
		client: &http.Client{Timeout: config.Timeout},
		config: config,
	}
}

// retryDelay computes the exponential backoff delay for the given attempt,
// capped at MaxRetryDelay.
func (c *Client) retryDelay(attempt int) time.Duration {
	delay := time.Duration(float64(c.config.BaseRetryDelay) * math.Pow(2, float64(attempt-1)))
	if delay > c.config.MaxRetryDelay {
		delay = c.config.MaxRetryDelay
	}
	return delay
}

func retryableStatus(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests || statusCode >= 500
}

// PostJSON sends a JSON POST request and decodes the JSON response into out.
// The request body is re-marshaled for each retry attempt so retries never
// reuse a consumed body. Returns the request ID assigned to the call, the
// final HTTP status code (0 on transport failure), and an error for
// transport failures or non-2xx responses.
func (c *Client) PostJSON(ctx context.Context, url string, headers map[string]string, payload interface{}, out interface{}) (requestID string, statusCode int, err error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", 0, fmt.Errorf("marshal request: %w", err)
	}

	requestID = uuid.NewString()

	var resp *http.Response
	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(c.retryDelay(attempt)):
			case <-ctx.Done():
				return requestID, 0, ctx.Err()
			}
		}

		req, reqErr := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if reqErr != nil {
			return requestID, 0, fmt.Errorf("build request: %w", reqErr)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("User-Agent", c.config.UserAgent)
		req.Header.Set(RequestIDHeader, requestID)
		for key, value := range headers {
			req.Header.Set(key, value)
		}

		resp, err = c.client.Do(req)
		if err != nil {
			continue
		}
		if retryableStatus(resp.StatusCode) && attempt < c.config.MaxRetries {
			_ = resp.Body.Close()
			resp = nil
			continue
		}
		break
	}

	if err != nil {
		return requestID, 0, err
	}
	if resp == nil {
		return requestID, 0, fmt.Errorf("no response after %d attempts", c.config.MaxRetries+1)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return requestID, resp.StatusCode, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return requestID, resp.StatusCode, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, truncate(string(respBody), 512))
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return requestID, resp.StatusCode, fmt.Errorf("decode response: %w", err)
		}
	}

	return requestID, resp.StatusCode, nil
}

// Get sends a GET request with the client's default headers. Used by
// provider health checks.
func (c *Client) Get(ctx context.Context, url string, headers map[string]string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set(RequestIDHeader, uuid.NewString())
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	return c.client.Do(req)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
