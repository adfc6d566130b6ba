package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient() *Client {
	return New(Config{
		Timeout:        5 * time.Second,
		MaxRetries:     2,
		BaseRetryDelay: time.Millisecond,
		MaxRetryDelay:  10 * time.Millisecond,
	})
}

// TestClient_PostJSON tests a successful round trip
func TestClient_PostJSON(t *testing.T) {
	var receivedRequestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedRequestID = r.Header.Get(RequestIDHeader)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"echo":"hello"}`))
	}))
	defer server.Close()

	var out struct {
		Echo string `json:"echo"`
	}
	requestID, statusCode, err := testClient().PostJSON(context.Background(), server.URL, nil, map[string]string{"msg": "hello"}, &out)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, statusCode)
	assert.Equal(t, "hello", out.Echo)
	assert.NotEmpty(t, requestID)
	assert.Equal(t, requestID, receivedRequestID)
}

// TestClient_PostJSON_RetriesOnServerError tests backoff-and-retry on 5xx
func TestClient_PostJSON_RetriesOnServerError(t *testing.T) {
	var attempts int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt64(&attempts, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	_, statusCode, err := testClient().PostJSON(context.Background(), server.URL, nil, map[string]string{}, nil)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, statusCode)
	assert.Equal(t, int64(3), atomic.LoadInt64(&attempts))
}

// TestClient_PostJSON_RetriesOnRateLimit tests backoff-and-retry on 429
func TestClient_PostJSON_RetriesOnRateLimit(t *testing.T) {
	var attempts int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt64(&attempts, 1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	_, statusCode, err := testClient().PostJSON(context.Background(), server.URL, nil, map[string]string{}, nil)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, statusCode)
}

// TestClient_PostJSON_ExhaustedRetries tests the error after the retry
// budget is spent
func TestClient_PostJSON_ExhaustedRetries(t *testing.T) {
	var attempts int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&attempts, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, statusCode, err := testClient().PostJSON(context.Background(), server.URL, nil, map[string]string{}, nil)

	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, statusCode)
	// MaxRetries=2 means 3 attempts total
	assert.Equal(t, int64(3), atomic.LoadInt64(&attempts))
}

// TestClient_PostJSON_NoRetryOnClientError tests that 4xx (other than 429)
// fails immediately
func TestClient_PostJSON_NoRetryOnClientError(t *testing.T) {
	var attempts int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&attempts, 1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"bad request"}`))
	}))
	defer server.Close()

	_, statusCode, err := testClient().PostJSON(context.Background(), server.URL, nil, map[string]string{}, nil)

	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, statusCode)
	assert.Equal(t, int64(1), atomic.LoadInt64(&attempts))
	assert.Contains(t, err.Error(), "unexpected status 400")
}

// TestClient_PostJSON_CustomHeaders tests header propagation
func TestClient_PostJSON_CustomHeaders(t *testing.T) {
	var authHeader string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	_, _, err := testClient().PostJSON(context.Background(), server.URL, map[string]string{
		"Authorization": "Bearer test-key",
	}, map[string]string{}, nil)

	require.NoError(t, err)
	assert.Equal(t, "Bearer test-key", authHeader)
}

// TestClient_PostJSON_ContextCancellation tests that a cancelled context
// aborts retries
func TestClient_PostJSON_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := New(Config{
		MaxRetries:     5,
		BaseRetryDelay: time.Second,
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := client.PostJSON(ctx, server.URL, nil, map[string]string{}, nil)
	require.Error(t, err)
}

// TestClient_Get tests the GET helper
func TestClient_Get(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get(RequestIDHeader))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	resp, err := testClient().Get(context.Background(), server.URL, nil)

	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// TestRetryDelay tests exponential backoff capping
func TestRetryDelay(t *testing.T) {
	client := New(Config{
		BaseRetryDelay: time.Second,
		MaxRetryDelay:  5 * time.Second,
	})

	assert.Equal(t, time.Second, client.retryDelay(1))
	assert.Equal(t, 2*time.Second, client.retryDelay(2))
	assert.Equal(t, 4*time.Second, client.retryDelay(3))
	assert.Equal(t, 5*time.Second, client.retryDelay(4))
}
