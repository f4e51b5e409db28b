package upstream_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valinor-ai/weatherbot/internal/platform/upstream"
)

func TestGetBody_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := upstream.New("test", srv.Client())
	body, err := c.GetBody(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(body))
}

func TestGetBody_StatusClassification(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusTooManyRequests, upstream.ErrRateLimited},
		{http.StatusBadGateway, upstream.ErrServerError},
		{http.StatusUnauthorized, upstream.ErrUnexpected},
	}

	for _, tt := range tests {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
		}))

		c := upstream.New("test", srv.Client())
		_, err := c.GetBody(context.Background(), srv.URL)
		srv.Close()

		require.Error(t, err)
		assert.ErrorIs(t, err, tt.want)
	}
}

func TestGetBody_NoRetry(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := upstream.New("test", srv.Client())
	_, err := c.GetBody(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestGetBody_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := upstream.New("test", srv.Client())
	for i := 0; i < 5; i++ {
		_, err := c.GetBody(context.Background(), srv.URL)
		require.ErrorIs(t, err, upstream.ErrServerError)
	}

	_, err := c.GetBody(context.Background(), srv.URL)
	require.Error(t, err)
	assert.ErrorIs(t, err, upstream.ErrCircuitOpen)
	assert.Equal(t, int32(5), calls.Load())
}

func TestGetBody_CancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := upstream.New("test", srv.Client())
	_, err := c.GetBody(ctx, srv.URL)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGetBody_NilClient(t *testing.T) {
	var c *upstream.Client
	_, err := c.GetBody(context.Background(), "http://example.invalid")
	assert.ErrorIs(t, err, upstream.ErrNoHTTPClient)
}
