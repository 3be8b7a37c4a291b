package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL + "/")
}

func TestHealth(t *testing.T) {
	c := serve(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/health", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"status":"healthy","uptime":12.5},"message":"ok","status":200}`))
	})

	h, err := c.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "healthy", h.Status)
	assert.InDelta(t, 12.5, h.Uptime, 0.001)
}

func TestHealthUnhealthyStatus(t *testing.T) {
	c := serve(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"status":"degraded"},"status":200}`))
	})

	_, err := c.Health(context.Background())
	assert.ErrorContains(t, err, "degraded")
}

func TestTopSendsQuery(t *testing.T) {
	c := serve(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/leaderboard", r.URL.Path)
		assert.Equal(t, "star", r.URL.Query().Get("game"))
		assert.Equal(t, "3", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(`{"data":[{"id":"1","nickname":"Bob","score":200,"game":"star","timestamp":"2024-01-01T00:00:00Z"},{"id":"2","nickname":"Alice","score":100,"game":"star","timestamp":"2024-01-01T00:00:01Z"}],"status":200}`))
	})

	entries, err := c.Top(context.Background(), "star", 3)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Bob", entries[0].Nickname)
	assert.Equal(t, 100, entries[1].Score)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 1, 0, time.UTC), entries[1].Timestamp.UTC())
}

func TestTopOmitsEmptyParams(t *testing.T) {
	c := serve(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.RawQuery)
		_, _ = w.Write([]byte(`{"data":[],"status":200}`))
	})

	entries, err := c.Top(context.Background(), "", 0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestErrorEnvelope(t *testing.T) {
	c := serve(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"message":"slow down","code":"RATE_LIMIT","status":429}`))
	})

	_, err := c.Top(context.Background(), "star", 1)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
	assert.Equal(t, "RATE_LIMIT", apiErr.Code)
	assert.Equal(t, "slow down", apiErr.Message)
}

func TestCanceledContext(t *testing.T) {
	c := serve(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request must not be sent")
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Health(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
