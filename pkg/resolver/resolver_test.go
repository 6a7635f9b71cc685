package resolver_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/openfund/ledger/pkg/resolver"
)

func newClient(baseURL string, maxRetries int) *resolver.Client {
	c := resolver.NewClient(baseURL, time.Second, maxRetries, slog.New(slog.NewTextHandler(io.Discard, nil)))
	c.RetryDelay = time.Millisecond // keep retry tests fast
	return c
}

func TestResolveReceiver(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/identities/ext-9", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"internal_id": "principal-1"}`))
		}))
		defer server.Close()

		c := newClient(server.URL, 2)

		id, err := c.ResolveReceiver(context.Background(), "ext-9")

		assert.NoError(t, err)
		assert.Equal(t, "principal-1", id)
	})

	t.Run("Retries Then Succeeds", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) < 3 {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			w.Write([]byte(`{"internal_id": "principal-1"}`))
		}))
		defer server.Close()

		c := newClient(server.URL, 2)

		id, err := c.ResolveReceiver(context.Background(), "ext-9")

		assert.NoError(t, err)
		assert.Equal(t, "principal-1", id)
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("Fails Closed After Retry Budget", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		c := newClient(server.URL, 2)

		_, err := c.ResolveReceiver(context.Background(), "ext-9")

		assert.ErrorIs(t, err, resolver.ErrUpstreamUnavailable)
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("Empty Internal Id Is An Error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"internal_id": ""}`))
		}))
		defer server.Close()

		c := newClient(server.URL, 0)

		_, err := c.ResolveReceiver(context.Background(), "ext-9")

		assert.ErrorIs(t, err, resolver.ErrUpstreamUnavailable)
	})

	t.Run("Cancelled Context Stops Retrying", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		c := newClient(server.URL, 5)
		c.RetryDelay = 50 * time.Millisecond

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		_, err := c.ResolveReceiver(ctx, "ext-9")

		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}
