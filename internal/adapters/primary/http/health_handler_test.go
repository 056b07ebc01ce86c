package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthHandler(t *testing.T) {
	t.Run("liveness never touches the store", func(t *testing.T) {
		touched := false
		h := NewHealthHandler(pingerFunc(func(context.Context) error {
			touched = true
			return nil
		}), "1.2.3")

		rec := httptest.NewRecorder()
		h.HandleLiveness(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.False(t, touched)
	})

	t.Run("health reports version and store latency", func(t *testing.T) {
		h := NewHealthHandler(pingerFunc(func(context.Context) error { return nil }), "1.2.3")

		rec := httptest.NewRecorder()
		h.HandleHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var resp struct {
			Status  string `json:"status"`
			Version string `json:"version"`
			Store   struct {
				Status  string `json:"status"`
				Latency string `json:"latency"`
			} `json:"store"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "ok", resp.Status)
		assert.Equal(t, "1.2.3", resp.Version)
		assert.Equal(t, "ok", resp.Store.Status)
		assert.NotEmpty(t, resp.Store.Latency)
	})

	t.Run("readiness degrades when the store is unreachable", func(t *testing.T) {
		h := NewHealthHandler(pingerFunc(func(context.Context) error {
			return errors.New("database is locked")
		}), "1.2.3")

		rec := httptest.NewRecorder()
		h.HandleReadiness(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		var resp struct {
			Status string `json:"status"`
			Store  struct {
				Message string `json:"message"`
			} `json:"store"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "unavailable", resp.Status)
		assert.Equal(t, "database is locked", resp.Store.Message)
	})
}
