package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestLogger(t *testing.T) {
	newLogger := func(buf *bytes.Buffer) *slog.Logger {
		return slog.New(slog.NewTextHandler(buf, nil))
	}

	t.Run("logs method, status and size", func(t *testing.T) {
		var buf bytes.Buffer
		h := RequestLogger(newLogger(&buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte("done"))
		}))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/counters/increment", nil))

		require.Equal(t, http.StatusCreated, rec.Code)
		out := buf.String()
		assert.Contains(t, out, "status=201")
		assert.Contains(t, out, "bytes=4")
		assert.Contains(t, out, "path=/api/v1/counters/increment")
	})

	t.Run("successful health checks stay quiet", func(t *testing.T) {
		var buf bytes.Buffer
		h := RequestLogger(newLogger(&buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))

		assert.Empty(t, buf.String())
	})

	t.Run("failing health checks are logged", func(t *testing.T) {
		var buf bytes.Buffer
		h := RequestLogger(newLogger(&buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

		assert.Contains(t, buf.String(), "status=503")
	})
}

func TestRecoveryLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	h := RecoveryLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/schedule", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"An unexpected error occurred","code":"INTERNAL_ERROR"}`, rec.Body.String())
	assert.Contains(t, buf.String(), "panic recovered")
}
