package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lorrc/agent-toolbar-backend/internal/core/domain"
	apperrors "github.com/lorrc/agent-toolbar-backend/internal/core/errors"
	"github.com/lorrc/agent-toolbar-backend/internal/core/mocks"
	"github.com/lorrc/agent-toolbar-backend/internal/core/ports"
)

func newCountersRouter(svc ports.CounterService) chi.Router {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewCountersHandler(svc, NewErrorHandler(logger), logger)
	r := chi.NewRouter()
	r.Route("/counters", handler.RegisterRoutes)
	return r
}

func TestCountersHandler_Get(t *testing.T) {
	svc := new(mocks.MockCounterService)
	svc.On("Get", mock.Anything).Return(domain.Counters{Chats: 5, Tickets: 2}, nil)
	router := newCountersRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/counters", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Data domain.Counters `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, domain.Counters{Chats: 5, Tickets: 2}, resp.Data)
}

func TestCountersHandler_Increment(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := new(mocks.MockCounterService)
		svc.On("Increment", mock.Anything, ports.IncrementParams{
			Queue:  domain.QueueChats,
			Delta:  1,
			Source: "toolbar",
		}).Return(domain.Counters{Chats: 6}, nil)
		router := newCountersRouter(svc)

		body := bytes.NewBufferString(`{"queue":"chats","delta":1,"source":"toolbar"}`)
		req := httptest.NewRequest(http.MethodPost, "/counters/increment", body)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("invalid queue maps to 400", func(t *testing.T) {
		svc := new(mocks.MockCounterService)
		svc.On("Increment", mock.Anything, mock.Anything).Return(domain.Counters{}, apperrors.ErrInvalidQueue)
		router := newCountersRouter(svc)

		body := bytes.NewBufferString(`{"queue":"emails","delta":1}`)
		req := httptest.NewRequest(http.MethodPost, "/counters/increment", body)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "VALIDATION_ERROR", resp.Code)
	})

	t.Run("malformed body is rejected", func(t *testing.T) {
		svc := new(mocks.MockCounterService)
		router := newCountersRouter(svc)

		req := httptest.NewRequest(http.MethodPost, "/counters/increment", bytes.NewBufferString("{"))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "Increment", mock.Anything, mock.Anything)
	})
}

func TestCountersHandler_Set(t *testing.T) {
	svc := new(mocks.MockCounterService)
	svc.On("Set", mock.Anything, domain.Counters{Chats: 12, Tickets: 4}).Return(domain.Counters{Chats: 12, Tickets: 4}, nil)
	router := newCountersRouter(svc)

	body := bytes.NewBufferString(`{"chats":12,"tickets":4}`)
	req := httptest.NewRequest(http.MethodPut, "/counters", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}
