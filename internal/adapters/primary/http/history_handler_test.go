package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lorrc/agent-toolbar-backend/internal/core/domain"
	"github.com/lorrc/agent-toolbar-backend/internal/core/mocks"
)

func newHistoryRouter(historyRepo *mocks.MockHistoryRepository, activityRepo *mocks.MockActivityLogRepository) chi.Router {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewHistoryHandler(historyRepo, activityRepo, NewErrorHandler(logger), logger)
	r := chi.NewRouter()
	r.Route("/history", handler.RegisterRoutes)
	return r
}

func TestHistoryHandler_Day(t *testing.T) {
	t.Run("known day", func(t *testing.T) {
		historyRepo := new(mocks.MockHistoryRepository)
		activityRepo := new(mocks.MockActivityLogRepository)
		historyRepo.On("Day", mock.Anything, domain.LocalDayKey("2026-03-04")).
			Return(domain.DayRecord{Chats: 40, ChatHours: 4}, true, nil)
		router := newHistoryRouter(historyRepo, activityRepo)

		req := httptest.NewRequest(http.MethodGet, "/history/2026-03-04", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp struct {
			Data domain.DayRecord `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, 40, resp.Data.Chats)
	})

	t.Run("unknown day yields 404", func(t *testing.T) {
		historyRepo := new(mocks.MockHistoryRepository)
		activityRepo := new(mocks.MockActivityLogRepository)
		historyRepo.On("Day", mock.Anything, domain.LocalDayKey("1999-01-01")).
			Return(domain.DayRecord{}, false, nil)
		router := newHistoryRouter(historyRepo, activityRepo)

		req := httptest.NewRequest(http.MethodGet, "/history/1999-01-01", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusNotFound, rec.Code)
		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "DAY_NOT_FOUND", resp.Code)
	})
}

func TestHistoryHandler_Activity(t *testing.T) {
	historyRepo := new(mocks.MockHistoryRepository)
	activityRepo := new(mocks.MockActivityLogRepository)
	activityRepo.On("ForDay", mock.Anything, domain.LocalDayKey("2026-03-04")).
		Return([]domain.ActivityEntry{
			{
				Time:     time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC),
				Day:      "2026-03-04",
				Queue:    domain.QueueChats,
				Delta:    1,
				NewValue: 1,
				Source:   "toolbar",
			},
		}, nil)
	router := newHistoryRouter(historyRepo, activityRepo)

	req := httptest.NewRequest(http.MethodGet, "/history/2026-03-04/activity", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Data  []domain.ActivityEntry `json:"data"`
		Count int                    `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, domain.QueueChats, resp.Data[0].Queue)
}

func TestHistoryHandler_ClearActivity(t *testing.T) {
	historyRepo := new(mocks.MockHistoryRepository)
	activityRepo := new(mocks.MockActivityLogRepository)
	activityRepo.On("ClearDay", mock.Anything, domain.LocalDayKey("2026-03-04")).Return(nil)
	router := newHistoryRouter(historyRepo, activityRepo)

	req := httptest.NewRequest(http.MethodDelete, "/history/2026-03-04/activity", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	activityRepo.AssertExpectations(t)
}
