package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/lorrc/agent-toolbar-backend/internal/core/domain"
	apperrors "github.com/lorrc/agent-toolbar-backend/internal/core/errors"
	"github.com/lorrc/agent-toolbar-backend/internal/core/ports"
)

// HistoryHandler serves archived day records and the activity log.
type HistoryHandler struct {
	historyRepo  ports.HistoryRepository
	activityRepo ports.ActivityLogRepository
	errorHandler *ErrorHandler
	logger       *slog.Logger
}

func NewHistoryHandler(
	historyRepo ports.HistoryRepository,
	activityRepo ports.ActivityLogRepository,
	errorHandler *ErrorHandler,
	logger *slog.Logger,
) *HistoryHandler {
	return &HistoryHandler{
		historyRepo:  historyRepo,
		activityRepo: activityRepo,
		errorHandler: errorHandler,
		logger:       logger.With("handler", "history"),
	}
}

func (h *HistoryHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleAll)
	r.Get("/{day}", h.HandleDay)
	r.Get("/{day}/activity", h.HandleActivity)
	r.Delete("/{day}/activity", h.HandleClearActivity)
}

// HandleAll handles GET /history
func (h *HistoryHandler) HandleAll(w http.ResponseWriter, r *http.Request) {
	history, err := h.historyRepo.All(r.Context())
	if HandleError(w, r, err, h.errorHandler) {
		return
	}
	WriteSuccess(w, history)
}

// HandleDay handles GET /history/{day}
func (h *HistoryHandler) HandleDay(w http.ResponseWriter, r *http.Request) {
	day := domain.LocalDayKey(chi.URLParam(r, "day"))
	rec, ok, err := h.historyRepo.Day(r.Context(), day)
	if HandleError(w, r, err, h.errorHandler) {
		return
	}
	if !ok {
		h.errorHandler.Handle(w, r, apperrors.ErrDayNotFound)
		return
	}
	WriteSuccess(w, rec)
}

// HandleActivity handles GET /history/{day}/activity
func (h *HistoryHandler) HandleActivity(w http.ResponseWriter, r *http.Request) {
	day := domain.LocalDayKey(chi.URLParam(r, "day"))
	entries, err := h.activityRepo.ForDay(r.Context(), day)
	if HandleError(w, r, err, h.errorHandler) {
		return
	}
	WriteList(w, entries)
}

// HandleClearActivity handles DELETE /history/{day}/activity
func (h *HistoryHandler) HandleClearActivity(w http.ResponseWriter, r *http.Request) {
	day := domain.LocalDayKey(chi.URLParam(r, "day"))
	if err := h.activityRepo.ClearDay(r.Context(), day); HandleError(w, r, err, h.errorHandler) {
		return
	}
	h.logger.Info("activity log cleared", "day", day)
	WriteNoContent(w)
}
