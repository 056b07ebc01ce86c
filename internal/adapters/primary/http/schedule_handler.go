package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/lorrc/agent-toolbar-backend/internal/core/ports"
)

// ScheduleHandler serves the shift schedule status and refresh trigger.
type ScheduleHandler struct {
	scheduleService ports.ScheduleService
	errorHandler    *ErrorHandler
	logger          *slog.Logger
}

func NewScheduleHandler(scheduleService ports.ScheduleService, errorHandler *ErrorHandler, logger *slog.Logger) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleService: scheduleService,
		errorHandler:    errorHandler,
		logger:          logger.With("handler", "schedule"),
	}
}

func (h *ScheduleHandler) RegisterRoutes(r chi.Router) {
	r.Get("/status", h.HandleStatus)
	r.Post("/refresh", h.HandleRefresh)
}

// HandleStatus handles GET /schedule/status
func (h *ScheduleHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.scheduleService.Status(r.Context())
	if HandleError(w, r, err, h.errorHandler) {
		return
	}
	WriteSuccess(w, status)
}

// HandleRefresh handles POST /schedule/refresh. The refresh always
// bypasses the cache; the background watcher already covers the
// cache-friendly path.
func (h *ScheduleHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	if err := h.scheduleService.Refresh(r.Context(), true); HandleError(w, r, err, h.errorHandler) {
		return
	}
	status, err := h.scheduleService.Status(r.Context())
	if HandleError(w, r, err, h.errorHandler) {
		return
	}
	WriteSuccess(w, status)
}
