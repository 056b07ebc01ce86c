package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/lorrc/agent-toolbar-backend/internal/core/ports"
)

// StatsHandler serves the weekly summary and streak.
type StatsHandler struct {
	statsService ports.StatsService
	clock        ports.Clock
	errorHandler *ErrorHandler
	logger       *slog.Logger
}

func NewStatsHandler(statsService ports.StatsService, clock ports.Clock, errorHandler *ErrorHandler, logger *slog.Logger) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
		clock:        clock,
		errorHandler: errorHandler,
		logger:       logger.With("handler", "stats"),
	}
}

func (h *StatsHandler) RegisterRoutes(r chi.Router) {
	r.Get("/summary", h.HandleSummary)
}

// HandleSummary handles GET /stats/summary
func (h *StatsHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	summary, err := h.statsService.Summary(ctx, h.clock.Now())
	if HandleError(w, r, err, h.errorHandler) {
		return
	}
	WriteSuccess(w, summary)
}
