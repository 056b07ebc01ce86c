package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/lorrc/agent-toolbar-backend/internal/core/ports"
)

// RolloverHandler exposes the operator escape hatches for the daily
// rollover.
type RolloverHandler struct {
	rolloverService ports.RolloverService
	clock           ports.Clock
	errorHandler    *ErrorHandler
	logger          *slog.Logger
}

func NewRolloverHandler(rolloverService ports.RolloverService, clock ports.Clock, errorHandler *ErrorHandler, logger *slog.Logger) *RolloverHandler {
	return &RolloverHandler{
		rolloverService: rolloverService,
		clock:           clock,
		errorHandler:    errorHandler,
		logger:          logger.With("handler", "rollover"),
	}
}

func (h *RolloverHandler) RegisterRoutes(r chi.Router) {
	r.Get("/anchor", h.HandleAnchor)
	r.Post("/force", h.HandleForce)
	r.Post("/archive", h.HandleArchive)
}

// HandleAnchor handles GET /rollover/anchor
func (h *RolloverHandler) HandleAnchor(w http.ResponseWriter, r *http.Request) {
	anchor, err := h.rolloverService.Anchor(r.Context())
	if HandleError(w, r, err, h.errorHandler) {
		return
	}
	WriteSuccess(w, map[string]string{"anchor": string(anchor)})
}

// HandleForce handles POST /rollover/force
func (h *RolloverHandler) HandleForce(w http.ResponseWriter, r *http.Request) {
	h.logger.Info("operator forced rollover", "request_id", GetRequestID(r.Context()))
	if err := h.rolloverService.Force(r.Context(), h.clock.Now()); HandleError(w, r, err, h.errorHandler) {
		return
	}
	WriteMessage(w, "rollover complete")
}

// HandleArchive handles POST /rollover/archive
func (h *RolloverHandler) HandleArchive(w http.ResponseWriter, r *http.Request) {
	if err := h.rolloverService.ArchiveOnly(r.Context(), h.clock.Now()); HandleError(w, r, err, h.errorHandler) {
		return
	}
	WriteMessage(w, "archive complete")
}
