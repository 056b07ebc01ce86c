package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/lorrc/agent-toolbar-backend/internal/core/domain"
	apperrors "github.com/lorrc/agent-toolbar-backend/internal/core/errors"
	"github.com/lorrc/agent-toolbar-backend/internal/core/ports"
)

// SettingsHandler serves the synced user settings.
type SettingsHandler struct {
	settingsService ports.SettingsService
	errorHandler    *ErrorHandler
	logger          *slog.Logger
}

func NewSettingsHandler(settingsService ports.SettingsService, errorHandler *ErrorHandler, logger *slog.Logger) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
		errorHandler:    errorHandler,
		logger:          logger.With("handler", "settings"),
	}
}

func (h *SettingsHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleGet)
	r.Put("/", h.HandleUpdate)
}

// HandleGet handles GET /settings
func (h *SettingsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingsService.Get(r.Context())
	if HandleError(w, r, err, h.errorHandler) {
		return
	}
	WriteSuccess(w, settings)
}

// HandleUpdate handles PUT /settings
func (h *SettingsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req domain.Settings
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorHandler.Handle(w, r, apperrors.NewBadRequestError(err, "Invalid request body"))
		return
	}

	settings, err := h.settingsService.Update(r.Context(), req)
	if HandleError(w, r, err, h.errorHandler) {
		return
	}
	WriteSuccess(w, settings)
}
