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

// AdminHandler exposes backup, restore, and the factory reset.
type AdminHandler struct {
	adminService ports.AdminService
	errorHandler *ErrorHandler
	logger       *slog.Logger
}

func NewAdminHandler(adminService ports.AdminService, errorHandler *ErrorHandler, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		errorHandler: errorHandler,
		logger:       logger.With("handler", "admin"),
	}
}

func (h *AdminHandler) RegisterRoutes(r chi.Router) {
	r.Get("/backup", h.HandleBackup)
	r.Post("/restore", h.HandleRestore)
	r.Post("/clear", h.HandleClearAll)
}

// HandleBackup handles GET /admin/backup
func (h *AdminHandler) HandleBackup(w http.ResponseWriter, r *http.Request) {
	backup, err := h.adminService.Backup(r.Context())
	if HandleError(w, r, err, h.errorHandler) {
		return
	}
	WriteJSON(w, http.StatusOK, backup)
}

// HandleRestore handles POST /admin/restore
func (h *AdminHandler) HandleRestore(w http.ResponseWriter, r *http.Request) {
	var backup domain.Backup
	if err := json.NewDecoder(r.Body).Decode(&backup); err != nil {
		h.errorHandler.Handle(w, r, apperrors.NewBadRequestError(err, "Invalid backup payload"))
		return
	}

	h.logger.Info("restoring from backup", "backup_time", backup.BackupTime, "request_id", GetRequestID(r.Context()))
	if err := h.adminService.Restore(r.Context(), backup); HandleError(w, r, err, h.errorHandler) {
		return
	}
	WriteMessage(w, "restore complete")
}

// HandleClearAll handles POST /admin/clear
func (h *AdminHandler) HandleClearAll(w http.ResponseWriter, r *http.Request) {
	h.logger.Warn("clearing all data", "request_id", GetRequestID(r.Context()))
	if err := h.adminService.ClearAll(r.Context()); HandleError(w, r, err, h.errorHandler) {
		return
	}
	WriteMessage(w, "all data cleared")
}
