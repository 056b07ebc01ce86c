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

// CountersHandler serves the live daily tallies.
type CountersHandler struct {
	counterService ports.CounterService
	errorHandler   *ErrorHandler
	logger         *slog.Logger
}

func NewCountersHandler(counterService ports.CounterService, errorHandler *ErrorHandler, logger *slog.Logger) *CountersHandler {
	return &CountersHandler{
		counterService: counterService,
		errorHandler:   errorHandler,
		logger:         logger.With("handler", "counters"),
	}
}

func (h *CountersHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleGet)
	r.Put("/", h.HandleSet)
	r.Post("/increment", h.HandleIncrement)
}

type IncrementRequest struct {
	Queue    string `json:"queue"`
	Delta    int    `json:"delta"`
	Source   string `json:"source"`
	TicketID string `json:"ticketId"`
}

type SetCountersRequest struct {
	Chats   int `json:"chats"`
	Tickets int `json:"tickets"`
}

// HandleGet handles GET /counters
func (h *CountersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	counters, err := h.counterService.Get(r.Context())
	if HandleError(w, r, err, h.errorHandler) {
		return
	}
	WriteSuccess(w, counters)
}

// HandleIncrement handles POST /counters/increment
func (h *CountersHandler) HandleIncrement(w http.ResponseWriter, r *http.Request) {
	var req IncrementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorHandler.Handle(w, r, apperrors.NewBadRequestError(err, "Invalid request body"))
		return
	}

	counters, err := h.counterService.Increment(r.Context(), ports.IncrementParams{
		Queue:    domain.QueueMode(req.Queue),
		Delta:    req.Delta,
		Source:   req.Source,
		TicketID: req.TicketID,
	})
	if HandleError(w, r, err, h.errorHandler) {
		return
	}
	WriteSuccess(w, counters)
}

// HandleSet handles PUT /counters
func (h *CountersHandler) HandleSet(w http.ResponseWriter, r *http.Request) {
	var req SetCountersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorHandler.Handle(w, r, apperrors.NewBadRequestError(err, "Invalid request body"))
		return
	}

	counters, err := h.counterService.Set(r.Context(), domain.Counters{Chats: req.Chats, Tickets: req.Tickets})
	if HandleError(w, r, err, h.errorHandler) {
		return
	}
	WriteSuccess(w, counters)
}
