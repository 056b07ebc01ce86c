package http

import (
	"context"
	"net/http"
	"time"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler answers the toolbar's liveness and store checks. The
// engine serves a single local agent, so "unhealthy" here means the
// SQLite file is unusable, not that a replica should be rotated out.
type HealthHandler struct {
	store     Pinger
	startTime time.Time
	version   string
}

func NewHealthHandler(store Pinger, version string) *HealthHandler {
	return &HealthHandler{
		store:     store,
		startTime: time.Now(),
		version:   version,
	}
}

type storeCheck struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

type healthResponse struct {
	Status    string      `json:"status"`
	Timestamp string      `json:"timestamp"`
	Version   string      `json:"version,omitempty"`
	Uptime    string      `json:"uptime,omitempty"`
	Store     *storeCheck `json:"store,omitempty"`
}

// HandleLiveness reports that the process is up. It touches nothing,
// so the toolbar can distinguish "engine down" from "store broken".
func (h *HealthHandler) HandleLiveness(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, healthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// HandleReadiness reports whether the engine can serve requests,
// which for a local engine reduces to the store being reachable.
func (h *HealthHandler) HandleReadiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	check := h.checkStore(ctx)
	status, code := "ok", http.StatusOK
	if check.Status != "ok" {
		status, code = "unavailable", http.StatusServiceUnavailable
	}

	WriteJSON(w, code, healthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Store:     &check,
	})
}

// HandleHealth is the detailed check the toolbar's settings panel
// polls: version, uptime and store latency in one response.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	check := h.checkStore(ctx)
	status, code := "ok", http.StatusOK
	if check.Status != "ok" {
		status, code = "degraded", http.StatusServiceUnavailable
	}

	WriteJSON(w, code, healthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   h.version,
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Store:     &check,
	})
}

func (h *HealthHandler) checkStore(ctx context.Context) storeCheck {
	if h.store == nil {
		return storeCheck{Status: "error", Message: "store not configured"}
	}

	start := time.Now()
	err := h.store.Ping(ctx)
	latency := time.Since(start).String()

	if err != nil {
		return storeCheck{Status: "error", Message: err.Error(), Latency: latency}
	}
	return storeCheck{Status: "ok", Latency: latency}
}
