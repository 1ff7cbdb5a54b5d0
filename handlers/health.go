package handlers

import (
	"net/http"
	"time"

	"github.com/you/islandtransit/models"
)

// StatusProvider exposes the dataset in service and its last load status
type StatusProvider interface {
	Current() *models.Dataset
	Status() (models.LoadStatus, bool)
}

// HealthHandler handles HTTP requests for service health
type HealthHandler struct {
	provider StatusProvider
}

// NewHealthHandler creates a new handler with the given provider
func NewHealthHandler(provider StatusProvider) *HealthHandler {
	return &HealthHandler{provider: provider}
}

// HealthResponse is the JSON response for GET /health
type HealthResponse struct {
	Status     string               `json:"status"`
	SnapshotID string               `json:"snapshotId"`
	LoadedAt   time.Time            `json:"loadedAt"`
	Counts     models.DatasetCounts `json:"counts"`
	Failures   map[string]string    `json:"failures,omitempty"`
	Timestamp  time.Time            `json:"timestamp"`
}

// GetHealth handles GET /health
// Returns 503 until a load completed and whenever the last load failed
func (h *HealthHandler) GetHealth(w http.ResponseWriter, r *http.Request) {
	ds := h.provider.Current()
	status, loaded := h.provider.Status()

	response := HealthResponse{
		Status:     "ok",
		SnapshotID: ds.SnapshotID.String(),
		LoadedAt:   ds.LoadedAt,
		Counts:     ds.Counts(),
		Timestamp:  time.Now().UTC(),
	}

	code := http.StatusOK
	switch {
	case !loaded:
		response.Status = "loading"
		code = http.StatusServiceUnavailable
	case status.Failed:
		response.Status = "degraded"
		response.Failures = status.Failures()
		code = http.StatusServiceUnavailable
	}

	writeJSON(w, code, response)
}

// GetStatus handles GET /api/status
func (h *HealthHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	status, loaded := h.provider.Status()
	if !loaded {
		writeError(w, http.StatusServiceUnavailable, "Dataset not loaded yet", nil)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

// Healthz handles GET /healthz
func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
