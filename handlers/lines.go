package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/you/islandtransit/models"
	"github.com/you/islandtransit/repository"
)

// LineRepository defines the interface for line and schedule lookups
type LineRepository interface {
	GetLines(ctx context.Context, islandRoutesOnly bool) ([]models.Line, error)
	GetLineDetails(ctx context.Context, id models.LineID) (models.LineDetails, error)
	GetLineSchedules(ctx context.Context, id models.LineID, q models.ScheduleQuery) ([]models.Schedule, error)
}

// LineHandler handles HTTP requests for lines and their timetables
type LineHandler struct {
	repo LineRepository
}

// NewLineHandler creates a new handler with the given repository
func NewLineHandler(repo LineRepository) *LineHandler {
	return &LineHandler{repo: repo}
}

// GetAllLinesResponse is the JSON response structure for GET /api/lines
type GetAllLinesResponse struct {
	Lines []models.Line `json:"lines"`
	Count int           `json:"count"`
}

// LineSchedulesResponse is the JSON response structure for
// GET /api/lines/{lineId}/schedules
type LineSchedulesResponse struct {
	LineID    models.LineID     `json:"lineId"`
	Direction models.Direction  `json:"direction,omitempty"`
	Day       string            `json:"day,omitempty"`
	Schedules []models.Schedule `json:"schedules"`
	Count     int               `json:"count"`
}

// GetAllLines handles GET /api/lines
// ?island_routes=true keeps only lines reaching an island
func (h *LineHandler) GetAllLines(w http.ResponseWriter, r *http.Request) {
	islandOnly := r.URL.Query().Get("island_routes") == "true"

	lines, err := h.repo.GetLines(r.Context(), islandOnly)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to retrieve lines", map[string]interface{}{
			"internal": err.Error(),
		})
		return
	}

	writeCachedJSON(w, GetAllLinesResponse{Lines: lines, Count: len(lines)})
}

// GetLineByID handles GET /api/lines/{lineId}
func (h *LineHandler) GetLineByID(w http.ResponseWriter, r *http.Request) {
	lineID := chi.URLParam(r, "lineId")

	details, err := h.repo.GetLineDetails(r.Context(), models.LineID(lineID))
	if err != nil {
		h.lineError(w, lineID, err)
		return
	}

	writeCachedJSON(w, details)
}

// GetLineSchedules handles GET /api/lines/{lineId}/schedules
func (h *LineHandler) GetLineSchedules(w http.ResponseWriter, r *http.Request) {
	lineID := chi.URLParam(r, "lineId")

	var q models.ScheduleQuery
	if raw := r.URL.Query().Get("direction"); raw != "" {
		dir, err := models.ParseDirection(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid direction", map[string]interface{}{
				"direction": raw,
			})
			return
		}
		q.Direction = dir
	}
	q.Day = r.URL.Query().Get("day")

	schedules, err := h.repo.GetLineSchedules(r.Context(), models.LineID(lineID), q)
	if err != nil {
		h.lineError(w, lineID, err)
		return
	}

	writeCachedJSON(w, LineSchedulesResponse{
		LineID:    models.LineID(lineID),
		Direction: q.Direction,
		Day:       q.Day,
		Schedules: schedules,
		Count:     len(schedules),
	})
}

func (h *LineHandler) lineError(w http.ResponseWriter, lineID string, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Line not found", map[string]interface{}{
			"lineId": lineID,
		})
		return
	}
	writeError(w, http.StatusInternalServerError, "Failed to retrieve line", map[string]interface{}{
		"internal": err.Error(),
	})
}
