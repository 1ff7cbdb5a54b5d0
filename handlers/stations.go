package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/you/islandtransit/models"
	"github.com/you/islandtransit/repository"
)

// StationRepository defines the interface for station lookups
type StationRepository interface {
	GetStations(ctx context.Context, island string) ([]models.Station, error)
	GetStation(ctx context.Context, id models.StationID) (models.Station, error)
}

// StationHandler handles HTTP requests for station data
type StationHandler struct {
	repo StationRepository
}

// NewStationHandler creates a new handler with the given repository
func NewStationHandler(repo StationRepository) *StationHandler {
	return &StationHandler{repo: repo}
}

// GetAllStationsResponse is the JSON response structure for GET /api/stations
type GetAllStationsResponse struct {
	Stations []models.Station `json:"stations"`
	Count    int              `json:"count"`
}

// GetAllStations handles GET /api/stations
func (h *StationHandler) GetAllStations(w http.ResponseWriter, r *http.Request) {
	island := r.URL.Query().Get("island")

	stations, err := h.repo.GetStations(r.Context(), island)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to retrieve stations", map[string]interface{}{
			"internal": err.Error(),
		})
		return
	}

	writeCachedJSON(w, GetAllStationsResponse{Stations: stations, Count: len(stations)})
}

// GetStationByID handles GET /api/stations/{stationId}
func (h *StationHandler) GetStationByID(w http.ResponseWriter, r *http.Request) {
	stationID := chi.URLParam(r, "stationId")
	if stationID == "" {
		writeError(w, http.StatusBadRequest, "stationId parameter is required", nil)
		return
	}

	station, err := h.repo.GetStation(r.Context(), models.StationID(stationID))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Station not found", map[string]interface{}{
				"stationId": stationID,
			})
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to retrieve station", map[string]interface{}{
			"internal": err.Error(),
		})
		return
	}

	writeCachedJSON(w, station)
}
