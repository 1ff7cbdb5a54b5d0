package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/you/islandtransit/internal/geo"
	"github.com/you/islandtransit/internal/money"
	"github.com/you/islandtransit/models"
	"github.com/you/islandtransit/repository"
)

// FareRepository defines the interface for fare lookups
type FareRepository interface {
	GetFares(ctx context.Context) ([]models.Fare, error)
	GetFare(ctx context.Context, origin, destination models.StationID) (models.Fare, models.Station, models.Station, error)
}

// FareHandler handles HTTP requests for fares
type FareHandler struct {
	repo     FareRepository
	currency string
}

// NewFareHandler creates a new handler formatting amounts in currency
func NewFareHandler(repo FareRepository, currency string) *FareHandler {
	return &FareHandler{repo: repo, currency: currency}
}

// GetAllFaresResponse is the JSON response structure for GET /api/fares
type GetAllFaresResponse struct {
	Fares []models.Fare `json:"fares"`
	Count int           `json:"count"`
}

// FareResponse is one fare with its distance and display prices
type FareResponse struct {
	models.Fare
	Origin      models.Station  `json:"origin"`
	Destination models.Station  `json:"destination"`
	DistanceKm  int             `json:"distanceKm"`
	Distance    string          `json:"distance"`
	Formatted   money.Formatted `json:"formattedPrices"`
}

// GetFares handles GET /api/fares
// With ?origin=&destination= it returns that single fare
func (h *FareHandler) GetFares(w http.ResponseWriter, r *http.Request) {
	origin := r.URL.Query().Get("origin")
	destination := r.URL.Query().Get("destination")
	if origin != "" || destination != "" {
		h.getFare(w, r, origin, destination)
		return
	}

	fares, err := h.repo.GetFares(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to retrieve fares", map[string]interface{}{
			"internal": err.Error(),
		})
		return
	}

	writeCachedJSON(w, GetAllFaresResponse{Fares: fares, Count: len(fares)})
}

func (h *FareHandler) getFare(w http.ResponseWriter, r *http.Request, origin, destination string) {
	if origin == "" || destination == "" {
		writeError(w, http.StatusBadRequest, "origin and destination parameters are both required", nil)
		return
	}

	fare, o, d, err := h.repo.GetFare(r.Context(), models.StationID(origin), models.StationID(destination))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Fare not found", map[string]interface{}{
				"origin":      origin,
				"destination": destination,
			})
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to retrieve fare", map[string]interface{}{
			"internal": err.Error(),
		})
		return
	}

	km := geo.Haversine(o.Coordinates.Lat, o.Coordinates.Lon, d.Coordinates.Lat, d.Coordinates.Lon)
	lang := langParam(r)
	p := fare.Prices

	writeCachedJSON(w, FareResponse{
		Fare:        fare,
		Origin:      o,
		Destination: d,
		DistanceKm:  int(geo.RoundKm(km)),
		Distance:    geo.FormatDistance(km),
		Formatted:   money.FormatPrices(p.FirstClass, p.SecondClass, p.ThirdClass, lang, h.currency),
	})
}
