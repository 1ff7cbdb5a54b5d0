package handlers

import (
	"net/http"
	"time"

	"github.com/you/islandtransit/internal/geo"
	"github.com/you/islandtransit/internal/money"
	"github.com/you/islandtransit/internal/search"
	"github.com/you/islandtransit/internal/stats"
	"github.com/you/islandtransit/models"
)

// Sort orders accepted by GET /api/search
const (
	SortDeparture = "departure"
	SortPrice     = "price"
)

// DatasetProvider returns the dataset in service
type DatasetProvider interface {
	Current() *models.Dataset
}

// SearchMetrics records search outcomes
type SearchMetrics interface {
	ObserveSearch(timePref string, results int, d time.Duration)
}

// SearchHandler handles trip searches
type SearchHandler struct {
	data     DatasetProvider
	engine   *search.Engine
	metrics  SearchMetrics
	currency string
}

// NewSearchHandler creates a search handler. metrics may be nil
func NewSearchHandler(data DatasetProvider, engine *search.Engine, metrics SearchMetrics, currency string) *SearchHandler {
	return &SearchHandler{data: data, engine: engine, metrics: metrics, currency: currency}
}

// SearchResultResponse is a result with its display price and distance
type SearchResultResponse struct {
	models.SearchResult
	Price           int    `json:"price"`
	FormattedPrice  string `json:"formattedPrice"`
	Distance        string `json:"distance"`
	OriginName      string `json:"originName"`
	DestinationName string `json:"destinationName"`
}

// SearchResponse is the JSON response structure for GET /api/search
type SearchResponse struct {
	Results    []SearchResultResponse `json:"results"`
	Count      int                    `json:"count"`
	Statistics models.Statistics      `json:"statistics"`
	PriceRange [2]string              `json:"formattedPriceRange"`
}

// Search handles GET /api/search
// Query: origin, destination, class, time, day, sort, lang
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	q := r.URL.Query()

	filters := models.SearchFilters{
		ServiceClass:   models.ServiceClass(q.Get("class")),
		TimePreference: models.TimePreference(q.Get("time")),
		Day:            q.Get("day"),
	}
	if filters.ServiceClass != "" && !filters.ServiceClass.Valid() {
		writeError(w, http.StatusBadRequest, "Invalid service class", map[string]interface{}{
			"class": q.Get("class"),
		})
		return
	}
	if !filters.TimePreference.Valid() {
		writeError(w, http.StatusBadRequest, "Invalid time preference", map[string]interface{}{
			"time": q.Get("time"),
		})
		return
	}
	order := q.Get("sort")
	if order != "" && order != SortDeparture && order != SortPrice {
		writeError(w, http.StatusBadRequest, "Invalid sort order", map[string]interface{}{
			"sort": order,
		})
		return
	}

	results := h.engine.Search(h.data.Current(),
		models.StationID(q.Get("origin")), models.StationID(q.Get("destination")), filters)
	if order == SortPrice {
		search.SortByPrice(results, filters.ServiceClass)
	}

	statistics := stats.Aggregate(results, h.engine.Bands())
	lang := langParam(r)

	response := SearchResponse{
		Results:    make([]SearchResultResponse, 0, len(results)),
		Count:      len(results),
		Statistics: statistics,
		PriceRange: [2]string{
			money.Format(statistics.PriceRange.Min, lang, h.currency),
			money.Format(statistics.PriceRange.Max, lang, h.currency),
		},
	}
	for _, res := range results {
		price := res.Price(filters.ServiceClass)
		response.Results = append(response.Results, SearchResultResponse{
			SearchResult:    res,
			Price:           price,
			FormattedPrice:  money.Format(price, lang, h.currency),
			Distance:        geo.FormatDistance(res.DistanceKm),
			OriginName:      res.Origin.Name(lang),
			DestinationName: res.Destination.Name(lang),
		})
	}

	if h.metrics != nil {
		h.metrics.ObserveSearch(string(filters.TimePreference), len(results), time.Since(start))
	}

	writeJSON(w, http.StatusOK, response)
}
