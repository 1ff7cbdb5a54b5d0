package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you/islandtransit/internal/search"
	"github.com/you/islandtransit/internal/timetable"
	"github.com/you/islandtransit/models"
	"github.com/you/islandtransit/repository"
)

type datasetLoader struct {
	ds     *models.Dataset
	status models.LoadStatus
}

func (l datasetLoader) Load(ctx context.Context) (*models.Dataset, models.LoadStatus, error) {
	return l.ds, l.status, nil
}

func testDataset() *models.Dataset {
	stations := []models.Station{
		{ID: "S1", NameFR: "Nouméa", NameEN: "Noumea", IslandFR: "Grande Terre", Coordinates: models.Coordinates{Lat: -22.2, Lon: 166.4}},
		{ID: "S2", NameFR: "Bourail", IslandFR: "Grande Terre", Coordinates: models.Coordinates{Lat: -20.9, Lon: 167.0}},
		{ID: "S3", NameFR: "Wé", IslandFR: "Lifou", Coordinates: models.Coordinates{Lat: -20.9, Lon: 167.3}},
	}
	lines := []models.Line{
		{ID: "L1", Name: "Ligne 1", StationIDs: []models.StationID{"S1", "S2", "S7"}},
		{ID: "L2", Name: "Ligne 2", StationIDs: []models.StationID{"S2", "S3"}},
	}
	schedules := []models.LineSchedule{
		{LineID: "L1", Schedules: []models.Schedule{
			{TripID: "T-pm", Direction: models.DirectionNorthbound, DaysOfWeek: []string{"monday"}, Stops: []models.Stop{
				{StationID: "S1", DepartureTime: "14:30"},
				{StationID: "S2", ArrivalTime: "16:00"},
			}},
			{TripID: "T-am", Direction: models.DirectionNorthbound, DaysOfWeek: []string{"saturday"}, Stops: []models.Stop{
				{StationID: "S1", DepartureTime: "08:00"},
				{StationID: "S2", ArrivalTime: "10:15"},
			}},
			{TripID: "T-back", Direction: models.DirectionSouthbound, DaysOfWeek: []string{"monday"}, Stops: []models.Stop{
				{StationID: "S2", DepartureTime: "11:00"},
				{StationID: "S1", ArrivalTime: "13:00"},
			}},
		}},
	}
	fares := []models.Fare{
		{OriginStationID: "S1", DestinationStationID: "S2", Prices: models.Prices{FirstClass: 3000, SecondClass: 2000, ThirdClass: 1200}},
	}
	return models.NewDataset("test", stations, lines, schedules, fares)
}

// newTestRouter wires every handler over a holder loaded with ds
func newTestRouter(t *testing.T, ds *models.Dataset, status models.LoadStatus, load bool) http.Handler {
	t.Helper()
	holder := repository.NewHolder(datasetLoader{ds: ds, status: status})
	if load {
		_, err := holder.Reload(context.Background())
		require.NoError(t, err)
	}
	repo := repository.NewTransitRepository(holder, "Grande Terre")

	stations := NewStationHandler(repo)
	lines := NewLineHandler(repo)
	fares := NewFareHandler(repo, "XPF")
	searches := NewSearchHandler(repo, search.NewEngine(timetable.DefaultBands()), nil, "XPF")
	health := NewHealthHandler(repo)

	r := chi.NewRouter()
	r.Get("/health", health.GetHealth)
	r.Get("/healthz", Healthz)
	r.Get("/api/status", health.GetStatus)
	r.Get("/api/stations", stations.GetAllStations)
	r.Get("/api/stations/{stationId}", stations.GetStationByID)
	r.Get("/api/lines", lines.GetAllLines)
	r.Get("/api/lines/{lineId}", lines.GetLineByID)
	r.Get("/api/lines/{lineId}/schedules", lines.GetLineSchedules)
	r.Get("/api/fares", fares.GetFares)
	r.Get("/api/search", searches.Search)
	return r
}

func get(t *testing.T, h http.Handler, target string, out interface{}) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if out != nil {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out), rec.Body.String())
	}
	return rec
}

func loadedRouter(t *testing.T) http.Handler {
	return newTestRouter(t, testDataset(), models.LoadStatus{}, true)
}

func TestStations(t *testing.T) {
	r := loadedRouter(t)

	var all GetAllStationsResponse
	rec := get(t, r, "/api/stations", &all)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "public, max-age=300", rec.Header().Get("Cache-Control"))
	assert.Equal(t, 3, all.Count)

	var lifou GetAllStationsResponse
	get(t, r, "/api/stations?island=lifou", &lifou)
	require.Len(t, lifou.Stations, 1)
	assert.Equal(t, models.StationID("S3"), lifou.Stations[0].ID)

	var station models.Station
	rec = get(t, r, "/api/stations/S1", &station)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Noumea", station.NameEN)

	var errResp ErrorResponse
	rec = get(t, r, "/api/stations/S9", &errResp)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Station not found", errResp.Error)
	assert.Equal(t, "S9", errResp.Details["stationId"])
}

func TestLines(t *testing.T) {
	r := loadedRouter(t)

	var island GetAllLinesResponse
	get(t, r, "/api/lines?island_routes=true", &island)
	require.Equal(t, 1, island.Count)
	assert.Equal(t, models.LineID("L2"), island.Lines[0].ID)

	var details models.LineDetails
	rec := get(t, r, "/api/lines/L1", &details)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, details.Stations, 2, "unknown station ids are dropped")
	assert.False(t, details.IslandRoute)
	assert.Equal(t, 3, details.ScheduleCount)

	rec = get(t, r, "/api/lines/L9", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLineSchedules(t *testing.T) {
	r := loadedRouter(t)

	var resp LineSchedulesResponse
	get(t, r, "/api/lines/L1/schedules?direction=northbound", &resp)
	require.Equal(t, 2, resp.Count)
	assert.Equal(t, models.TripID("T-am"), resp.Schedules[0].TripID, "sorted by first departure")
	assert.Equal(t, models.TripID("T-pm"), resp.Schedules[1].TripID)

	get(t, r, "/api/lines/L1/schedules?day=monday", &resp)
	assert.Equal(t, 2, resp.Count)

	rec := get(t, r, "/api/lines/L1/schedules?direction=up", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = get(t, r, "/api/lines/L9/schedules", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFares(t *testing.T) {
	r := loadedRouter(t)

	var all GetAllFaresResponse
	get(t, r, "/api/fares", &all)
	assert.Equal(t, 1, all.Count)

	var fare FareResponse
	rec := get(t, r, "/api/fares?origin=S1&destination=S2&lang=en", &fare)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 157, fare.DistanceKm)
	assert.Equal(t, "157.3 km", fare.Distance)
	assert.Equal(t, "1,200 XPF", fare.Formatted.ThirdClass)

	rec = get(t, r, "/api/fares?origin=S2&destination=S1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code, "no reverse lookup")

	rec = get(t, r, "/api/fares?origin=S1", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearch(t *testing.T) {
	r := loadedRouter(t)

	var resp SearchResponse
	rec := get(t, r, "/api/search?origin=S1&destination=S2&lang=en", &resp)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 2, resp.Count)
	assert.Equal(t, models.TripID("T-am"), resp.Results[0].Schedule.TripID)
	assert.Equal(t, "2h 15min", resp.Results[0].Duration)
	assert.Equal(t, "1,200 XPF", resp.Results[0].FormattedPrice)
	assert.Equal(t, "Noumea", resp.Results[0].OriginName)
	assert.Equal(t, 2, resp.Statistics.Count)
	assert.Equal(t, "1h 53min", resp.Statistics.AverageDuration)
	assert.Equal(t, models.TimeDistribution{Morning: 1, Afternoon: 1}, resp.Statistics.Distribution)
	assert.Equal(t, [2]string{"1,200 XPF", "1,200 XPF"}, resp.PriceRange)

	get(t, r, "/api/search?origin=S1&destination=S2&time=afternoon&class=first", &resp)
	require.Equal(t, 1, resp.Count)
	assert.Equal(t, 3000, resp.Results[0].Price)

	get(t, r, "/api/search?origin=S1&destination=S2&day=saturday", &resp)
	require.Equal(t, 1, resp.Count)
	assert.Equal(t, models.TripID("T-am"), resp.Results[0].Schedule.TripID)
}

func TestSearch_EmptyAndInvalid(t *testing.T) {
	r := loadedRouter(t)

	var resp SearchResponse
	rec := get(t, r, "/api/search?origin=S1", &resp)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, resp.Count)
	assert.NotNil(t, resp.Results)
	assert.Equal(t, "0min", resp.Statistics.AverageDuration)

	for _, q := range []string{"time=night", "class=business", "sort=fastest"} {
		rec := get(t, r, "/api/search?origin=S1&destination=S2&"+q, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, q)
	}
}

type recordingMetrics struct {
	timePref string
	results  int
}

func (m *recordingMetrics) ObserveSearch(timePref string, results int, d time.Duration) {
	m.timePref = timePref
	m.results = results
}

func TestSearch_RecordsMetrics(t *testing.T) {
	holder := repository.NewHolder(datasetLoader{ds: testDataset()})
	_, err := holder.Reload(context.Background())
	require.NoError(t, err)

	m := &recordingMetrics{}
	h := NewSearchHandler(holder, search.NewEngine(timetable.DefaultBands()), m, "XPF")
	rec := httptest.NewRecorder()
	h.Search(rec, httptest.NewRequest(http.MethodGet, "/api/search?origin=S1&destination=S2&time=morning", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "morning", m.timePref)
	assert.Equal(t, 1, m.results)
}

func TestHealth(t *testing.T) {
	ds := testDataset()

	var resp HealthResponse
	rec := get(t, newTestRouter(t, ds, models.LoadStatus{SnapshotID: ds.SnapshotID}, true), "/health", &resp)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, ds.SnapshotID.String(), resp.SnapshotID)
	assert.Equal(t, 3, resp.Counts.Stations)

	var failed models.LoadStatus
	failed.Fail(models.CollectionPrices, errors.New("status 404"))
	rec = get(t, newTestRouter(t, ds, failed, true), "/health", &resp)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "degraded", resp.Status)
	assert.Equal(t, "status 404", resp.Failures[models.CollectionPrices])

	rec = get(t, newTestRouter(t, ds, models.LoadStatus{}, false), "/health", &resp)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "loading", resp.Status)
}

func TestStatus(t *testing.T) {
	ds := testDataset()
	var failed models.LoadStatus
	failed.Loaded(models.CollectionStations, 3)
	failed.Fail(models.CollectionPrices, errors.New("boom"))

	var status models.LoadStatus
	rec := get(t, newTestRouter(t, ds, failed, true), "/api/status", &status)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, status.Failed)
	assert.Len(t, status.Collections, 2)

	rec = get(t, newTestRouter(t, ds, models.LoadStatus{}, false), "/api/status", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = get(t, newTestRouter(t, ds, models.LoadStatus{}, false), "/healthz", nil)
	assert.Equal(t, "ok", rec.Body.String())
}
