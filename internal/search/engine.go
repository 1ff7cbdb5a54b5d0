// Package search matches trips between two stations and ranks them by
// departure time.
package search

import (
	"sort"

	"github.com/you/islandtransit/internal/geo"
	"github.com/you/islandtransit/internal/timetable"
	"github.com/you/islandtransit/models"
)

// TransitData is the read-only view of the data store the engine needs
type TransitData interface {
	Station(id models.StationID) (models.Station, bool)
	LineSchedules() []models.LineSchedule
	Fare(origin, destination models.StationID) (models.Fare, bool)
}

// Engine searches itineraries. It holds no mutable state and is safe for
// concurrent use
type Engine struct {
	bands timetable.Bands
}

// NewEngine creates an engine using the given time-of-day bands
func NewEngine(bands timetable.Bands) *Engine {
	return &Engine{bands: bands}
}

// Bands returns the time-of-day bands the engine filters with
func (e *Engine) Bands() timetable.Bands {
	return e.bands
}

// Search returns the trips that visit origin strictly before destination,
// priced with the exact (origin, destination) fare and sorted by departure.
// Unknown stations, identical stations, a missing fare and no connecting
// trip all yield an empty result
func (e *Engine) Search(data TransitData, originID, destinationID models.StationID, filters models.SearchFilters) []models.SearchResult {
	results := []models.SearchResult{}
	if originID == "" || destinationID == "" || originID == destinationID {
		return results
	}

	origin, ok := data.Station(originID)
	if !ok {
		return results
	}
	destination, ok := data.Station(destinationID)
	if !ok {
		return results
	}

	fare, ok := data.Fare(originID, destinationID)
	if !ok {
		return results
	}

	distance := geo.RoundKm(geo.Haversine(
		origin.Coordinates.Lat, origin.Coordinates.Lon,
		destination.Coordinates.Lat, destination.Coordinates.Lon,
	))

	for _, ls := range data.LineSchedules() {
		for _, schedule := range ls.Schedules {
			if !schedule.RunsOn(filters.Day) {
				continue
			}

			i, j, ok := matchStops(schedule, originID, destinationID)
			if !ok {
				continue
			}

			departure := schedule.Stops[i].DepartureTime
			if !e.bands.Match(filters.TimePreference, departure) {
				continue
			}

			arrival := schedule.Stops[j].ArrivalTime
			result := models.SearchResult{
				Origin:        origin,
				Destination:   destination,
				LineID:        ls.LineID,
				Schedule:      schedule,
				Prices:        fare.Prices,
				DepartureTime: departure,
				ArrivalTime:   arrival,
				Duration:      timetable.NotAvailable,
				DistanceKm:    distance,
			}
			if minutes, ok := timetable.DurationMinutes(departure, arrival); ok {
				result.DurationMinutes = &minutes
				result.Duration = timetable.FormatDuration(minutes)
			}
			results = append(results, result)
		}
	}

	sort.SliceStable(results, func(a, b int) bool {
		return timetable.SortKey(results[a].DepartureTime) < timetable.SortKey(results[b].DepartureTime)
	})

	return results
}

// matchStops finds the first origin stop and the first destination stop
// after it. Trips running the other way do not match
func matchStops(s models.Schedule, origin, destination models.StationID) (int, int, bool) {
	i := s.StopIndex(origin, 0)
	if i < 0 {
		return 0, 0, false
	}
	j := s.StopIndex(destination, i+1)
	if j < 0 {
		return 0, 0, false
	}
	return i, j, true
}

// SortByPrice orders results by their price in a service class, keeping the
// departure order between equal prices
func SortByPrice(results []models.SearchResult, class models.ServiceClass) {
	sort.SliceStable(results, func(a, b int) bool {
		return results[a].Price(class) < results[b].Price(class)
	})
}
