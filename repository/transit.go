package repository

import (
	"context"
	"fmt"

	"github.com/you/islandtransit/internal/timetable"
	"github.com/you/islandtransit/models"
)

// TransitRepository answers browse queries against the dataset currently
// held. Every call reads one dataset snapshot
type TransitRepository struct {
	holder   *Holder
	mainland string
}

// NewTransitRepository creates a repository over holder. mainland names the
// island that does not make a line an island route
func NewTransitRepository(holder *Holder, mainland string) *TransitRepository {
	return &TransitRepository{holder: holder, mainland: mainland}
}

// Current returns the dataset in service
func (r *TransitRepository) Current() *models.Dataset {
	return r.holder.Current()
}

// Status returns the last load status
func (r *TransitRepository) Status() (models.LoadStatus, bool) {
	return r.holder.Status()
}

// GetStations returns all stations, or those on island when it is set
func (r *TransitRepository) GetStations(ctx context.Context, island string) ([]models.Station, error) {
	all := r.holder.Current().Stations()
	stations := make([]models.Station, 0, len(all))
	for _, s := range all {
		if island == "" || s.OnIsland(island) {
			stations = append(stations, s)
		}
	}
	return stations, nil
}

func (r *TransitRepository) GetStation(ctx context.Context, id models.StationID) (models.Station, error) {
	s, ok := r.holder.Current().Station(id)
	if !ok {
		return models.Station{}, fmt.Errorf("station %s: %w", id, ErrNotFound)
	}
	return s, nil
}

// GetLines returns all lines, or only island routes
func (r *TransitRepository) GetLines(ctx context.Context, islandRoutesOnly bool) ([]models.Line, error) {
	ds := r.holder.Current()
	lines := make([]models.Line, 0, len(ds.Lines()))
	for _, l := range ds.Lines() {
		if !islandRoutesOnly || ds.IsIslandRoute(l.ID, r.mainland) {
			lines = append(lines, l)
		}
	}
	return lines, nil
}

// GetLineDetails resolves the stations of a line
func (r *TransitRepository) GetLineDetails(ctx context.Context, id models.LineID) (models.LineDetails, error) {
	ds := r.holder.Current()
	line, ok := ds.Line(id)
	if !ok {
		return models.LineDetails{}, fmt.Errorf("line %s: %w", id, ErrNotFound)
	}
	return models.LineDetails{
		Line:          line,
		Stations:      ds.LineStations(id),
		IslandRoute:   ds.IsIslandRoute(id, r.mainland),
		ScheduleCount: len(ds.SchedulesForLine(id)),
	}, nil
}

// GetLineSchedules returns the trips of a line selected by q
func (r *TransitRepository) GetLineSchedules(ctx context.Context, id models.LineID, q models.ScheduleQuery) ([]models.Schedule, error) {
	ds := r.holder.Current()
	if _, ok := ds.Line(id); !ok {
		return nil, fmt.Errorf("line %s: %w", id, ErrNotFound)
	}
	return timetable.SelectSchedules(ds.SchedulesForLine(id), q), nil
}

func (r *TransitRepository) GetFares(ctx context.Context) ([]models.Fare, error) {
	return r.holder.Current().Fares(), nil
}

// GetFare returns the fare for the ordered pair with both stations
func (r *TransitRepository) GetFare(ctx context.Context, origin, destination models.StationID) (models.Fare, models.Station, models.Station, error) {
	ds := r.holder.Current()
	fare, ok := ds.Fare(origin, destination)
	if !ok {
		return models.Fare{}, models.Station{}, models.Station{}, fmt.Errorf("fare %s-%s: %w", origin, destination, ErrNotFound)
	}
	o, okO := ds.Station(origin)
	d, okD := ds.Station(destination)
	if !okO || !okD {
		return models.Fare{}, models.Station{}, models.Station{}, fmt.Errorf("fare %s-%s stations: %w", origin, destination, ErrNotFound)
	}
	return fare, o, d, nil
}
