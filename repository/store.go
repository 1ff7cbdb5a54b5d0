package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/you/islandtransit/models"
)

// rows is the subset of *sql.Rows and pgx.Rows the dataset reader needs
type rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
}

// querier runs a parameterless query; the SQLite and PostgreSQL loaders
// adapt database/sql and pgxpool to it
type querier interface {
	query(ctx context.Context, query string) (rows, error)
}

// readDataset reads the four collections written by the importer. A query
// failure empties that collection and flags the status
func readDataset(ctx context.Context, q querier, source string) (*models.Dataset, models.LoadStatus, error) {
	var status models.LoadStatus

	stations, err := readCollection(ctx, models.CollectionStations, &status, func() ([]models.Station, error) {
		return readStations(ctx, q)
	})
	if err != nil {
		return nil, status, err
	}
	lines, err := readCollection(ctx, models.CollectionLines, &status, func() ([]models.Line, error) {
		return readLines(ctx, q)
	})
	if err != nil {
		return nil, status, err
	}
	schedules, err := readCollection(ctx, models.CollectionSchedules, &status, func() ([]models.LineSchedule, error) {
		return readSchedules(ctx, q)
	})
	if err != nil {
		return nil, status, err
	}
	fares, err := readCollection(ctx, models.CollectionPrices, &status, func() ([]models.Fare, error) {
		return readFares(ctx, q)
	})
	if err != nil {
		return nil, status, err
	}

	ds := models.NewDataset(source, stations, lines, schedules, fares)
	finishStatus(ds, &status)
	return ds, status, nil
}

func readCollection[T any](ctx context.Context, name string, status *models.LoadStatus, read func() ([]T, error)) ([]T, error) {
	records, err := read()
	if err == nil {
		err = validateRecords(records)
	}
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		log.Printf("Warning: failed to read %s: %v", name, err)
		status.Fail(name, err)
		return []T{}, nil
	}
	status.Loaded(name, len(records))
	return records, nil
}

func readStations(ctx context.Context, q querier) ([]models.Station, error) {
	r, err := q.query(ctx, `
		SELECT id, name_fr, name_en, island_fr, island_en, lat, lon
		FROM stations
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query stations: %w", err)
	}
	defer r.Close()

	stations := []models.Station{}
	for r.Next() {
		var s models.Station
		if err := r.Scan(&s.ID, &s.NameFR, &s.NameEN, &s.IslandFR, &s.IslandEN,
			&s.Coordinates.Lat, &s.Coordinates.Lon); err != nil {
			return nil, fmt.Errorf("failed to scan station: %w", err)
		}
		stations = append(stations, s)
	}
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stations: %w", err)
	}
	return stations, nil
}

func readLines(ctx context.Context, q querier) ([]models.Line, error) {
	r, err := q.query(ctx, `
		SELECT id, name, description_fr, description_en
		FROM lines
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines: %w", err)
	}

	lines := []models.Line{}
	index := make(map[models.LineID]int)
	for r.Next() {
		var l models.Line
		if err := r.Scan(&l.ID, &l.Name, &l.DescriptionFR, &l.DescriptionEN); err != nil {
			r.Close()
			return nil, fmt.Errorf("failed to scan line: %w", err)
		}
		l.StationIDs = []models.StationID{}
		index[l.ID] = len(lines)
		lines = append(lines, l)
	}
	err = r.Err()
	r.Close()
	if err != nil {
		return nil, fmt.Errorf("error iterating lines: %w", err)
	}

	r, err = q.query(ctx, `
		SELECT line_id, station_id
		FROM line_stations
		ORDER BY line_id, position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query line stations: %w", err)
	}
	defer r.Close()

	for r.Next() {
		var lineID models.LineID
		var stationID models.StationID
		if err := r.Scan(&lineID, &stationID); err != nil {
			return nil, fmt.Errorf("failed to scan line station: %w", err)
		}
		if i, ok := index[lineID]; ok {
			lines[i].StationIDs = append(lines[i].StationIDs, stationID)
		}
	}
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("error iterating line stations: %w", err)
	}
	return lines, nil
}

func readSchedules(ctx context.Context, q querier) ([]models.LineSchedule, error) {
	r, err := q.query(ctx, `
		SELECT trip_key, group_position, line_id, trip_id, direction,
			description_fr, description_en, days_of_week
		FROM trips
		ORDER BY group_position, position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query trips: %w", err)
	}

	type tripRef struct{ group, trip int }
	groups := []models.LineSchedule{}
	trips := make(map[int]tripRef)
	lastGroup := -1
	for r.Next() {
		var (
			key, group int
			lineID     models.LineID
			s          models.Schedule
			days       string
		)
		if err := r.Scan(&key, &group, &lineID, &s.TripID, &s.Direction,
			&s.DescriptionFR, &s.DescriptionEN, &days); err != nil {
			r.Close()
			return nil, fmt.Errorf("failed to scan trip: %w", err)
		}
		if group != lastGroup {
			groups = append(groups, models.LineSchedule{LineID: lineID})
			lastGroup = group
		}
		s.DaysOfWeek = splitDays(days)
		s.Stops = []models.Stop{}
		g := len(groups) - 1
		trips[key] = tripRef{group: g, trip: len(groups[g].Schedules)}
		groups[g].Schedules = append(groups[g].Schedules, s)
	}
	err = r.Err()
	r.Close()
	if err != nil {
		return nil, fmt.Errorf("error iterating trips: %w", err)
	}

	r, err = q.query(ctx, `
		SELECT trip_key, station_id, departure_time, arrival_time
		FROM trip_stops
		ORDER BY trip_key, stop_sequence
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query trip stops: %w", err)
	}
	defer r.Close()

	for r.Next() {
		var (
			key                int
			stop               models.Stop
			departure, arrival sql.NullString
		)
		if err := r.Scan(&key, &stop.StationID, &departure, &arrival); err != nil {
			return nil, fmt.Errorf("failed to scan trip stop: %w", err)
		}
		ref, ok := trips[key]
		if !ok {
			continue
		}
		stop.DepartureTime = departure.String
		stop.ArrivalTime = arrival.String
		trip := &groups[ref.group].Schedules[ref.trip]
		trip.Stops = append(trip.Stops, stop)
	}
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trip stops: %w", err)
	}
	return groups, nil
}

func readFares(ctx context.Context, q querier) ([]models.Fare, error) {
	r, err := q.query(ctx, `
		SELECT origin_station_id, destination_station_id, first_class, second_class, third_class
		FROM fares
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query fares: %w", err)
	}
	defer r.Close()

	fares := []models.Fare{}
	for r.Next() {
		var f models.Fare
		if err := r.Scan(&f.OriginStationID, &f.DestinationStationID,
			&f.Prices.FirstClass, &f.Prices.SecondClass, &f.Prices.ThirdClass); err != nil {
			return nil, fmt.Errorf("failed to scan fare: %w", err)
		}
		fares = append(fares, f)
	}
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fares: %w", err)
	}
	return fares, nil
}

func splitDays(s string) []string {
	var days []string
	for _, d := range strings.Split(s, ",") {
		if d = strings.TrimSpace(d); d != "" {
			days = append(days, d)
		}
	}
	return days
}
