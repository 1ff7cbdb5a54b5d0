package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/you/islandtransit/models"
)

// ImportTimeLayout is fixed-width so import timestamps sort as text
const ImportTimeLayout = "2006-01-02T15:04:05.000000Z"

// ReplaceDataset swaps every dataset row for the contents of ds in a single
// transaction and records the import
func (db *DB) ReplaceDataset(ctx context.Context, ds *models.Dataset) error {
	db.writeMu.Lock()
	defer db.writeMu.Unlock()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"trip_stops", "trips", "line_stations", "lines", "stations", "fares"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	if err := db.insertStations(ctx, tx, ds.Stations()); err != nil {
		return err
	}
	if err := db.insertLines(ctx, tx, ds.Lines()); err != nil {
		return err
	}
	if err := db.insertSchedules(ctx, tx, ds.LineSchedules()); err != nil {
		return err
	}
	if err := db.insertFares(ctx, tx, ds.Fares()); err != nil {
		return err
	}

	counts := ds.Counts()
	_, err = tx.ExecContext(ctx, db.rebind(`
		INSERT INTO dataset_imports (snapshot_id, imported_at_utc, source, stations, lines, trips, fares)
		VALUES (?, ?, ?, ?, ?, ?, ?)`),
		ds.SnapshotID.String(), time.Now().UTC().Format(ImportTimeLayout), ds.Source,
		counts.Stations, counts.Lines, counts.Schedules, counts.Fares,
	)
	if err != nil {
		return fmt.Errorf("failed to record import: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (db *DB) insertStations(ctx context.Context, tx *sql.Tx, stations []models.Station) error {
	stmt, err := tx.PrepareContext(ctx, db.rebind(`
		INSERT INTO stations (id, position, name_fr, name_en, island_fr, island_en, lat, lon)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`))
	if err != nil {
		return fmt.Errorf("failed to prepare station insert: %w", err)
	}
	defer stmt.Close()

	for i, s := range stations {
		if _, err := stmt.ExecContext(ctx, string(s.ID), i, s.NameFR, s.NameEN, s.IslandFR, s.IslandEN,
			s.Coordinates.Lat, s.Coordinates.Lon); err != nil {
			return fmt.Errorf("failed to insert station %s: %w", s.ID, err)
		}
	}
	return nil
}

func (db *DB) insertLines(ctx context.Context, tx *sql.Tx, lines []models.Line) error {
	lineStmt, err := tx.PrepareContext(ctx, db.rebind(`
		INSERT INTO lines (id, position, name, description_fr, description_en)
		VALUES (?, ?, ?, ?, ?)`))
	if err != nil {
		return fmt.Errorf("failed to prepare line insert: %w", err)
	}
	defer lineStmt.Close()

	stationStmt, err := tx.PrepareContext(ctx, db.rebind(`
		INSERT INTO line_stations (line_id, position, station_id) VALUES (?, ?, ?)`))
	if err != nil {
		return fmt.Errorf("failed to prepare line station insert: %w", err)
	}
	defer stationStmt.Close()

	for i, l := range lines {
		if _, err := lineStmt.ExecContext(ctx, string(l.ID), i, l.Name, l.DescriptionFR, l.DescriptionEN); err != nil {
			return fmt.Errorf("failed to insert line %s: %w", l.ID, err)
		}
		for pos, sid := range l.StationIDs {
			if _, err := stationStmt.ExecContext(ctx, string(l.ID), pos, string(sid)); err != nil {
				return fmt.Errorf("failed to insert station %s of line %s: %w", sid, l.ID, err)
			}
		}
	}
	return nil
}

func (db *DB) insertSchedules(ctx context.Context, tx *sql.Tx, groups []models.LineSchedule) error {
	tripStmt, err := tx.PrepareContext(ctx, db.rebind(`
		INSERT INTO trips (trip_key, group_position, line_id, position, trip_id, direction,
			description_fr, description_en, days_of_week)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`))
	if err != nil {
		return fmt.Errorf("failed to prepare trip insert: %w", err)
	}
	defer tripStmt.Close()

	stopStmt, err := tx.PrepareContext(ctx, db.rebind(`
		INSERT INTO trip_stops (trip_key, stop_sequence, station_id, departure_time, arrival_time)
		VALUES (?, ?, ?, ?, ?)`))
	if err != nil {
		return fmt.Errorf("failed to prepare stop insert: %w", err)
	}
	defer stopStmt.Close()

	key := 0
	for g, group := range groups {
		for pos, s := range group.Schedules {
			key++
			if _, err := tripStmt.ExecContext(ctx, key, g, string(group.LineID), pos, string(s.TripID),
				string(s.Direction), s.DescriptionFR, s.DescriptionEN, strings.Join(s.DaysOfWeek, ",")); err != nil {
				return fmt.Errorf("failed to insert trip %s: %w", s.TripID, err)
			}
			for seq, stop := range s.Stops {
				if _, err := stopStmt.ExecContext(ctx, key, seq, string(stop.StationID),
					nullString(stop.DepartureTime), nullString(stop.ArrivalTime)); err != nil {
					return fmt.Errorf("failed to insert stop %d of trip %s: %w", seq, s.TripID, err)
				}
			}
		}
	}
	return nil
}

func (db *DB) insertFares(ctx context.Context, tx *sql.Tx, fares []models.Fare) error {
	stmt, err := tx.PrepareContext(ctx, db.rebind(`
		INSERT INTO fares (origin_station_id, destination_station_id, position, first_class, second_class, third_class)
		VALUES (?, ?, ?, ?, ?, ?)`))
	if err != nil {
		return fmt.Errorf("failed to prepare fare insert: %w", err)
	}
	defer stmt.Close()

	for i, f := range fares {
		if _, err := stmt.ExecContext(ctx, string(f.OriginStationID), string(f.DestinationStationID), i,
			f.Prices.FirstClass, f.Prices.SecondClass, f.Prices.ThirdClass); err != nil {
			return fmt.Errorf("failed to insert fare %s-%s: %w", f.OriginStationID, f.DestinationStationID, err)
		}
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
