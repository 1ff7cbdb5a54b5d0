package repository

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	stationsJSON = `[
		{"id": "S1", "name_fr": "Nouméa", "name_en": "Noumea", "island_fr": "Grande Terre", "island_en": "Mainland", "coordinates": {"lat": -22.2, "lon": 166.4}},
		{"id": "S2", "name_fr": "Bourail", "island_fr": "Grande Terre", "coordinates": {"lat": -20.9, "lon": 167.0}},
		{"id": "S3", "name_fr": "Wé", "island_fr": "Lifou", "coordinates": {"lat": -20.9, "lon": 167.3}},
		{"id": "S1", "name_fr": "Doublon", "island_fr": "Grande Terre", "coordinates": {"lat": 0, "lon": 0}}
	]`
	linesJSON = `[
		{"id": "L1", "name": "Ligne 1", "description_fr": "Vers le nord", "station_ids": ["S1", "S2", "S9"]},
		{"id": "L2", "name": "Ligne 2", "station_ids": ["S2", "S3"]}
	]`
	schedulesJSON = `[
		{"line_id": "L1", "schedules": [
			{"trip_id": "T1", "direction": "northbound", "days_of_week": ["monday", "tuesday"], "stops": [
				{"station_id": "S1", "departure_time": "08:00"},
				{"station_id": "S2", "arrival_time": "10:15"}
			]},
			{"trip_id": "T2", "direction": "southbound", "days_of_week": ["monday"], "stops": [
				{"station_id": "S2", "departure_time": "14:00"},
				{"station_id": "S1", "arrival_time": "16:00"}
			]}
		]},
		{"line_id": "L2", "schedules": [
			{"trip_id": "T3", "direction": "to-Lifou", "stops": [
				{"station_id": "S2"},
				{"station_id": "S3", "arrival_time": "12:00"}
			]}
		]}
	]`
	pricesJSON = `[
		{"origin_station_id": "S1", "destination_station_id": "S2", "prices": {"first_class": 3000, "second_class": 2000, "third_class": 1200}}
	]`
)

// writeDataDir writes the four collections into a temp directory
func writeDataDir(t *testing.T, overrides map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"stations.json":  stationsJSON,
		"lines.json":     linesJSON,
		"schedules.json": schedulesJSON,
		"prices.json":    pricesJSON,
	}
	for name, body := range overrides {
		files[name] = body
	}
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	return dir
}
