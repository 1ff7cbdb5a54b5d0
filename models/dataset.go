package models

import (
	"time"

	"github.com/google/uuid"
)

// Dataset is the read-only transit data for one load. It is never mutated
// after NewDataset returns and is safe to share between goroutines;
// callers must not modify the slices it hands out
type Dataset struct {
	SnapshotID uuid.UUID
	LoadedAt   time.Time
	Source     string

	stations  []Station
	lines     []Line
	schedules []LineSchedule
	fares     []Fare

	stationIdx  map[StationID]int
	lineIdx     map[LineID]int
	scheduleIdx map[LineID][]int
	fareIdx     map[FareKey]int

	duplicates int
}

// DatasetCounts is the number of records per collection
type DatasetCounts struct {
	Stations  int `json:"stations"`
	Lines     int `json:"lines"`
	Schedules int `json:"schedules"` // trips across all lines
	Fares     int `json:"fares"`
}

// NewDataset indexes the four collections. Duplicate station, line and fare
// keys keep their first occurrence and are counted in Duplicates
func NewDataset(source string, stations []Station, lines []Line, schedules []LineSchedule, fares []Fare) *Dataset {
	d := &Dataset{
		SnapshotID:  uuid.New(),
		LoadedAt:    time.Now().UTC(),
		Source:      source,
		stationIdx:  make(map[StationID]int, len(stations)),
		lineIdx:     make(map[LineID]int, len(lines)),
		scheduleIdx: make(map[LineID][]int, len(schedules)),
		fareIdx:     make(map[FareKey]int, len(fares)),
	}

	for _, s := range stations {
		if _, exists := d.stationIdx[s.ID]; exists {
			d.duplicates++
			continue
		}
		d.stationIdx[s.ID] = len(d.stations)
		d.stations = append(d.stations, s)
	}

	for _, l := range lines {
		if _, exists := d.lineIdx[l.ID]; exists {
			d.duplicates++
			continue
		}
		d.lineIdx[l.ID] = len(d.lines)
		d.lines = append(d.lines, l)
	}

	// A line may be split across several schedule groups; keep them all
	for i, ls := range schedules {
		d.scheduleIdx[ls.LineID] = append(d.scheduleIdx[ls.LineID], i)
	}
	d.schedules = schedules

	for _, f := range fares {
		key := FareKey{Origin: f.OriginStationID, Destination: f.DestinationStationID}
		if _, exists := d.fareIdx[key]; exists {
			d.duplicates++
			continue
		}
		d.fareIdx[key] = len(d.fares)
		d.fares = append(d.fares, f)
	}

	return d
}

// Stations returns every station in file order
func (d *Dataset) Stations() []Station { return d.stations }

// Station looks a station up by id
func (d *Dataset) Station(id StationID) (Station, bool) {
	i, ok := d.stationIdx[id]
	if !ok {
		return Station{}, false
	}
	return d.stations[i], true
}

// Lines returns every line in file order
func (d *Dataset) Lines() []Line { return d.lines }

// Line looks a line up by id
func (d *Dataset) Line(id LineID) (Line, bool) {
	i, ok := d.lineIdx[id]
	if !ok {
		return Line{}, false
	}
	return d.lines[i], true
}

// LineStations resolves the stations of a line in line order, dropping ids
// that are not in the station collection
func (d *Dataset) LineStations(id LineID) []Station {
	line, ok := d.Line(id)
	if !ok {
		return nil
	}
	stations := make([]Station, 0, len(line.StationIDs))
	for _, sid := range line.StationIDs {
		if s, ok := d.Station(sid); ok {
			stations = append(stations, s)
		}
	}
	return stations
}

// LineSchedules returns every schedule group
func (d *Dataset) LineSchedules() []LineSchedule { return d.schedules }

// SchedulesForLine returns the trips of a line across all its groups
func (d *Dataset) SchedulesForLine(id LineID) []Schedule {
	var out []Schedule
	for _, i := range d.scheduleIdx[id] {
		out = append(out, d.schedules[i].Schedules...)
	}
	return out
}

// Fares returns every fare in file order
func (d *Dataset) Fares() []Fare { return d.fares }

// Fare returns the fare for the ordered pair. There is no reverse lookup
func (d *Dataset) Fare(origin, destination StationID) (Fare, bool) {
	i, ok := d.fareIdx[FareKey{Origin: origin, Destination: destination}]
	if !ok {
		return Fare{}, false
	}
	return d.fares[i], true
}

// Duplicates is the number of records dropped for a repeated key
func (d *Dataset) Duplicates() int { return d.duplicates }

// Counts returns the size of each collection
func (d *Dataset) Counts() DatasetCounts {
	trips := 0
	for _, ls := range d.schedules {
		trips += len(ls.Schedules)
	}
	return DatasetCounts{
		Stations:  len(d.stations),
		Lines:     len(d.lines),
		Schedules: trips,
		Fares:     len(d.fares),
	}
}

// IsIslandRoute reports whether any station of the line lies off the
// mainland island
func (d *Dataset) IsIslandRoute(id LineID, mainland string) bool {
	for _, s := range d.LineStations(id) {
		if !s.OnIsland(mainland) {
			return true
		}
	}
	return false
}
