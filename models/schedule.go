package models

import (
	"fmt"
	"strings"
)

// TripID identifies a single scheduled run of a line
type TripID string

// Direction is the direction tag carried by a trip
type Direction string

const (
	DirectionNorthbound Direction = "northbound"
	DirectionSouthbound Direction = "southbound"
	DirectionOutbound   Direction = "outbound"
	DirectionInbound    Direction = "inbound"

	// Island routes tag trips as "from-<island>" (inbound from the island)
	// or "to-<island>" (outbound to the island)
	FromIslandPrefix = "from-"
	ToIslandPrefix   = "to-"
)

// Valid reports whether the direction belongs to the known vocabulary
func (d Direction) Valid() bool {
	switch d {
	case DirectionNorthbound, DirectionSouthbound, DirectionOutbound, DirectionInbound:
		return true
	}
	_, ok := d.Island()
	return ok
}

// ParseDirection validates a direction query value
func ParseDirection(s string) (Direction, error) {
	d := Direction(s)
	if !d.Valid() {
		return "", fmt.Errorf("unknown direction %q", s)
	}
	return d, nil
}

// Island returns the island named by an island-route direction
func (d Direction) Island() (string, bool) {
	s := string(d)
	switch {
	case strings.HasPrefix(s, FromIslandPrefix) && len(s) > len(FromIslandPrefix):
		return s[len(FromIslandPrefix):], true
	case strings.HasPrefix(s, ToIslandPrefix) && len(s) > len(ToIslandPrefix):
		return s[len(ToIslandPrefix):], true
	}
	return "", false
}

// IsInbound reports whether the trip runs inbound, including trips coming
// back from an island
func (d Direction) IsInbound() bool {
	return d == DirectionInbound || (strings.HasPrefix(string(d), FromIslandPrefix) && len(d) > len(FromIslandPrefix))
}

// Stop is a station visited by a trip. Times are "HH:MM", 24-hour, zero-padded
type Stop struct {
	StationID     StationID `json:"station_id" validate:"required"`
	DepartureTime string    `json:"departure_time,omitempty" validate:"omitempty,clock"`
	ArrivalTime   string    `json:"arrival_time,omitempty" validate:"omitempty,clock"`
}

// Schedule is one trip of a line with its ordered stops
type Schedule struct {
	TripID        TripID    `json:"trip_id" validate:"required"`
	Direction     Direction `json:"direction" validate:"required,direction"`
	DescriptionFR string    `json:"description_fr"`
	DescriptionEN string    `json:"description_en"`
	DaysOfWeek    []string  `json:"days_of_week"`
	Stops         []Stop    `json:"stops" validate:"dive"`
}

// RunsOn reports whether the trip runs on the given day. An empty day
// matches every trip
func (s Schedule) RunsOn(day string) bool {
	if day == "" {
		return true
	}
	for _, d := range s.DaysOfWeek {
		if strings.EqualFold(d, day) {
			return true
		}
	}
	return false
}

// StopIndex returns the index of the first stop at the station at or after
// from, or -1
func (s Schedule) StopIndex(id StationID, from int) int {
	for i := from; i < len(s.Stops); i++ {
		if s.Stops[i].StationID == id {
			return i
		}
	}
	return -1
}

// FirstDeparture returns the departure time of the first stop that has one
func (s Schedule) FirstDeparture() string {
	for _, stop := range s.Stops {
		if stop.DepartureTime != "" {
			return stop.DepartureTime
		}
	}
	return ""
}

// LineSchedule groups the trips of one line
type LineSchedule struct {
	LineID    LineID     `json:"line_id" validate:"required"`
	Schedules []Schedule `json:"schedules" validate:"dive"`
}

// ScheduleQuery is the schedule browsing view state. Zero values select
// everything
type ScheduleQuery struct {
	Direction Direction
	Day       string
}
