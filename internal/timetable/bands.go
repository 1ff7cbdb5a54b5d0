package timetable

import (
	"fmt"

	"github.com/you/islandtransit/models"
)

// Band hours. Morning is [6,12), afternoon [12,18) and evening starts at 18
const (
	MorningStart   = 6
	AfternoonStart = 12
	EveningStart   = 18

	DefaultEveningEnd = 22
)

// Bands holds the time-of-day boundaries. Only the evening end varies
type Bands struct {
	EveningEnd int
}

// DefaultBands uses an evening band of [18,22)
func DefaultBands() Bands {
	return Bands{EveningEnd: DefaultEveningEnd}
}

// NewBands validates an evening end hour, which must lie in (18,24]
func NewBands(eveningEnd int) (Bands, error) {
	if eveningEnd <= EveningStart || eveningEnd > 24 {
		return Bands{}, fmt.Errorf("evening band end must be in (18,24], got %d", eveningEnd)
	}
	return Bands{EveningEnd: eveningEnd}, nil
}

// Of returns the band an hour falls in; hours outside every band report false
func (b Bands) Of(hour int) (models.TimePreference, bool) {
	switch {
	case hour >= MorningStart && hour < AfternoonStart:
		return models.TimeMorning, true
	case hour >= AfternoonStart && hour < EveningStart:
		return models.TimeAfternoon, true
	case hour >= EveningStart && hour < b.eveningEnd():
		return models.TimeEvening, true
	}
	return "", false
}

// Match reports whether an "HH:MM" departure falls within the preference.
// A missing or malformed departure only matches "any"
func (b Bands) Match(pref models.TimePreference, departure string) bool {
	if pref == "" || pref == models.TimeAny {
		return true
	}
	hour, ok := Hour(departure)
	if !ok {
		return false
	}
	band, ok := b.Of(hour)
	return ok && band == pref
}

func (b Bands) eveningEnd() int {
	if b.EveningEnd == 0 {
		return DefaultEveningEnd
	}
	return b.EveningEnd
}
