// Package timetable handles "HH:MM" schedule times, trip durations and the
// time-of-day bands used by search and statistics.
package timetable

import (
	"errors"
	"fmt"
)

// NotAvailable is shown when a duration cannot be computed
const NotAvailable = "N/A"

// ErrMalformedClock is returned for anything that is not a zero-padded
// 24-hour "HH:MM" string
var ErrMalformedClock = errors.New("malformed clock time")

// ParseClock converts "HH:MM" to minutes since midnight
func ParseClock(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("%w: %q", ErrMalformedClock, s)
	}
	h, okH := twoDigits(s[0], s[1])
	m, okM := twoDigits(s[3], s[4])
	if !okH || !okM || h > 23 || m > 59 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedClock, s)
	}
	return h*60 + m, nil
}

func twoDigits(a, b byte) (int, bool) {
	if a < '0' || a > '9' || b < '0' || b > '9' {
		return 0, false
	}
	return int(a-'0')*10 + int(b-'0'), true
}

// Hour returns the hour of an "HH:MM" time
func Hour(s string) (int, bool) {
	minutes, err := ParseClock(s)
	if err != nil {
		return 0, false
	}
	return minutes / 60, true
}

// DurationMinutes returns the minutes from departure to arrival on the same
// day. Trips crossing midnight, and missing or malformed times, have no
// duration
func DurationMinutes(departure, arrival string) (int, bool) {
	from, err := ParseClock(departure)
	if err != nil {
		return 0, false
	}
	to, err := ParseClock(arrival)
	if err != nil {
		return 0, false
	}
	if to < from {
		return 0, false
	}
	return to - from, true
}

// FormatDuration renders minutes as "2h 15min", "1h" or "45min"
func FormatDuration(minutes int) string {
	h, m := minutes/60, minutes%60
	switch {
	case h > 0 && m == 0:
		return fmt.Sprintf("%dh", h)
	case h > 0:
		return fmt.Sprintf("%dh %dmin", h, m)
	default:
		return fmt.Sprintf("%dmin", m)
	}
}
