package timetable

import (
	"sort"

	"github.com/you/islandtransit/models"
)

// SelectSchedules applies a schedule browsing query and orders the trips by
// their first departure. The input slice is left untouched
func SelectSchedules(schedules []models.Schedule, q models.ScheduleQuery) []models.Schedule {
	out := make([]models.Schedule, 0, len(schedules))
	for _, s := range schedules {
		if q.Direction != "" && s.Direction != q.Direction {
			continue
		}
		if !s.RunsOn(q.Day) {
			continue
		}
		out = append(out, s)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return SortKey(out[i].FirstDeparture()) < SortKey(out[j].FirstDeparture())
	})
	return out
}

// SortKey maps a missing departure to "23:59" so it sorts last
func SortKey(departure string) string {
	if departure == "" {
		return "23:59"
	}
	return departure
}
