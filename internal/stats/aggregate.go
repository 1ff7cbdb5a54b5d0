// Package stats summarizes search results.
package stats

import (
	"math"

	"github.com/you/islandtransit/internal/timetable"
	"github.com/you/islandtransit/models"
)

// Aggregate computes count, average duration, economy price range and the
// departure band distribution of a result list.
//
// The average divides by the total number of results, so results without a
// duration pull it down. Third class is the economy price. An empty list
// yields zero statistics with an average of "0min"
func Aggregate(results []models.SearchResult, bands timetable.Bands) models.Statistics {
	st := models.Statistics{
		Count:           len(results),
		AverageDuration: timetable.FormatDuration(0),
	}
	if len(results) == 0 {
		return st
	}

	total := 0
	st.PriceRange.Min = results[0].Prices.ThirdClass
	st.PriceRange.Max = results[0].Prices.ThirdClass

	for _, r := range results {
		if r.DurationMinutes != nil {
			total += *r.DurationMinutes
		}

		price := r.Prices.ThirdClass
		if price < st.PriceRange.Min {
			st.PriceRange.Min = price
		}
		if price > st.PriceRange.Max {
			st.PriceRange.Max = price
		}

		hour, ok := timetable.Hour(r.DepartureTime)
		if !ok {
			continue
		}
		band, ok := bands.Of(hour)
		if !ok {
			continue
		}
		switch band {
		case models.TimeMorning:
			st.Distribution.Morning++
		case models.TimeAfternoon:
			st.Distribution.Afternoon++
		case models.TimeEvening:
			st.Distribution.Evening++
		}
	}

	avg := int(math.Round(float64(total) / float64(len(results))))
	st.AverageDurationMinutes = avg
	st.AverageDuration = timetable.FormatDuration(avg)

	return st
}
