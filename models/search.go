package models

// TimePreference is a time-of-day band applied to the origin departure
type TimePreference string

const (
	TimeAny       TimePreference = "any"
	TimeMorning   TimePreference = "morning"
	TimeAfternoon TimePreference = "afternoon"
	TimeEvening   TimePreference = "evening"
)

// Valid reports whether the preference is known. The empty value means any
func (p TimePreference) Valid() bool {
	switch p {
	case "", TimeAny, TimeMorning, TimeAfternoon, TimeEvening:
		return true
	}
	return false
}

// SearchFilters narrows a trip search. The zero value applies no filter
type SearchFilters struct {
	// ServiceClass never filters; it picks the price callers rank by
	ServiceClass   ServiceClass
	TimePreference TimePreference
	// Day restricts trips to those running on a days_of_week value
	Day string
}

// SearchResult is one itinerary between two stations on a single trip
type SearchResult struct {
	Origin      Station  `json:"origin"`
	Destination Station  `json:"destination"`
	LineID      LineID   `json:"lineId"`
	Schedule    Schedule `json:"schedule"`
	Prices      Prices   `json:"prices"`

	DepartureTime string `json:"departureTime,omitempty"` // HH:MM at origin
	ArrivalTime   string `json:"arrivalTime,omitempty"`   // HH:MM at destination

	// DurationMinutes is nil when the duration is not available
	DurationMinutes *int   `json:"durationMinutes"`
	Duration        string `json:"duration"` // "1h 35min" or "N/A"

	DistanceKm float64 `json:"distanceKm"` // rounded to the nearest km
}

// Price returns the fare of the result for a service class
func (r SearchResult) Price(class ServiceClass) int {
	return r.Prices.For(class)
}

// PriceRange is the min/max economy price over a result set
type PriceRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// TimeDistribution counts results per departure band
type TimeDistribution struct {
	Morning   int `json:"morning"`
	Afternoon int `json:"afternoon"`
	Evening   int `json:"evening"`
}

// Statistics summarizes a list of search results
type Statistics struct {
	Count                  int              `json:"count"`
	AverageDuration        string           `json:"averageDuration"`
	AverageDurationMinutes int              `json:"averageDurationMinutes"`
	PriceRange             PriceRange       `json:"priceRange"`
	Distribution           TimeDistribution `json:"distribution"`
}
