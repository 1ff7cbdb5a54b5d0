// Package geo estimates great-circle distances between stations.
package geo

import (
	"fmt"
	"math"
	"strconv"
)

const earthRadiusKm = 6371

// Haversine calculates the distance between two points in kilometers
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	deltaPhi := (lat2 - lat1) * math.Pi / 180
	deltaLambda := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(deltaPhi/2)*math.Sin(deltaPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(deltaLambda/2)*math.Sin(deltaLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// RoundTenth rounds a distance to one decimal place, as shown to riders.
func RoundTenth(km float64) float64 {
	return math.Round(km*10) / 10
}

// RoundKm rounds a distance to the nearest kilometer, as used for fares
// and route matching.
func RoundKm(km float64) float64 {
	return math.Round(km)
}

// FormatDistance renders distances under 1 km in whole meters and
// everything else in kilometers with at most one decimal.
func FormatDistance(km float64) string {
	if km < 1 {
		return fmt.Sprintf("%d m", int(math.Round(km*1000)))
	}
	return strconv.FormatFloat(RoundTenth(km), 'f', -1, 64) + " km"
}
