package models

import "strings"

// StationID identifies a station across every collection
type StationID string

// Coordinates is a WGS-84 position
type Coordinates struct {
	Lat float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lon float64 `json:"lon" validate:"gte=-180,lte=180"`
}

// Station represents a single station from stations.json
type Station struct {
	ID          StationID   `json:"id" validate:"required"`
	NameFR      string      `json:"name_fr" validate:"required"`
	NameEN      string      `json:"name_en"`
	IslandFR    string      `json:"island_fr" validate:"required"`
	IslandEN    string      `json:"island_en"`
	Coordinates Coordinates `json:"coordinates"`
}

// Name returns the display name for a language ("fr" or "en").
// English falls back to French when the translation is missing.
func (s Station) Name(lang string) string {
	if lang == "en" && s.NameEN != "" {
		return s.NameEN
	}
	return s.NameFR
}

// Island returns the island name for a language with the same fallback as Name
func (s Station) Island(lang string) string {
	if lang == "en" && s.IslandEN != "" {
		return s.IslandEN
	}
	return s.IslandFR
}

// OnIsland reports whether the station sits on the named island, matching
// either language case-insensitively
func (s Station) OnIsland(island string) bool {
	return strings.EqualFold(s.IslandFR, island) || strings.EqualFold(s.IslandEN, island)
}
