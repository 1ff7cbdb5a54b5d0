package models

// LineID identifies a line
type LineID string

// Line represents a line from lines.json with its ordered station ids
type Line struct {
	ID            LineID      `json:"id" validate:"required"`
	Name          string      `json:"name" validate:"required"`
	DescriptionFR string      `json:"description_fr"`
	DescriptionEN string      `json:"description_en"`
	StationIDs    []StationID `json:"station_ids"`
}

// Description returns the line description for a language
func (l Line) Description(lang string) string {
	if lang == "en" && l.DescriptionEN != "" {
		return l.DescriptionEN
	}
	return l.DescriptionFR
}

// LineDetails is a line with its stations resolved against the station
// collection. Unknown station ids are dropped
type LineDetails struct {
	Line
	Stations      []Station `json:"stations"`
	IslandRoute   bool      `json:"islandRoute"`
	ScheduleCount int       `json:"scheduleCount"`
}
