package models

import (
	"time"

	"github.com/google/uuid"
)

// Collection names, matching the static file names
const (
	CollectionStations  = "stations"
	CollectionLines     = "lines"
	CollectionSchedules = "schedules"
	CollectionPrices    = "prices"
)

// CollectionStatus reports how one collection loaded
type CollectionStatus struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
	Error string `json:"error,omitempty"`
}

// LoadStatus is the outcome of a dataset load. Failed is set when any
// collection was replaced by an empty one
type LoadStatus struct {
	SnapshotID  uuid.UUID          `json:"snapshotId"`
	Source      string             `json:"source"`
	LoadedAt    time.Time          `json:"loadedAt"`
	Collections []CollectionStatus `json:"collections"`
	Duplicates  int                `json:"duplicates"`
	Failed      bool               `json:"failed"`
}

// Fail records a failed collection
func (s *LoadStatus) Fail(name string, err error) {
	s.Collections = append(s.Collections, CollectionStatus{Name: name, Error: err.Error()})
	s.Failed = true
}

// Loaded records a collection that loaded with count records
func (s *LoadStatus) Loaded(name string, count int) {
	s.Collections = append(s.Collections, CollectionStatus{Name: name, Count: count})
}

// Failures returns collection name to error message for failed collections
func (s LoadStatus) Failures() map[string]string {
	out := make(map[string]string)
	for _, c := range s.Collections {
		if c.Error != "" {
			out[c.Name] = c.Error
		}
	}
	return out
}
