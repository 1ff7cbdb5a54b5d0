package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Sources locates the four static collections. Each entry is a URL, an
// absolute path, or a name resolved against BaseURL
type Sources struct {
	BaseURL   string `yaml:"base_url"`
	Stations  string `yaml:"stations" validate:"required"`
	Lines     string `yaml:"lines" validate:"required"`
	Schedules string `yaml:"schedules" validate:"required"`
	Prices    string `yaml:"prices" validate:"required"`
}

// DefaultSources uses the standard file names under base
func DefaultSources(base string) Sources {
	return Sources{
		BaseURL:   base,
		Stations:  "stations.json",
		Lines:     "lines.json",
		Schedules: "schedules.json",
		Prices:    "prices.json",
	}
}

// LoadSources reads a YAML source manifest. Missing entries fall back to
// the standard file names and a missing base_url to fallbackBase
func LoadSources(path, fallbackBase string) (Sources, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Sources{}, fmt.Errorf("failed to read sources file: %w", err)
	}
	var s Sources
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Sources{}, fmt.Errorf("failed to parse sources file %s: %w", path, err)
	}

	defaults := DefaultSources(fallbackBase)
	if s.BaseURL == "" {
		s.BaseURL = defaults.BaseURL
	}
	if s.Stations == "" {
		s.Stations = defaults.Stations
	}
	if s.Lines == "" {
		s.Lines = defaults.Lines
	}
	if s.Schedules == "" {
		s.Schedules = defaults.Schedules
	}
	if s.Prices == "" {
		s.Prices = defaults.Prices
	}

	if err := validator.New().Struct(s); err != nil {
		return Sources{}, fmt.Errorf("invalid sources file %s: %w", path, err)
	}
	return s, nil
}

// String describes the sources for logs and load status
func (s Sources) String() string {
	return s.BaseURL
}
