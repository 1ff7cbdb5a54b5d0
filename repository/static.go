package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/you/islandtransit/internal/config"
	"github.com/you/islandtransit/models"
)

// StaticLoader reads the four pre-generated JSON files over HTTP or from
// disk. Each file is fetched once per load with no retries
type StaticLoader struct {
	sources config.Sources
	client  *http.Client
}

// NewStaticLoader creates a loader for the given sources. A nil client uses
// a client without timeout; the load context bounds every request
func NewStaticLoader(sources config.Sources, client *http.Client) *StaticLoader {
	if client == nil {
		client = &http.Client{}
	}
	return &StaticLoader{sources: sources, client: client}
}

// Load fetches stations, lines, schedules and prices
func (l *StaticLoader) Load(ctx context.Context) (*models.Dataset, models.LoadStatus, error) {
	var status models.LoadStatus

	stations, err := loadCollection[models.Station](ctx, l, models.CollectionStations, l.sources.Stations, &status)
	if err != nil {
		return nil, status, err
	}
	lines, err := loadCollection[models.Line](ctx, l, models.CollectionLines, l.sources.Lines, &status)
	if err != nil {
		return nil, status, err
	}
	schedules, err := loadCollection[models.LineSchedule](ctx, l, models.CollectionSchedules, l.sources.Schedules, &status)
	if err != nil {
		return nil, status, err
	}
	fares, err := loadCollection[models.Fare](ctx, l, models.CollectionPrices, l.sources.Prices, &status)
	if err != nil {
		return nil, status, err
	}

	ds := models.NewDataset(l.sources.String(), stations, lines, schedules, fares)
	finishStatus(ds, &status)
	if status.Duplicates > 0 {
		log.Printf("Warning: dropped %d duplicate records from %s", status.Duplicates, ds.Source)
	}
	return ds, status, nil
}

// loadCollection fetches, decodes and validates one file. Any failure other
// than cancellation yields an empty collection
func loadCollection[T any](ctx context.Context, l *StaticLoader, name, location string, status *models.LoadStatus) ([]T, error) {
	records, err := fetchJSON[T](ctx, l, l.resolve(location))
	if err == nil {
		err = validateRecords(records)
	}
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		log.Printf("Warning: failed to load %s: %v", name, err)
		status.Fail(name, err)
		return []T{}, nil
	}
	status.Loaded(name, len(records))
	return records, nil
}

func fetchJSON[T any](ctx context.Context, l *StaticLoader, location string) ([]T, error) {
	body, err := l.open(ctx, location)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var records []T
	if err := json.NewDecoder(body).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", location, err)
	}
	return records, nil
}

func (l *StaticLoader) open(ctx context.Context, location string) (io.ReadCloser, error) {
	if isHTTP(location) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
		if err != nil {
			return nil, err
		}
		resp, err := l.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch %s: %w", location, err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("failed to fetch %s: status %d", location, resp.StatusCode)
		}
		return resp.Body, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(strings.TrimPrefix(location, "file://"))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", location, err)
	}
	return f, nil
}

// resolve turns a source entry into a URL or file path using the base
func (l *StaticLoader) resolve(location string) string {
	if isHTTP(location) || strings.HasPrefix(location, "file://") || filepath.IsAbs(location) {
		return location
	}

	base := l.sources.BaseURL
	if base == "" {
		return location
	}
	if isHTTP(base) {
		u, err := url.Parse(base)
		if err != nil {
			return location
		}
		if !strings.HasSuffix(u.Path, "/") {
			u.Path += "/"
		}
		ref, err := url.Parse(location)
		if err != nil {
			return location
		}
		return u.ResolveReference(ref).String()
	}
	return filepath.Join(strings.TrimPrefix(base, "file://"), location)
}

func isHTTP(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
