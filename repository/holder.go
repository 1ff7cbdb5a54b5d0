package repository

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/you/islandtransit/models"
)

// Observer is told about every completed load, including partial ones
type Observer interface {
	DatasetLoaded(ds *models.Dataset, status models.LoadStatus)
}

// ObserverFunc adapts a function to Observer
type ObserverFunc func(ds *models.Dataset, status models.LoadStatus)

func (f ObserverFunc) DatasetLoaded(ds *models.Dataset, status models.LoadStatus) { f(ds, status) }

// Holder keeps the current dataset. Readers never block; a reload swaps
// the dataset and its status in one step
type Holder struct {
	loader    Loader
	observers []Observer

	reloadMu sync.Mutex
	current  atomic.Pointer[snapshot]
}

type snapshot struct {
	dataset *models.Dataset
	status  models.LoadStatus
	loaded  bool
}

// NewHolder creates a holder serving an empty dataset until the first load
func NewHolder(loader Loader, observers ...Observer) *Holder {
	h := &Holder{loader: loader, observers: observers}
	empty := models.NewDataset("", nil, nil, nil, nil)
	h.current.Store(&snapshot{dataset: empty, status: models.LoadStatus{SnapshotID: empty.SnapshotID, LoadedAt: empty.LoadedAt}})
	return h
}

// Current returns the dataset in service. It is never nil
func (h *Holder) Current() *models.Dataset {
	return h.current.Load().dataset
}

// Status returns the status of the last load and whether a load has
// completed yet
func (h *Holder) Status() (models.LoadStatus, bool) {
	s := h.current.Load()
	return s.status, s.loaded
}

// Reload loads a new dataset and puts it in service, even when some
// collections failed. A cancelled load leaves the current dataset in place
func (h *Holder) Reload(ctx context.Context) (models.LoadStatus, error) {
	h.reloadMu.Lock()
	defer h.reloadMu.Unlock()

	start := time.Now()
	ds, status, err := h.loader.Load(ctx)
	if err != nil {
		return status, err
	}

	h.current.Store(&snapshot{dataset: ds, status: status, loaded: true})

	counts := ds.Counts()
	log.Printf("Loaded dataset %s from %s in %v: %d stations, %d lines, %d trips, %d fares (failed=%t)",
		ds.SnapshotID, ds.Source, time.Since(start).Round(time.Millisecond),
		counts.Stations, counts.Lines, counts.Schedules, counts.Fares, status.Failed)

	for _, o := range h.observers {
		o.DatasetLoaded(ds, status)
	}
	return status, nil
}

// Run reloads every interval until ctx is cancelled. A non-positive
// interval returns immediately
func (h *Holder) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Printf("Reloading dataset every %v", interval)
	for {
		select {
		case <-ctx.Done():
			log.Println("Dataset reload loop stopped")
			return
		case <-ticker.C:
			if _, err := h.Reload(ctx); err != nil && ctx.Err() == nil {
				log.Printf("Error reloading dataset: %v", err)
			}
		}
	}
}
