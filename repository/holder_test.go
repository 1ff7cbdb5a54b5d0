package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you/islandtransit/models"
)

type fakeLoader struct {
	mu    sync.Mutex
	calls int
	err   error
	fail  bool
}

func (f *fakeLoader) Load(ctx context.Context) (*models.Dataset, models.LoadStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, models.LoadStatus{}, f.err
	}

	var status models.LoadStatus
	stations := []models.Station{{ID: "S1", NameFR: "Nouméa", IslandFR: "Grande Terre"}}
	status.Loaded(models.CollectionStations, len(stations))
	if f.fail {
		status.Fail(models.CollectionPrices, errors.New("boom"))
	}
	ds := models.NewDataset("fake", stations, nil, nil, nil)
	status.SnapshotID = ds.SnapshotID
	return ds, status, nil
}

func (f *fakeLoader) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestHolder_StartsEmpty(t *testing.T) {
	h := NewHolder(&fakeLoader{})

	require.NotNil(t, h.Current())
	assert.Empty(t, h.Current().Stations())
	_, loaded := h.Status()
	assert.False(t, loaded)
}

func TestHolder_ReloadSwapsAndNotifies(t *testing.T) {
	var notified []models.LoadStatus
	observer := ObserverFunc(func(ds *models.Dataset, status models.LoadStatus) {
		notified = append(notified, status)
	})
	h := NewHolder(&fakeLoader{}, observer)

	before := h.Current()
	status, err := h.Reload(context.Background())
	require.NoError(t, err)

	after := h.Current()
	assert.NotSame(t, before, after)
	assert.Equal(t, status.SnapshotID, after.SnapshotID)
	assert.Len(t, after.Stations(), 1)

	got, loaded := h.Status()
	assert.True(t, loaded)
	assert.Equal(t, status, got)
	require.Len(t, notified, 1, "one notification per load")
	assert.Equal(t, status, notified[0])
}

func TestHolder_PartialLoadIsInstalled(t *testing.T) {
	h := NewHolder(&fakeLoader{fail: true})

	status, err := h.Reload(context.Background())
	require.NoError(t, err)

	assert.True(t, status.Failed)
	assert.Len(t, h.Current().Stations(), 1)
}

func TestHolder_FailedLoadKeepsCurrent(t *testing.T) {
	loader := &fakeLoader{}
	h := NewHolder(loader)
	_, err := h.Reload(context.Background())
	require.NoError(t, err)
	current := h.Current()

	loader.err = context.Canceled
	_, err = h.Reload(context.Background())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Same(t, current, h.Current())
}

func TestHolder_Run(t *testing.T) {
	loader := &fakeLoader{}
	h := NewHolder(loader)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		h.Run(ctx, 10*time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool { return loader.Calls() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()
	<-done
}

func TestHolder_RunDisabled(t *testing.T) {
	loader := &fakeLoader{}
	NewHolder(loader).Run(context.Background(), 0)
	assert.Equal(t, 0, loader.Calls())
}
