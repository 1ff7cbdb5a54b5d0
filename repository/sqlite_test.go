package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you/islandtransit/internal/config"
	"github.com/you/islandtransit/internal/db"
	"github.com/you/islandtransit/models"
)

// importDataset loads the test files and writes them through the importer
// path into a fresh SQLite file
func importDataset(t *testing.T) (string, *models.Dataset) {
	t.Helper()
	ctx := context.Background()

	want, status, err := NewStaticLoader(config.DefaultSources(writeDataDir(t, nil)), nil).Load(ctx)
	require.NoError(t, err)
	require.False(t, status.Failed)

	path := filepath.Join(t.TempDir(), "transit.db")
	store, err := db.Connect(db.DriverSQLite, path)
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.EnsureSchema(ctx))
	require.NoError(t, store.ReplaceDataset(ctx, want))
	return path, want
}

func TestSQLiteLoader_RoundTrip(t *testing.T) {
	path, want := importDataset(t)

	loader, err := NewSQLiteLoader(path)
	require.NoError(t, err)
	defer loader.Close()

	got, status, err := loader.Load(context.Background())
	require.NoError(t, err)

	assert.False(t, status.Failed)
	assert.Equal(t, "sqlite:"+path, got.Source)
	assert.Equal(t, want.Counts(), got.Counts())
	assert.Equal(t, want.Stations(), got.Stations())
	assert.Equal(t, want.Lines(), got.Lines())
	assert.Equal(t, want.Fares(), got.Fares())
	assert.Equal(t, want.LineSchedules(), got.LineSchedules())
}

func TestSQLiteLoader_MissingTables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.db")
	store, err := db.Connect(db.DriverSQLite, path)
	require.NoError(t, err)
	store.Close()

	loader, err := NewSQLiteLoader(path)
	require.NoError(t, err)
	defer loader.Close()

	ds, status, err := loader.Load(context.Background())
	require.NoError(t, err)

	assert.True(t, status.Failed)
	assert.Len(t, status.Failures(), 4)
	assert.Equal(t, models.DatasetCounts{}, ds.Counts())
}
