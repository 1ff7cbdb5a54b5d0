package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/you/islandtransit/models"

	_ "modernc.org/sqlite"
)

// SQLiteLoader reads a dataset written by the importer into a SQLite file
type SQLiteLoader struct {
	db   *sql.DB
	path string
}

// NewSQLiteLoader opens the SQLite database
func NewSQLiteLoader(dbPath string) (*SQLiteLoader, error) {
	db, err := sql.Open("sqlite", dbPath+"?_journal=WAL&_fk=1")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteLoader{db: db, path: dbPath}, nil
}

// NewSQLiteLoaderFromDB wraps an already open connection
func NewSQLiteLoaderFromDB(db *sql.DB, path string) *SQLiteLoader {
	return &SQLiteLoader{db: db, path: path}
}

// Close closes the database connection
func (l *SQLiteLoader) Close() error {
	return l.db.Close()
}

// Load reads every collection
func (l *SQLiteLoader) Load(ctx context.Context) (*models.Dataset, models.LoadStatus, error) {
	return readDataset(ctx, sqlQuerier{db: l.db}, "sqlite:"+l.path)
}

type sqlQuerier struct {
	db *sql.DB
}

func (q sqlQuerier) query(ctx context.Context, query string) (rows, error) {
	r, err := q.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	return sqlRows{r}, nil
}

// sqlRows drops the error from Close to match pgx.Rows
type sqlRows struct {
	*sql.Rows
}

func (r sqlRows) Close() { r.Rows.Close() }
