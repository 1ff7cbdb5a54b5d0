package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/you/islandtransit/models"
)

// PostgresLoader reads a dataset written by the importer into PostgreSQL
type PostgresLoader struct {
	pool *pgxpool.Pool
}

func NewPostgresLoader(databaseURL string) (*PostgresLoader, error) {
	pool, err := pgxpool.New(context.Background(), databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(context.Background()); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresLoader{pool: pool}, nil
}

func (l *PostgresLoader) Close() {
	l.pool.Close()
}

// Load reads every collection
func (l *PostgresLoader) Load(ctx context.Context) (*models.Dataset, models.LoadStatus, error) {
	return readDataset(ctx, pgxQuerier{pool: l.pool}, "postgres:"+l.pool.Config().ConnConfig.Database)
}

type pgxQuerier struct {
	pool *pgxpool.Pool
}

func (q pgxQuerier) query(ctx context.Context, query string) (rows, error) {
	return q.pool.Query(ctx, query)
}
