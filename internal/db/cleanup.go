package db

import (
	"context"
	"fmt"
	"log"
)

// PruneImports keeps the most recent keep rows of the import history
func (db *DB) PruneImports(ctx context.Context, keep int) error {
	if keep < 1 {
		keep = 1
	}

	db.writeMu.Lock()
	defer db.writeMu.Unlock()

	result, err := db.conn.ExecContext(ctx, db.rebind(`
		DELETE FROM dataset_imports
		WHERE snapshot_id NOT IN (
			SELECT snapshot_id FROM dataset_imports
			ORDER BY imported_at_utc DESC
			LIMIT ?
		)`), keep)
	if err != nil {
		return fmt.Errorf("failed to prune dataset imports: %w", err)
	}

	if rows, _ := result.RowsAffected(); rows > 0 {
		log.Printf("Cleanup: deleted %d old dataset import records", rows)
	}
	return nil
}

// ImportRecord is one row of the import history
type ImportRecord struct {
	SnapshotID    string
	ImportedAtUTC string
	Source        string
	Trips         int
}

// ListImports returns the import history, newest first
func (db *DB) ListImports(ctx context.Context) ([]ImportRecord, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT snapshot_id, imported_at_utc, source, trips
		FROM dataset_imports
		ORDER BY imported_at_utc DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query dataset imports: %w", err)
	}
	defer rows.Close()

	var records []ImportRecord
	for rows.Next() {
		var r ImportRecord
		if err := rows.Scan(&r.SnapshotID, &r.ImportedAtUTC, &r.Source, &r.Trips); err != nil {
			return nil, fmt.Errorf("failed to scan dataset import: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
