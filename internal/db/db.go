package db

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// schemaSQL is the single source of truth for the dataset schema.
// It is embedded at compile time from schema.sql.
//
//go:embed schema.sql
var schemaSQL string

// Supported database/sql drivers
const (
	DriverSQLite = "sqlite"
	DriverPgx    = "pgx"
)

// DB wraps a dataset database connection with write serialization
type DB struct {
	conn    *sql.DB
	driver  string
	writeMu sync.Mutex // Serializes imports so two writers never interleave
}

// Connect opens a SQLite file (WAL mode) or a PostgreSQL DSN through pgx
func Connect(driver, dsn string) (*DB, error) {
	switch driver {
	case DriverSQLite:
		dsn = dsn + "?_journal=WAL&_fk=1&_busy_timeout=5000"
	case DriverPgx:
	default:
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}

	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if driver == DriverSQLite {
		// SQLite only supports one writer at a time
		conn.SetMaxOpenConns(1)
		conn.SetMaxIdleConns(1)
	} else {
		conn.SetMaxOpenConns(5)
		conn.SetMaxIdleConns(2)
	}
	conn.SetConnMaxLifetime(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Printf("Connected to %s database", driver)
	return &DB{conn: conn, driver: driver}, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// Conn returns the underlying database connection
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// EnsureSchema creates tables if they don't exist.
// Uses the embedded schema.sql file as the single source of truth.
func (db *DB) EnsureSchema(ctx context.Context) error {
	db.writeMu.Lock()
	defer db.writeMu.Unlock()

	for _, stmt := range SchemaStatements() {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	log.Println("Database schema ensured (from embedded schema.sql)")
	return nil
}

// SchemaStatements splits the embedded schema into single statements,
// dropping comments
func SchemaStatements() []string {
	var lines []string
	for _, line := range strings.Split(schemaSQL, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		lines = append(lines, line)
	}

	var stmts []string
	for _, stmt := range strings.Split(strings.Join(lines, "\n"), ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}

// rebind rewrites "?" placeholders to "$n" for PostgreSQL
func (db *DB) rebind(query string) string {
	if db.driver != DriverPgx {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
