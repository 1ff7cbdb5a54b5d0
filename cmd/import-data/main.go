package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/you/islandtransit/internal/config"
	"github.com/you/islandtransit/internal/db"
	"github.com/you/islandtransit/internal/logging"
	"github.com/you/islandtransit/repository"
)

func main() {
	logging.InitLogging()

	// Command line flags
	source := flag.String("source", "./data", "Directory or base URL holding stations.json, lines.json, schedules.json and prices.json")
	manifest := flag.String("sources", "", "Optional YAML manifest naming each collection")
	driver := flag.String("driver", db.DriverSQLite, "Database driver: sqlite or pgx")
	dsn := flag.String("dsn", "./data/transit.db", "SQLite path or PostgreSQL URL")
	keep := flag.Int("keep-imports", 10, "Import history rows to keep (0 keeps all)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	sources := config.DefaultSources(*source)
	if *manifest != "" {
		var err error
		sources, err = config.LoadSources(*manifest, *source)
		if err != nil {
			log.Fatalf("Failed to read sources: %v", err)
		}
	}

	log.Printf("Loading dataset from %s", sources)
	ds, status, err := repository.NewStaticLoader(sources, nil).Load(ctx)
	if err != nil {
		log.Fatalf("Load aborted: %v", err)
	}
	if status.Failed {
		for name, msg := range status.Failures() {
			log.Printf("ERROR %s: %s", name, msg)
		}
		log.Println("Refusing to import a partial dataset")
		os.Exit(1)
	}

	database, err := db.Connect(*driver, *dsn)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer database.Close()

	// Ensure schema exists (creates tables if needed)
	if err := database.EnsureSchema(ctx); err != nil {
		log.Fatalf("Failed to ensure schema: %v", err)
	}

	if err := database.ReplaceDataset(ctx, ds); err != nil {
		log.Fatalf("Failed to import dataset: %v", err)
	}

	counts := ds.Counts()
	log.Printf("SUCCESS: imported snapshot %s (%d stations, %d lines, %d trips, %d fares, %d duplicates dropped)",
		ds.SnapshotID, counts.Stations, counts.Lines, counts.Schedules, counts.Fares, ds.Duplicates())

	if *keep > 0 {
		if err := database.PruneImports(ctx, *keep); err != nil {
			log.Printf("Warning: failed to prune import history: %v", err)
		}
	}

	imports, err := database.ListImports(ctx)
	if err != nil {
		log.Printf("Warning: failed to list imports: %v", err)
		return
	}
	for _, imp := range imports {
		log.Printf("  %s  %s  %s  (%d trips)", imp.ImportedAtUTC, imp.SnapshotID, imp.Source, imp.Trips)
	}
}
