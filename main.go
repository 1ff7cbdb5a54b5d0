package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/you/islandtransit/handlers"
	"github.com/you/islandtransit/internal/config"
	"github.com/you/islandtransit/internal/logging"
	"github.com/you/islandtransit/internal/metrics"
	"github.com/you/islandtransit/internal/publisher"
	"github.com/you/islandtransit/internal/search"
	"github.com/you/islandtransit/internal/timetable"
	"github.com/you/islandtransit/repository"
)

func main() {
	logging.InitLogging()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	// Root context with cancellation on SIGINT/SIGTERM
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	bands, err := timetable.NewBands(cfg.EveningEndHour)
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	loader, closeLoader, err := newLoader(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize %s data backend: %v", cfg.DataBackend, err)
	}
	defer closeLoader()

	// Metrics
	collector := metrics.NewCollector(cfg.EveningEndHour, cfg.ReloadInterval)
	observers := []repository.Observer{metricsObserver{collector: collector}}
	if cfg.MetricsAddr != "" {
		metricsSrv := collector.Serve(cfg.MetricsAddr)
		defer metricsSrv.Close()
	}

	// Dataset notifications
	if cfg.NATSURL != "" {
		pub, err := publisher.NewNATSPublisher(cfg.NATSURL, cfg.NATSSubject, collector)
		if err != nil {
			log.Printf("Warning: NATS unavailable, dataset notifications disabled: %v", err)
		} else {
			defer pub.Close()
			observers = append(observers, natsObserver{pub: pub})
			log.Printf("Publishing dataset loads on %s", cfg.NATSSubject)
		}
	}

	holder := repository.NewHolder(loader, observers...)
	if _, err := holder.Reload(ctx); err != nil {
		log.Fatalf("Initial dataset load aborted: %v", err)
	}
	go holder.Run(ctx, cfg.ReloadInterval)

	repo := repository.NewTransitRepository(holder, cfg.MainlandIsland)
	stationHandler := handlers.NewStationHandler(repo)
	lineHandler := handlers.NewLineHandler(repo)
	fareHandler := handlers.NewFareHandler(repo, cfg.CurrencyCode)
	searchHandler := handlers.NewSearchHandler(repo, search.NewEngine(bands), collector, cfg.CurrencyCode)
	healthHandler := handlers.NewHealthHandler(repo)

	// Setup router
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	r.Get("/health", healthHandler.GetHealth)
	r.Get("/healthz", handlers.Healthz)
	r.Get("/api/status", healthHandler.GetStatus)

	// Browse API routes
	r.Get("/api/stations", stationHandler.GetAllStations)
	r.Get("/api/stations/{stationId}", stationHandler.GetStationByID)
	r.Get("/api/lines", lineHandler.GetAllLines)
	r.Get("/api/lines/{lineId}", lineHandler.GetLineByID)
	r.Get("/api/lines/{lineId}/schedules", lineHandler.GetLineSchedules)
	r.Get("/api/fares", fareHandler.GetFares)

	// Trip search
	r.Get("/api/search", searchHandler.Search)

	// Static file serving (if configured)
	if cfg.StaticDir != "" {
		fs := http.FileServer(http.Dir(cfg.StaticDir))
		r.Handle("/*", fs)
	}

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	log.Printf("API server starting on :%s (%s backend)", cfg.Port, cfg.DataBackend)
	log.Println("Browse endpoints:")
	log.Println("  GET /api/stations")
	log.Println("  GET /api/stations/{stationId}")
	log.Println("  GET /api/lines")
	log.Println("  GET /api/lines/{lineId}")
	log.Println("  GET /api/lines/{lineId}/schedules")
	log.Println("  GET /api/fares")
	log.Println("Search:")
	log.Println("  GET /api/search")
	log.Println("Health:")
	log.Println("  GET /health (with dataset load status)")
	log.Println("  GET /api/status")

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server failed to start: %v", err)
	}
	log.Println("API server stopped")
}

// newLoader builds the dataset loader for the configured backend
func newLoader(cfg *config.Config) (repository.Loader, func(), error) {
	switch cfg.DataBackend {
	case config.BackendSQLite:
		log.Printf("Connecting to SQLite database: %s", cfg.SQLitePath)
		l, err := repository.NewSQLiteLoader(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return l, func() { l.Close() }, nil
	case config.BackendPostgres:
		l, err := repository.NewPostgresLoader(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return l, l.Close, nil
	default:
		log.Printf("Loading static data from %s", cfg.Sources)
		return repository.NewStaticLoader(cfg.Sources, nil), func() {}, nil
	}
}
