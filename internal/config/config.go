package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Data backends
const (
	BackendStatic   = "static"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// Config holds all configuration for the API server
type Config struct {
	// HTTP
	Port               string   `validate:"required,numeric"`
	CORSAllowedOrigins []string `validate:"min=1,dive,required"`
	StaticDir          string

	// Data store
	DataBackend    string `validate:"oneof=static sqlite postgres"`
	Sources        Sources
	SQLitePath     string        `validate:"required_if=DataBackend sqlite"`
	DatabaseURL    string        `validate:"required_if=DataBackend postgres"`
	ReloadInterval time.Duration `validate:"gte=0"`

	// Search and display
	EveningEndHour int    `validate:"gt=18,lte=24"`
	MainlandIsland string `validate:"required"`
	CurrencyCode   string `validate:"required,len=3"`

	// Notifications and metrics; empty values disable them
	NATSURL     string
	NATSSubject string `validate:"required"`
	MetricsAddr string
}

// Load reads configuration from .env files and environment variables with
// sensible defaults, then validates it
func Load() (*Config, error) {
	// Base .env first, then .env.local which overrides for local development
	_ = godotenv.Load(".env")
	_ = godotenv.Overload(".env.local")

	reloadSec, err := getEnvInt("RELOAD_INTERVAL_SEC", 0)
	if err != nil {
		return nil, err
	}
	eveningEnd, err := getEnvInt("EVENING_END_HOUR", 22)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:               getEnv("PORT", "8081"),
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173")),
		StaticDir:          os.Getenv("STATIC_DIR"),

		DataBackend:    strings.ToLower(getEnv("DATA_BACKEND", BackendStatic)),
		SQLitePath:     getEnv("SQLITE_DATABASE", "./data/transit.db"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		ReloadInterval: time.Duration(reloadSec) * time.Second,

		EveningEndHour: eveningEnd,
		MainlandIsland: getEnv("MAINLAND_ISLAND", "Grande Terre"),
		CurrencyCode:   getEnv("CURRENCY_CODE", "XPF"),

		NATSURL:     os.Getenv("NATS_URL"),
		NATSSubject: getEnv("NATS_SUBJECT", "transit.dataset.loaded"),
		MetricsAddr: os.Getenv("METRICS_ADDR"),
	}

	baseURL := getEnv("DATA_BASE_URL", "./data")
	if path := os.Getenv("DATA_SOURCES_FILE"); path != "" {
		cfg.Sources, err = LoadSources(path, baseURL)
		if err != nil {
			return nil, err
		}
	} else {
		cfg.Sources = DefaultSources(baseURL)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, value)
	}
	return n, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
