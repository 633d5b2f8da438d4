// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// Storage backends for the persisted slots.
const (
	StorageMemory   = "memory"
	StorageFile     = "file"
	StoragePostgres = "postgres"
	StorageMongo    = "mongo"
)

type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	Ledger  LedgerConfig
	JWT     JWTConfig
	Log     LogConfig
	// BackupURI is where exports are written: a directory or gs://bucket/prefix.
	BackupURI string
}

type ServerConfig struct {
	Addr string
}

type StorageConfig struct {
	Backend       string
	DataDir       string
	DatabaseURL   string
	MongoURI      string
	MongoDatabase string
}

type LedgerConfig struct {
	Currency   string
	Location   *time.Location
	StrictEdit bool
	// DevSeed adds a starter account when the ledger is empty.
	DevSeed bool
}

// JWTConfig enables bearer auth when Secret is set.
type JWTConfig struct {
	Secret   string
	Issuer   string
	Audience string
}

type LogConfig struct {
	Level  slog.Level
	Format string
}

// Load reads the environment. The storage backend defaults to postgres when
// DATABASE_URL is set and to memory otherwise.
func Load() (*Config, error) {
	dsn := getEnv("DATABASE_URL", "")
	backend := StorageMemory
	if dsn != "" {
		backend = StoragePostgres
	}
	backend = strings.ToLower(getEnv("FINBOARD_STORAGE", backend))

	loc, err := time.LoadLocation(getEnv("FINBOARD_TIMEZONE", "Local"))
	if err != nil {
		return nil, fmt.Errorf("invalid FINBOARD_TIMEZONE: %w", err)
	}

	format := strings.ToLower(getEnv("LOG_FORMAT", "json"))
	if format != "json" && format != "text" {
		return nil, fmt.Errorf("invalid LOG_FORMAT %q: want json or text", format)
	}

	cfg := &Config{
		Server: ServerConfig{
			Addr: getEnv("FINBOARD_ADDR", ":8080"),
		},
		Storage: StorageConfig{
			Backend:       backend,
			DataDir:       getEnv("FINBOARD_DATA_DIR", "./data"),
			DatabaseURL:   dsn,
			MongoURI:      getEnv("MONGO_URI", ""),
			MongoDatabase: getEnv("MONGO_DATABASE", "finboard"),
		},
		Ledger: LedgerConfig{
			Currency:   strings.ToUpper(getEnv("FINBOARD_CURRENCY", "BRL")),
			Location:   loc,
			StrictEdit: getBoolEnv("FINBOARD_STRICT_EDIT", false),
			DevSeed:    getBoolEnv("DEV_SEED", false),
		},
		JWT: JWTConfig{
			Secret:   getEnv("JWT_HS256_SECRET", ""),
			Issuer:   getEnv("JWT_ISSUER", ""),
			Audience: getEnv("JWT_AUDIENCE", ""),
		},
		Log: LogConfig{
			Level:  ParseLogLevel(os.Getenv("LOG_LEVEL")),
			Format: format,
		},
		BackupURI: getEnv("FINBOARD_BACKUP_URI", "./backups"),
	}

	switch cfg.Storage.Backend {
	case StorageMemory, StorageFile:
	case StoragePostgres:
		if cfg.Storage.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required when FINBOARD_STORAGE=postgres")
		}
	case StorageMongo:
		if cfg.Storage.MongoURI == "" {
			return nil, fmt.Errorf("MONGO_URI is required when FINBOARD_STORAGE=mongo")
		}
	default:
		return nil, fmt.Errorf("invalid FINBOARD_STORAGE %q", cfg.Storage.Backend)
	}
	return cfg, nil
}

// ParseLogLevel maps env values to a slog level, defaulting to info.
func ParseLogLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error", "err":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger builds the slog logger described by c, writing to w.
func (c LogConfig) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.Level}
	if c.Format == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return defaultValue
	}
}
