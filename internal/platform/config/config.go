package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store backends.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// Lock backends.
const (
	LockLocal = "local"
	LockRedis = "redis"
)

const (
	defaultLockWaitTimeout = 5 * time.Second
	defaultLockTTL         = 30 * time.Second
)

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool
	LogLevel     string

	// Storage
	LedgerStore    string
	DatabaseURL    string
	RunMigrations  bool
	MigrationsPath string
	DBMaxConns     int32

	// Account holds
	LockBackend     string
	LockWaitTimeout time.Duration
	LockTTL         time.Duration
	RedisAddr       string
	RedisPassword   string
	RedisDB         int

	// HTTP
	RateLimit          string
	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LEDGER_STORE", StoreMemory)
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("RUN_MIGRATIONS", true)
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("LOCK_BACKEND", LockLocal)
	v.SetDefault("LOCK_WAIT_TIMEOUT", defaultLockWaitTimeout.String())
	v.SetDefault("LOCK_TTL", defaultLockTTL.String())
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("RATE_LIMIT", "100-S")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.AutomaticEnv()

	cfg := &Config{
		Port:           v.GetString("PORT"),
		IsProduction:   v.GetBool("IS_PRODUCTION"),
		LogLevel:       strings.ToLower(v.GetString("LOG_LEVEL")),
		LedgerStore:    strings.ToLower(v.GetString("LEDGER_STORE")),
		DatabaseURL:    v.GetString("PGSQL_URL"),
		RunMigrations:  v.GetBool("RUN_MIGRATIONS"),
		MigrationsPath: v.GetString("MIGRATIONS_PATH"),
		DBMaxConns:     v.GetInt32("DB_MAX_CONNS"),
		LockBackend:    strings.ToLower(v.GetString("LOCK_BACKEND")),
		RedisAddr:      v.GetString("REDIS_ADDR"),
		RedisPassword:  v.GetString("REDIS_PASSWORD"),
		RedisDB:        v.GetInt("REDIS_DB"),
		RateLimit:      v.GetString("RATE_LIMIT"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.LockWaitTimeout = parseDuration(v, "LOCK_WAIT_TIMEOUT", defaultLockWaitTimeout)
	cfg.LockTTL = parseDuration(v, "LOCK_TTL", defaultLockTTL)

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	switch cfg.LedgerStore {
	case StoreMemory:
	case StorePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("PGSQL_URL is required when LEDGER_STORE=%s", StorePostgres)
		}
	default:
		return nil, fmt.Errorf("unknown LEDGER_STORE %q", cfg.LedgerStore)
	}

	switch cfg.LockBackend {
	case LockLocal, LockRedis:
	default:
		return nil, fmt.Errorf("unknown LOCK_BACKEND %q", cfg.LockBackend)
	}

	return cfg, nil
}

// parseDuration reads key as a duration, falling back to def with a warning
// when the value does not parse or is not positive.
func parseDuration(v *viper.Viper, key string, def time.Duration) time.Duration {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def)
		return def
	}
	return d
}
