package config

import (
	"fmt"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int // ops listener: health + metrics
	LogLevel    string
	LogFormat   string
	Environment string
	Version     string

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	DBMaxConns       int
	DBMaxConnIdle    time.Duration
	DBMaxConnLife    time.Duration
	DBLockTimeout    time.Duration
	AuditBufferSize  int
	CatalogCacheSize int
	CatalogCacheTTL  time.Duration

	// ResolveAllLevels switches the level-up algorithm from the original
	// single-step resolution to a full loop over banked XP.
	ResolveAllLevels bool
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:    getEnv("LOG_LEVEL", "INFO"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		Environment: getEnv("ENVIRONMENT", "dev"),
		Version:     getEnv("VERSION", "dev"),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  getEnv("DB_PASSWORD", "postgres"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBName:      getEnv("DB_NAME", "dustbound"),
	}

	var err error
	if cfg.Port, err = getEnvInt("PORT", DefaultOpsPort); err != nil {
		return nil, err
	}
	if cfg.DBMaxConns, err = getEnvInt("DB_MAX_CONNS", DefaultDBMaxConns); err != nil {
		return nil, err
	}
	if cfg.AuditBufferSize, err = getEnvInt("AUDIT_BUFFER_SIZE", DefaultAuditBufferSize); err != nil {
		return nil, err
	}
	if cfg.CatalogCacheSize, err = getEnvInt("CATALOG_CACHE_SIZE", DefaultCatalogCacheSize); err != nil {
		return nil, err
	}
	if cfg.DBMaxConnIdle, err = getEnvDuration("DB_MAX_CONN_IDLE", DefaultDBMaxConnIdle); err != nil {
		return nil, err
	}
	if cfg.DBMaxConnLife, err = getEnvDuration("DB_MAX_CONN_LIFE", DefaultDBMaxConnLife); err != nil {
		return nil, err
	}
	if cfg.DBLockTimeout, err = getEnvDuration("DB_LOCK_TIMEOUT", DefaultDBLockTimeout); err != nil {
		return nil, err
	}
	if cfg.CatalogCacheTTL, err = getEnvDuration("CATALOG_CACHE_TTL", DefaultCatalogCacheTTL); err != nil {
		return nil, err
	}
	if cfg.ResolveAllLevels, err = getEnvBool("QUEST_RESOLVE_ALL_LEVELS", false); err != nil {
		return nil, err
	}

	return cfg, nil
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

func getEnvInt(key string, defaultValue int) (int, error) {
	raw := getEnv(key, strconv.Itoa(defaultValue))
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return v, nil
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	raw := getEnv(key, strconv.FormatBool(defaultValue))
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return v, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := getEnv(key, defaultValue.String())
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return v, nil
}
