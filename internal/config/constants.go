package config

import (
	"os"
	"time"
)

// Defaults for environment-tunable settings.
const (
	DefaultOpsPort          = 8080
	DefaultDBMaxConns       = 25
	DefaultDBMaxConnIdle    = 30 * time.Minute
	DefaultDBMaxConnLife    = time.Hour
	DefaultDBLockTimeout    = 5 * time.Second
	DefaultAuditBufferSize  = 1024
	DefaultCatalogCacheSize = 256
	DefaultCatalogCacheTTL  = 5 * time.Minute
)

// Paths to seed data consumed by cmd/setup.
const (
	ConfigPathItems  = "configs/items.json"
	ConfigPathQuests = "configs/quests.json"
)

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
