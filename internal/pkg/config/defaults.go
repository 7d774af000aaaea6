package config

import "time"

// Default values for configuration.
const (
	// Server defaults
	DefaultServerHost      = "127.0.0.1"
	DefaultServerPort      = 8080
	DefaultReadTimeout     = 10 * time.Second
	DefaultWriteTimeout    = 30 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 15 * time.Second
	DefaultMaxUploadSizeMB = 50
	DefaultCleanupInterval = 1 * time.Hour

	// Processing defaults
	DefaultTaskTimeout = 120 * time.Second
	DefaultTaskTTL     = 24 * time.Hour
	DefaultCacheTTL    = 60 * time.Minute

	// Analytics defaults
	DefaultLimit         = 10
	DefaultMinWordLength = 2

	// Logging defaults
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)
