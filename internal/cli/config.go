package cli

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type Config struct {
	APIBaseURL      string        // Base URL of the VidScribe API (default: http://localhost:8000/api)
	StateFile       string        // Path to the SQLite state database (default: ~/.scribe/state.db)
	StatePassphrase string        // Passphrase sealing tokens at rest
	NoPersist       bool          // Keep credentials in memory only
	Env             string        // Environment (dev, prod) (default: dev)
	LogLevel        string        // Log level (debug, info, warn, error) (default: info)
	LogFormat       string        // Log format (json, text) (default: text)
	RequestTimeout  time.Duration // Per-request HTTP timeout (default: 30s)
	RefreshTimeout  time.Duration // Token refresh timeout (default: 10s)
	RequestsPerMin  int           // Outbound request budget, 0 disables pacing (default: 120)
}

// defaultStatePassphrase seals local state when SCRIBE_STATE_KEY is unset.
// It keeps tokens out of casual file greps; set a real passphrase for
// anything stronger.
const defaultStatePassphrase = "scribe-local-state"

func LoadConfig() Config {
	return Config{
		APIBaseURL:      getEnvOrDefault("SCRIBE_API_URL", "http://localhost:8000/api"),
		StateFile:       getEnvOrDefault("SCRIBE_STATE_FILE", defaultStateFile()),
		StatePassphrase: getEnvOrDefault("SCRIBE_STATE_KEY", defaultStatePassphrase),
		NoPersist:       getEnvBoolOrDefault("SCRIBE_NO_PERSIST", false),
		Env:             getEnvOrDefault("ENV", "dev"),
		LogLevel:        getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       getEnvOrDefault("LOG_FORMAT", "text"),
		RequestTimeout:  getEnvDurationOrDefault("SCRIBE_REQUEST_TIMEOUT", 30*time.Second),
		RefreshTimeout:  getEnvDurationOrDefault("SCRIBE_REFRESH_TIMEOUT", 10*time.Second),
		RequestsPerMin:  getEnvIntOrDefault("SCRIBE_REQUESTS_PER_MIN", 120),
	}
}

func defaultStateFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "scribe-state.db"
	}
	return filepath.Join(home, ".scribe", "state.db")
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if boolValue, err := strconv.ParseBool(value); err == nil {
		return boolValue
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Plain integers are treated as seconds
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}
	return defaultValue
}
