package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

// ClientConfig holds configuration for the unishop client.
type ClientConfig struct {
	APIBaseURL string        // Storefront API base URL (default http://localhost:8080)
	DBPath     string        // SQLite path for the local session cache (":memory:" for testing)
	Timeout    time.Duration // HTTP timeout for remote calls
	LogLevel   string        // Log level: debug, info, warn, error
	LogFormat  string        // Log format: text, json
}

// DevServerConfig holds configuration for the stub storefront server.
type DevServerConfig struct {
	Addr      string // Listen address (default ":8080")
	LogLevel  string // Log level: debug, info, warn, error
	LogFormat string // Log format: text, json
	RateLimit float64 // Requests per second per client, 0 disables limiting
	RateBurst int     // Token bucket burst size
}

// LoadClient builds a ClientConfig from defaults, an optional .env file, and
// environment variables (UNISHOP_API, UNISHOP_DB).
func LoadClient() ClientConfig {
	_ = godotenv.Load() // .env is optional

	return ClientConfig{
		APIBaseURL: getEnv("UNISHOP_API", "http://localhost:8080"),
		DBPath:     getEnv("UNISHOP_DB", defaultDBPath()),
		Timeout:    15 * time.Second,
		LogLevel:   getEnv("UNISHOP_LOG_LEVEL", "info"),
		LogFormat:  getEnv("UNISHOP_LOG_FORMAT", "text"),
	}
}

// LoadDevServer builds a DevServerConfig from defaults, an optional .env
// file, and environment variables.
func LoadDevServer() DevServerConfig {
	_ = godotenv.Load()

	return DevServerConfig{
		Addr:      getEnv("UNISHOP_DEV_ADDR", ":8080"),
		LogLevel:  getEnv("UNISHOP_LOG_LEVEL", "info"),
		LogFormat: getEnv("UNISHOP_LOG_FORMAT", "text"),
		RateLimit: 50,
		RateBurst: 100,
	}
}

// defaultDBPath returns ~/.unishop/unishop.db, falling back to a relative
// path when the home directory cannot be resolved.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "unishop.db"
	}
	return filepath.Join(home, ".unishop", "unishop.db")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
