package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	ServiceName string
	Version     string
	Environment string

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	APIKey         string   // API key for authentication
	TrustedProxies []string // Proxy IPs whose X-Forwarded-For headers are honored

	LogDir string

	CatalogPath   string
	SweepInterval time.Duration
	SweepBudget   time.Duration

	// Notification relay (optional; reminders are logged when unset)
	RelayURL      string
	RelayPassword string

	// Task tracker API (optional; reminders fall back to generic nudges)
	TaskTrackerURL    string
	TaskTrackerAPIKey string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		ServiceName: getEnv("SERVICE_NAME", "pondkeeper"),
		Version:     getEnv("VERSION", "dev"),
		Environment: getEnv("ENVIRONMENT", "dev"),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  getEnv("DB_PASSWORD", "postgres"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBName:      getEnv("DB_NAME", "pondkeeper"),
		APIKey:      getEnv("API_KEY", ""),
		LogDir:      getEnv("LOG_DIR", DefaultLogDir),
		CatalogPath: getEnv("CATALOG_PATH", ConfigPathCatalog),

		RelayURL:      getEnv("RELAY_URL", ""),
		RelayPassword: getEnv("RELAY_PASSWORD", ""),

		TaskTrackerURL:    getEnv("TASK_TRACKER_URL", ""),
		TaskTrackerAPIKey: getEnv("TASK_TRACKER_API_KEY", ""),
	}

	if proxies := getEnv("TRUSTED_PROXIES", ""); proxies != "" {
		for _, p := range strings.Split(proxies, ",") {
			if p = strings.TrimSpace(p); p != "" {
				cfg.TrustedProxies = append(cfg.TrustedProxies, p)
			}
		}
	}

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	sweepInterval, err := time.ParseDuration(getEnv("REMINDER_SWEEP_INTERVAL", DefaultSweepInterval))
	if err != nil {
		return nil, fmt.Errorf("invalid REMINDER_SWEEP_INTERVAL value: %w", err)
	}
	cfg.SweepInterval = sweepInterval

	sweepBudget, err := time.ParseDuration(getEnv("REMINDER_SWEEP_BUDGET", DefaultSweepBudget))
	if err != nil {
		return nil, fmt.Errorf("invalid REMINDER_SWEEP_BUDGET value: %w", err)
	}
	cfg.SweepBudget = sweepBudget

	// Validate API key is set
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
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
