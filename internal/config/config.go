package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	Store    StoreConfig
	Export   ExportConfig
	Sheets   SheetsConfig
	S3       S3Config
	Database DatabaseConfig
	Logger   LoggerConfig
}

// StoreConfig holds the WooCommerce store connection settings.
type StoreConfig struct {
	BaseURL        string
	ConsumerKey    string
	ConsumerSecret string
	After          string // ISO-8601 lower bound for order creation dates
	MaxPages       int    // safety ceiling for pagination
	TimeoutSeconds int
}

// ExportConfig holds settings for the CSV export.
type ExportConfig struct {
	OutputPath string
	CacheCosts bool // memoise product cost lookups within a run
}

// SheetsConfig holds Google Sheets upload settings. The upload only runs
// when a service account credentials file is supplied on the command line.
type SheetsConfig struct {
	CredentialsFile string
	SpreadsheetID   string
	Worksheet       string
}

// S3Config holds AWS S3 upload settings for the rendered CSV.
type S3Config struct {
	Enabled bool
	Bucket  string
	Region  string
	Key     string
}

// DatabaseConfig holds settings for the optional Postgres row sink.
type DatabaseConfig struct {
	Enabled         bool
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	MaxConnections  int
	MinConnections  int
	MaxConnLifetime int // seconds
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// storeCredentials mirrors the layout of the credentials JSON file.
type storeCredentials struct {
	BaseURL        string `json:"base_url"`
	ConsumerKey    string `json:"consumer_key"`
	ConsumerSecret string `json:"consumer_secret"`
}

// Load loads configuration from environment variables, then overlays store
// credentials from credentialsPath if the file exists. An empty path skips
// the file entirely.
func Load(credentialsPath string) (*Config, error) {
	godotenv.Load()

	cfg := &Config{
		Store: StoreConfig{
			BaseURL:        getEnv("WC_BASE_URL", ""),
			ConsumerKey:    getEnv("WC_CONSUMER_KEY", ""),
			ConsumerSecret: getEnv("WC_CONSUMER_SECRET", ""),
			After:          getEnv("WC_ORDERS_AFTER", "2025-01-01T00:00:00"),
			MaxPages:       getEnvAsInt("WC_MAX_PAGES", 10000),
			TimeoutSeconds: getEnvAsInt("WC_HTTP_TIMEOUT", 30),
		},
		Export: ExportConfig{
			OutputPath: getEnv("EXPORT_OUTPUT_PATH", "orders.csv"),
			CacheCosts: getEnvAsBool("EXPORT_CACHE_COSTS", false),
		},
		Sheets: SheetsConfig{
			SpreadsheetID: getEnv("SHEETS_SPREADSHEET_ID", "1kJH3Gk9IVJoLp6MqDj7lit_iqsMdYWYvEpsUz4pVDxc"),
			Worksheet:     getEnv("SHEETS_WORKSHEET", "order_data"),
		},
		S3: S3Config{
			Enabled: getEnvAsBool("S3_ENABLED", false),
			Bucket:  getEnv("S3_BUCKET", ""),
			Region:  getEnv("S3_REGION", "us-east-1"),
			Key:     getEnv("S3_KEY", "exports/orders.csv"),
		},
		Database: DatabaseConfig{
			Enabled:         getEnvAsBool("DB_ENABLED", false),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvAsInt("DB_PORT", 5432),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", ""),
			Database:        getEnv("DB_NAME", "orderexport"),
			MaxConnections:  getEnvAsInt("DB_MAX_CONNECTIONS", 10),
			MinConnections:  getEnvAsInt("DB_MIN_CONNECTIONS", 2),
			MaxConnLifetime: getEnvAsInt("DB_MAX_CONN_LIFETIME", 300),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "console"),
		},
	}

	if credentialsPath != "" {
		if err := cfg.loadStoreCredentials(credentialsPath); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadStoreCredentials overlays the store credentials from a JSON file.
// A missing file is not an error; the environment values stand.
func (c *Config) loadStoreCredentials(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read credentials file %s: %w", path, err)
	}

	var creds storeCredentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return fmt.Errorf("failed to parse credentials file %s: %w", path, err)
	}

	if creds.BaseURL != "" {
		c.Store.BaseURL = creds.BaseURL
	}
	if creds.ConsumerKey != "" {
		c.Store.ConsumerKey = creds.ConsumerKey
	}
	if creds.ConsumerSecret != "" {
		c.Store.ConsumerSecret = creds.ConsumerSecret
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Store.BaseURL == "" {
		return fmt.Errorf("store base URL is required")
	}

	if c.Store.ConsumerKey == "" {
		return fmt.Errorf("store consumer key is required")
	}

	if c.Store.ConsumerSecret == "" {
		return fmt.Errorf("store consumer secret is required")
	}

	if c.Store.After == "" {
		return fmt.Errorf("order cutoff timestamp is required")
	}

	if c.Store.MaxPages < 1 {
		return fmt.Errorf("max pages must be at least 1")
	}

	if c.Export.OutputPath == "" {
		return fmt.Errorf("export output path is required")
	}

	if c.S3.Enabled {
		if c.S3.Bucket == "" {
			return fmt.Errorf("S3 bucket is required when S3 is enabled")
		}
		if c.S3.Region == "" {
			return fmt.Errorf("S3 region is required when S3 is enabled")
		}
	}

	if c.Database.Enabled {
		if c.Database.Host == "" {
			return fmt.Errorf("database host is required")
		}
		if c.Database.Port < 1 || c.Database.Port > 65535 {
			return fmt.Errorf("invalid database port: %d", c.Database.Port)
		}
		if c.Database.User == "" {
			return fmt.Errorf("database user is required")
		}
		if c.Database.Database == "" {
			return fmt.Errorf("database name is required")
		}
		if c.Database.MinConnections > c.Database.MaxConnections {
			return fmt.Errorf("database min connections cannot exceed max connections")
		}
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	return nil
}

// ConnectionString returns the PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value.
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
