package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Environment string `mapstructure:"ENVIRONMENT"`
	Port        string `mapstructure:"PORT"`
	BindAddress string `mapstructure:"BIND_ADDRESS"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`

	// Log file rotation (disabled when LOG_FILE is empty)
	LogFile       string `mapstructure:"LOG_FILE"`
	LogMaxSizeMB  int    `mapstructure:"LOG_MAX_SIZE_MB"`
	LogMaxBackups int    `mapstructure:"LOG_MAX_BACKUPS"`
	LogMaxAgeDays int    `mapstructure:"LOG_MAX_AGE_DAYS"`

	// Database configuration
	DatabaseURL      string        `mapstructure:"DATABASE_URL"`
	DatabaseHost     string        `mapstructure:"DB_HOST"`
	DatabasePort     string        `mapstructure:"DB_PORT"`
	DatabaseUser     string        `mapstructure:"DB_USER"`
	DatabasePassword string        `mapstructure:"DB_PASSWORD"`
	DatabaseName     string        `mapstructure:"DB_NAME"`
	DatabaseSSLMode  string        `mapstructure:"DB_SSL_MODE"`
	DBMaxOpenConns   int           `mapstructure:"DB_MAX_OPEN_CONNS"`
	DBMaxIdleConns   int           `mapstructure:"DB_MAX_IDLE_CONNS"`
	DBStatementTTL   time.Duration `mapstructure:"DB_STATEMENT_TIMEOUT"`
	DBAutoMigrate    bool          `mapstructure:"DB_AUTO_MIGRATE"`
	DBLogLevel       string        `mapstructure:"DB_LOG_LEVEL"`

	// Bridge configuration
	BridgeTimeout time.Duration `mapstructure:"BRIDGE_TIMEOUT"`

	// CORS configuration (the UI process loads from a dev server or file://)
	AllowedOrigins []string `mapstructure:"ALLOWED_ORIGINS"`

	// Seeding of predefined categories; inert unless both are set
	SeedFile      string `mapstructure:"SEED_FILE"`
	SeedOnStartup bool   `mapstructure:"SEED_ON_STARTUP"`
}

// Load reads configuration from environment variables and config files
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Set default values
	setDefaults()

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Override with environment variables
	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Build database URL if not provided
	if config.DatabaseURL == "" {
		config.DatabaseURL = buildDatabaseURL(&config)
	}

	// Validate required fields
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("PORT", "7008")
	viper.SetDefault("BIND_ADDRESS", "127.0.0.1")
	viper.SetDefault("LOG_LEVEL", "info")

	viper.SetDefault("LOG_FILE", "")
	viper.SetDefault("LOG_MAX_SIZE_MB", 10)
	viper.SetDefault("LOG_MAX_BACKUPS", 5)
	viper.SetDefault("LOG_MAX_AGE_DAYS", 30)

	// Database defaults
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_NAME", "component_inventory")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_MAX_OPEN_CONNS", 10)
	viper.SetDefault("DB_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DB_STATEMENT_TIMEOUT", "10s")
	viper.SetDefault("DB_AUTO_MIGRATE", true)
	viper.SetDefault("DB_LOG_LEVEL", "error")

	viper.SetDefault("BRIDGE_TIMEOUT", "15s")

	// CORS defaults
	viper.SetDefault("ALLOWED_ORIGINS", []string{"http://localhost:5173", "file://"})

	viper.SetDefault("SEED_FILE", "")
	viper.SetDefault("SEED_ON_STARTUP", false)
}

func buildDatabaseURL(config *Config) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		config.DatabaseUser,
		config.DatabasePassword,
		config.DatabaseHost,
		config.DatabasePort,
		config.DatabaseName,
		config.DatabaseSSLMode,
	)
}

func validate(config *Config) error {
	if config.DatabaseName == "" && config.DatabaseURL == "" {
		return fmt.Errorf("database name is required")
	}

	if config.DBStatementTTL < 0 {
		return fmt.Errorf("DB_STATEMENT_TIMEOUT must not be negative")
	}

	if config.BridgeTimeout < 0 {
		return fmt.Errorf("BRIDGE_TIMEOUT must not be negative")
	}

	if config.SeedOnStartup && config.SeedFile == "" {
		return fmt.Errorf("SEED_FILE is required when SEED_ON_STARTUP is enabled")
	}

	return nil
}

// ListenAddress returns the host:port the HTTP server binds to
func (c *Config) ListenAddress() string {
	port := c.Port
	if port == "" {
		port = "7008"
	}
	return c.BindAddress + ":" + port
}

// IsDevelopment returns true if the environment is development
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction returns true if the environment is production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
