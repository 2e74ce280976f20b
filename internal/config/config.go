package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server         ServerConfig         `mapstructure:"server"`
	Database       DatabaseConfig       `mapstructure:"database"`
	Reconciliation ReconciliationConfig `mapstructure:"reconciliation"`
	Logger         LoggerConfig         `mapstructure:"logger"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Path            string        `mapstructure:"path"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	MigrationsDir   string        `mapstructure:"migrations_dir"`
}

// ReconciliationConfig holds the engine's process-wide identifiers. The
// house range and system user are injected into services rather than
// compiled in so tests can run against different ranges.
type ReconciliationConfig struct {
	MinHouseNumber int   `mapstructure:"min_house_number"`
	MaxHouseNumber int   `mapstructure:"max_house_number"`
	SystemUserID   int64 `mapstructure:"system_user_id"`
}

// LoggerConfig holds logger configuration
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	OutputPath string `mapstructure:"output_path"`
	Format     string `mapstructure:"format"`
}

// Load loads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	bindEnvVars()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 30*time.Second)
	viper.SetDefault("server.write_timeout", 30*time.Second)

	viper.SetDefault("database.path", "data/reconciliation.db")
	viper.SetDefault("database.max_open_conns", 25)
	viper.SetDefault("database.max_idle_conns", 5)
	viper.SetDefault("database.conn_max_lifetime", 5*time.Minute)
	viper.SetDefault("database.migrations_dir", "migrations")

	viper.SetDefault("reconciliation.min_house_number", 1)
	viper.SetDefault("reconciliation.max_house_number", 60)
	viper.SetDefault("reconciliation.system_user_id", 1)

	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.output_path", "stdout")
	viper.SetDefault("logger.format", "json")
}

// bindEnvVars binds environment variables to configuration
func bindEnvVars() {
	viper.BindEnv("database.path", "RECONCILIATION_DB_PATH")
	viper.BindEnv("reconciliation.min_house_number", "MIN_HOUSE_NUMBER")
	viper.BindEnv("reconciliation.max_house_number", "MAX_HOUSE_NUMBER")
	viper.BindEnv("reconciliation.system_user_id", "SYSTEM_USER_ID")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Reconciliation.MinHouseNumber < 1 {
		return fmt.Errorf("reconciliation.min_house_number must be at least 1")
	}
	if c.Reconciliation.MaxHouseNumber <= c.Reconciliation.MinHouseNumber {
		return fmt.Errorf("reconciliation.max_house_number must be greater than min_house_number")
	}
	if c.Reconciliation.SystemUserID <= 0 {
		return fmt.Errorf("reconciliation.system_user_id is required")
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}

	return nil
}
