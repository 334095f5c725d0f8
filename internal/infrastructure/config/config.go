package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the root application configuration
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Log     LogConfig     `mapstructure:"log"`
	HTTP    HTTPConfig    `mapstructure:"http"`
	Storage StorageConfig `mapstructure:"storage"`
	Pricing PricingConfig `mapstructure:"pricing"`
	Reorder ReorderConfig `mapstructure:"reorder"`
}

// AppConfig holds application-level settings
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"` // development, production
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// HTTPConfig holds the HTTP server settings
type HTTPConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"` // seconds
}

// StorageConfig selects and configures the persistence backend
type StorageConfig struct {
	// Backend is one of: memory, sqlite, redis
	Backend string       `mapstructure:"backend"`
	SQLite  SQLiteConfig `mapstructure:"sqlite"`
	Redis   RedisConfig  `mapstructure:"redis"`
}

// SQLiteConfig holds the sqlite backend settings
type SQLiteConfig struct {
	Path string `mapstructure:"path"`
}

// RedisConfig holds the redis backend settings
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

// PricingConfig holds pricing policy settings
type PricingConfig struct {
	// ProfitMargin is the default markup applied over replacement cost,
	// expressed as a fraction (0.30 = 30%)
	ProfitMargin float64 `mapstructure:"profit_margin"`
}

// ReorderConfig holds replenishment policy settings
type ReorderConfig struct {
	VMDWindowDays       int `mapstructure:"vmd_window_days"`
	DefaultLeadTimeDays int `mapstructure:"default_lead_time_days"`
	FEFOPolicyMonths    int `mapstructure:"fefo_policy_months"`
}

// Load reads configuration from the given file path (TOML) and environment
// variables. Environment variables use the REDSALUD_ prefix with underscores,
// e.g. REDSALUD_HTTP_PORT overrides http.port.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetConfigType("toml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("REDSALUD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// Config file is optional; env vars and defaults still apply
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && path != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.App.Name == "" {
		c.App.Name = "red-salud-sub010"
	}
	if c.App.Environment == "" {
		c.App.Environment = "development"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		if c.App.Environment == "production" {
			c.Log.Format = "json"
		} else {
			c.Log.Format = "console"
		}
	}
	if c.Log.Output == "" {
		c.Log.Output = "stdout"
	}
	if c.HTTP.Host == "" {
		c.HTTP.Host = "0.0.0.0"
	}
	if c.HTTP.Port == 0 {
		c.HTTP.Port = 8080
	}
	if c.HTTP.ShutdownTimeout == 0 {
		c.HTTP.ShutdownTimeout = 10
	}
	if c.Storage.Backend == "" {
		c.Storage.Backend = "memory"
	}
	if c.Storage.SQLite.Path == "" {
		c.Storage.SQLite.Path = "data/redsalud.db"
	}
	if c.Storage.Redis.Addr == "" {
		c.Storage.Redis.Addr = "localhost:6379"
	}
	if c.Storage.Redis.Prefix == "" {
		c.Storage.Redis.Prefix = "redsalud"
	}
	if c.Pricing.ProfitMargin == 0 {
		c.Pricing.ProfitMargin = 0.30
	}
	if c.Reorder.VMDWindowDays == 0 {
		c.Reorder.VMDWindowDays = 30
	}
	if c.Reorder.DefaultLeadTimeDays == 0 {
		c.Reorder.DefaultLeadTimeDays = 7
	}
	if c.Reorder.FEFOPolicyMonths == 0 {
		c.Reorder.FEFOPolicyMonths = 6
	}
}

func (c *Config) validate() error {
	switch c.Storage.Backend {
	case "memory", "sqlite", "redis":
	default:
		return fmt.Errorf("invalid storage backend: %s", c.Storage.Backend)
	}
	if c.HTTP.Port < 1 || c.HTTP.Port > 65535 {
		return fmt.Errorf("invalid http port: %d", c.HTTP.Port)
	}
	if c.Pricing.ProfitMargin < 0 {
		return fmt.Errorf("profit margin cannot be negative: %f", c.Pricing.ProfitMargin)
	}
	return nil
}

// Addr returns the listen address for the HTTP server
func (c *HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
