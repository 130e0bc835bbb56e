// Package config handles configuration loading for the debt dashboard.
// It supports YAML config files with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Data     DataConfig     `mapstructure:"data"     yaml:"data"`
	Treasury TreasuryConfig `mapstructure:"treasury" yaml:"treasury"`
	ECB      ECBConfig      `mapstructure:"ecb"      yaml:"ecb"`
	Server   ServerConfig   `mapstructure:"server"   yaml:"server"`
	Logging  LoggingConfig  `mapstructure:"logging"  yaml:"logging"`
}

// DataConfig holds local snapshot storage settings.
type DataConfig struct {
	Dir string `mapstructure:"dir" yaml:"dir"` // directory for cached JSON snapshots
}

// TreasuryConfig holds US FiscalData API settings.
type TreasuryConfig struct {
	BaseURL          string `mapstructure:"base_url"          yaml:"base_url"`
	Endpoint         string `mapstructure:"endpoint"          yaml:"endpoint"`
	PageSize         int    `mapstructure:"page_size"         yaml:"page_size"`
	StartYear        int    `mapstructure:"start_year"        yaml:"start_year"`
	TimeoutSec       int    `mapstructure:"timeout_sec"       yaml:"timeout_sec"`
	AnnouncementsURL string `mapstructure:"announcements_url" yaml:"announcements_url"`
}

// ECBConfig holds ECB SDMX data portal settings.
type ECBConfig struct {
	BaseURL     string `mapstructure:"base_url"     yaml:"base_url"`
	Flow        string `mapstructure:"flow"         yaml:"flow"`
	StartPeriod string `mapstructure:"start_period" yaml:"start_period"`
	TimeoutSec  int    `mapstructure:"timeout_sec"  yaml:"timeout_sec"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host        string   `mapstructure:"host"         yaml:"host"`
	Port        int      `mapstructure:"port"         yaml:"port"`
	CORSOrigins []string `mapstructure:"cors_origins" yaml:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `mapstructure:"level"        yaml:"level"`  // "debug", "info", "warn", "error"
	Format     string `mapstructure:"format"       yaml:"format"` // "text" or "json"
	File       string `mapstructure:"file"         yaml:"file"`   // empty means stderr only
	MaxSizeMB  int    `mapstructure:"max_size_mb"  yaml:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"  yaml:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days" yaml:"max_age_days"`
}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./config/config.yaml (project root)
//  2. ~/.debtdash/config.yaml (home directory)
//  3. /etc/debtdash/config.yaml (system)
//
// Environment variables override config file values.
// Format: DEBTDASH_<SECTION>_<KEY>, e.g., DEBTDASH_SERVER_PORT
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".debtdash"))
	v.AddConfigPath("/etc/debtdash")

	v.SetEnvPrefix("DEBTDASH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required to exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found — that's fine, use defaults + env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvPrefix("DEBTDASH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// setDefaults sets sensible defaults for all config values.
func setDefaults(v *viper.Viper) {
	// Data defaults
	v.SetDefault("data.dir", "data")

	// Treasury defaults
	v.SetDefault("treasury.base_url", "https://api.fiscaldata.treasury.gov/services/api/fiscal_service")
	v.SetDefault("treasury.endpoint", "/v1/accounting/od/auctions_query")
	v.SetDefault("treasury.page_size", 100)
	v.SetDefault("treasury.start_year", 2000)
	v.SetDefault("treasury.timeout_sec", 30)
	v.SetDefault("treasury.announcements_url", "https://www.treasurydirect.gov/TA_WS/securities/announced/rss")

	// ECB defaults
	v.SetDefault("ecb.base_url", "https://data-api.ecb.europa.eu/service/data")
	v.SetDefault("ecb.flow", "CSEC")
	v.SetDefault("ecb.start_period", "2020")
	v.SetDefault("ecb.timeout_sec", 30)

	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors_origins", []string{"*"})

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.file", "")
	v.SetDefault("logging.max_size_mb", 50)
	v.SetDefault("logging.max_backups", 3)
	v.SetDefault("logging.max_age_days", 28)
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
