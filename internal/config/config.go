// Package config loads the timesheet service configuration from defaults, an
// optional YAML file and TIMESHEET_* environment variables.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"github.com/ukaji3/timesheet-go/pkg/timesheet"
)

// EnvPrefix is the prefix of environment overrides, e.g. TIMESHEET_SERVER_PORT.
const EnvPrefix = "TIMESHEET"

// Config represents the complete application configuration
type Config struct {
	Server  ServerConfig  `yaml:"server" envconfig:"SERVER"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Check   CheckConfig   `yaml:"check" envconfig:"CHECK"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int             `yaml:"port" envconfig:"PORT" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration   `yaml:"read_timeout" envconfig:"READ_TIMEOUT" validate:"gt=0"`
	WriteTimeout    time.Duration   `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" validate:"gt=0"`
	IdleTimeout     time.Duration   `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" validate:"gt=0"`
	ShutdownTimeout time.Duration   `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" validate:"gt=0"`
	MaxUploadBytes  int64           `yaml:"max_upload_bytes" envconfig:"MAX_UPLOAD_BYTES" validate:"gt=0"`
	DownloadTTL     time.Duration   `yaml:"download_ttl" envconfig:"DOWNLOAD_TTL" validate:"gt=0"`
	RateLimit       RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" validate:"gt=0"`
	Burst   int     `yaml:"burst" envconfig:"BURST" validate:"min=1"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
}

// CheckConfig contains the defaults of every timesheet check.
type CheckConfig struct {
	SheetName      string `yaml:"sheet_name" envconfig:"SHEET_NAME" validate:"required"`
	SummarySheet   string `yaml:"summary_sheet" envconfig:"SUMMARY_SHEET" validate:"required,nefield=SheetName"`
	HighlightColor string `yaml:"highlight_color" envconfig:"HIGHLIGHT_COLOR" validate:"required,len=6,hexadecimal"`
}

// Default returns default configuration
func Default() *Config {
	opts := timesheet.DefaultOptions()
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    60 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
			MaxUploadBytes:  32 << 20, // 32MB
			DownloadTTL:     15 * time.Minute,
			RateLimit: RateLimitConfig{
				Enabled: true,
				RPS:     10,
				Burst:   20,
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Check: CheckConfig{
			SheetName:      opts.SheetName,
			SummarySheet:   opts.SummarySheet,
			HighlightColor: opts.HighlightColor,
		},
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load builds the configuration. Values from path (if non-empty) override the
// defaults and TIMESHEET_* environment variables override both.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFromFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// loadFromFile overlays the YAML file at path onto cfg. Keys missing from
// the file keep their current value.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.UnmarshalStrict(data, cfg)
}

// Validate reports invalid configuration.
func (c *Config) Validate() error {
	return validate.Struct(c)
}

// CheckOptions returns the check options described by the configuration.
func (c *Config) CheckOptions() timesheet.Options {
	return timesheet.Options{
		SheetName:      c.Check.SheetName,
		SummarySheet:   c.Check.SummarySheet,
		HighlightColor: c.Check.HighlightColor,
	}
}
