package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
)

// Prefix of every environment variable read by Load.
const Prefix = "INVOICE"

// Config is the process configuration shared by the CLI and the HTTP service.
type Config struct {
	InputDir     string        `envconfig:"INPUT_DIR" default:"uploads" validate:"required"`
	Workers      int           `envconfig:"WORKERS" default:"1" validate:"min=1,max=64"`
	MaxEmptyRows int           `envconfig:"MAX_EMPTY_ROWS" default:"5" validate:"min=1"`
	MaxScanRows  int           `envconfig:"MAX_SCAN_ROWS" default:"1000" validate:"min=1"`
	Logging      LoggingConfig `envconfig:"LOG"`
	Server       ServerConfig  `envconfig:"SERVER"`
}

// LoggingConfig controls the zap logger.
type LoggingConfig struct {
	Level       string `envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Development bool   `envconfig:"DEVELOPMENT" default:"false"`
}

// ServerConfig controls the HTTP upload service.
type ServerConfig struct {
	Port        int   `envconfig:"PORT" default:"5000" validate:"min=1,max=65535"`
	MaxUploadMB int64 `envconfig:"MAX_UPLOAD_MB" default:"10" validate:"min=1"`
}

// MaxUploadBytes is the request body limit for uploads.
func (s ServerConfig) MaxUploadBytes() int64 {
	return s.MaxUploadMB << 20
}

// Load reads INVOICE_* variables and validates the result.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints; used again after CLI flags override values.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}
