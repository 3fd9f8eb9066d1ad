package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server" envconfig:"SERVER"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Pipeline PipelineConfig `yaml:"pipeline" envconfig:"PIPELINE"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080" validate:"gt=0,lte=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"60s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
	MaxUploadBytes  int64         `yaml:"max_upload_bytes" envconfig:"MAX_UPLOAD_BYTES" default:"33554432"`
	RateLimitRPS    float64       `yaml:"rate_limit_rps" envconfig:"RATE_LIMIT_RPS" default:"100"`
	RateLimitBurst  int           `yaml:"rate_limit_burst" envconfig:"RATE_LIMIT_BURST" default:"50"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/sailcli.log"`
}

// PipelineConfig contains the report-processing defaults exposed to the
// dashboard configuration surface.
type PipelineConfig struct {
	// WeekStart is the weekday on which an administrative week begins.
	WeekStart string `yaml:"week_start" envconfig:"WEEK_START" default:"Saturday" validate:"oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
	// ContractHours is the default weekly contracted-hours target per vessel.
	ContractHours float64 `yaml:"contract_hours" envconfig:"CONTRACT_HOURS" default:"112" validate:"gt=0"`
	// FilterViolations restricts selection to weeks below the contract target.
	FilterViolations bool `yaml:"filter_violations" envconfig:"FILTER_VIOLATIONS" default:"false"`
	// ReportYear is the calendar year day markers are resolved against.
	// Zero means the current year.
	ReportYear int `yaml:"report_year" envconfig:"REPORT_YEAR" default:"0" validate:"gte=0"`
}

// Load loads configuration from environment variables, overridden by an
// optional YAML config file, and validates the result.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("SAIL", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	configFile := configFilePath()
	if _, err := os.Stat(configFile); err == nil {
		data, err := os.ReadFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration against its declared constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func configFilePath() string {
	if path := os.Getenv("SAIL_CONFIG"); path != "" {
		return path
	}
	return "sailcli.yaml"
}
