package config

import (
	"errors"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string        `envconfig:"HTTP_ADDR" default:":8080"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat       string        `envconfig:"LOG_FORMAT" default:"json"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`

	// MaxUploadBytes caps spreadsheet upload size (default 16 MiB).
	MaxUploadBytes int64 `envconfig:"MAX_UPLOAD_BYTES" default:"16777216"`

	// AcceptedTokens are the station-identifier substrings in scope for
	// aggregation. RequiredColumns is the schema the validator enforces.
	AcceptedTokens  []string `envconfig:"ACCEPTED_TOKENS" default:"TUS,CT"`
	RequiredColumns []string `envconfig:"REQUIRED_COLUMNS" default:"Station_ID,PCode,Date_Time,Result"`

	// Kafka report publishing, disabled by default.
	KafkaEnabled   bool     `envconfig:"KAFKA_ENABLED" default:"false"`
	KafkaBrokers   []string `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
	KafkaSinkTopic string   `envconfig:"KAFKA_SINK_TOPIC" default:"station-reports"`
}

// Load reads configuration from environment variables, applying defaults
// where unset, and validates the result.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	if cfg.ShutdownTimeout <= 0 {
		return nil, errors.New("SHUTDOWN_TIMEOUT must be positive")
	}
	if cfg.MaxUploadBytes <= 0 {
		return nil, errors.New("MAX_UPLOAD_BYTES must be positive")
	}
	if len(cfg.AcceptedTokens) == 0 {
		return nil, errors.New("ACCEPTED_TOKENS is required")
	}
	for _, tok := range cfg.AcceptedTokens {
		if tok == "" {
			return nil, errors.New("ACCEPTED_TOKENS must not contain empty tokens")
		}
	}
	if len(cfg.RequiredColumns) == 0 {
		return nil, errors.New("REQUIRED_COLUMNS is required")
	}
	if cfg.KafkaEnabled {
		if len(cfg.KafkaBrokers) == 0 {
			return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is not set")
		}
		if cfg.KafkaSinkTopic == "" {
			return nil, errors.New("KAFKA_ENABLED is true but KAFKA_SINK_TOPIC is not set")
		}
	}

	return &cfg, nil
}
