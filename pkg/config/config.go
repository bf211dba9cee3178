package config

import (
	"github.com/drepelov/pubtools-pulplib/pkg/logger"
)

// Config holds the tunables of the Pulp model layer.
type Config struct {
	Log    LogConfig    `koanf:"log"    validate:"required"`
	Units  UnitsConfig  `koanf:"units"`
	Schema SchemaConfig `koanf:"schema"`
}

type LogConfig struct {
	Level  string `koanf:"level"  validate:"oneof=debug info warn error disabled" env:"PULPLIB_LOG_LEVEL"`
	JSON   bool   `koanf:"json"                                                   env:"PULPLIB_LOG_JSON"`
	Source bool   `koanf:"source"                                                 env:"PULPLIB_LOG_SOURCE"`
}

// UnitsConfig controls conversion of task result units.
type UnitsConfig struct {
	// Strict rejects units whose content type has no dedicated model.
	Strict bool `koanf:"strict" env:"PULPLIB_UNITS_STRICT"`
}

// SchemaConfig controls structural validation of raw payloads.
type SchemaConfig struct {
	Validate bool `koanf:"validate" env:"PULPLIB_SCHEMA_VALIDATE"`
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level: logger.InfoLevel.String(),
		},
		Units: UnitsConfig{
			Strict: false,
		},
		Schema: SchemaConfig{
			Validate: true,
		},
	}
}

// Logger builds a logger from the log section.
func (c *LogConfig) Logger() logger.Logger {
	return logger.NewLogger(&logger.Config{
		Level:      logger.ParseLevel(c.Level),
		JSON:       c.JSON,
		AddSource:  c.Source,
		TimeFormat: "15:04:05",
	})
}
