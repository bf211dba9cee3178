package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drepelov/pubtools-pulplib/pkg/logger"
)

func TestDefault(t *testing.T) {
	t.Run("Should provide info logging, lenient units and schema validation", func(t *testing.T) {
		cfg := Default()

		assert.Equal(t, "info", cfg.Log.Level)
		assert.False(t, cfg.Log.JSON)
		assert.False(t, cfg.Units.Strict)
		assert.True(t, cfg.Schema.Validate)
	})
}

func TestLogConfig_Logger(t *testing.T) {
	t.Run("Should build a usable logger from the log section", func(t *testing.T) {
		cfg := LogConfig{Level: logger.DisabledLevel.String()}

		l := cfg.Logger()

		require.NotNil(t, l)
		l.Info("discarded")
	})
}

func TestEnvMappings(t *testing.T) {
	t.Run("Should expose every env tag with its dotted path", func(t *testing.T) {
		assert.Equal(t, []EnvMapping{
			{EnvVar: "PULPLIB_LOG_JSON", ConfigPath: "log.json"},
			{EnvVar: "PULPLIB_LOG_LEVEL", ConfigPath: "log.level"},
			{EnvVar: "PULPLIB_LOG_SOURCE", ConfigPath: "log.source"},
			{EnvVar: "PULPLIB_SCHEMA_VALIDATE", ConfigPath: "schema.validate"},
			{EnvVar: "PULPLIB_UNITS_STRICT", ConfigPath: "units.strict"},
		}, EnvMappings())
	})

	t.Run("Should resolve in both directions", func(t *testing.T) {
		path, ok := ConfigPathForEnv("PULPLIB_UNITS_STRICT")
		assert.True(t, ok)
		assert.Equal(t, "units.strict", path)
		_, ok = ConfigPathForEnv("PULPLIB_NOPE")
		assert.False(t, ok)

		assert.Equal(t, "PULPLIB_LOG_LEVEL", EnvVarForConfigPath("log.level"))
		assert.Empty(t, EnvVarForConfigPath("units.missing"))
	})
}
