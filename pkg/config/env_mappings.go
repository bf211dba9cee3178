package config

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/go-playground/validator/v10"
)

// EnvMapping ties a PULPLIB_* variable to the dotted koanf path it overrides.
type EnvMapping struct {
	EnvVar     string `validate:"env_name"`
	ConfigPath string `validate:"required"`
}

// EnvMappings lists the variables declared by `env` tags on Config, sorted by
// variable name.
var EnvMappings = sync.OnceValue(func() []EnvMapping {
	var out []EnvMapping
	walkEnvTags(reflect.TypeFor[Config](), "", &out)
	sort.Slice(out, func(i, j int) bool { return out[i].EnvVar < out[j].EnvVar })
	return out
})

func walkEnvTags(t reflect.Type, prefix string, out *[]EnvMapping) {
	for _, f := range reflect.VisibleFields(t) {
		key := f.Tag.Get("koanf")
		if !f.IsExported() || key == "" || key == "-" {
			continue
		}
		if prefix != "" {
			key = prefix + "." + key
		}
		if f.Type.Kind() == reflect.Struct {
			walkEnvTags(f.Type, key, out)
			continue
		}
		if env := f.Tag.Get("env"); env != "" && env != "-" {
			*out = append(*out, EnvMapping{EnvVar: env, ConfigPath: key})
		}
	}
}

// ConfigPathForEnv returns the config path overridden by env.
func ConfigPathForEnv(env string) (string, bool) {
	for _, m := range EnvMappings() {
		if m.EnvVar == env {
			return m.ConfigPath, true
		}
	}
	return "", false
}

// EnvVarForConfigPath returns the variable overriding path, or "".
func EnvVarForConfigPath(path string) string {
	for _, m := range EnvMappings() {
		if m.ConfigPath == path {
			return m.EnvVar
		}
	}
	return ""
}

// ValidateEnvMappings checks every declared env tag against the naming rules.
func ValidateEnvMappings(v *validator.Validate) error {
	for _, m := range EnvMappings() {
		if err := v.Struct(m); err != nil {
			return fmt.Errorf("invalid env mapping for %s: %w", m.ConfigPath, err)
		}
	}
	return nil
}
