package config

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// envPrefix scopes the environment variables read by the loader.
const envPrefix = "PULPLIB_"

// loader layers defaults, explicit overrides and the environment, in that order.
type loader struct {
	koanf     *koanf.Koanf
	validator *validator.Validate
}

func newLoader() (*loader, error) {
	v := validator.New()
	if err := RegisterCustomValidators(v); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}
	if err := ValidateEnvMappings(v); err != nil {
		return nil, err
	}
	return &loader{
		koanf:     koanf.New("."),
		validator: v,
	}, nil
}

// Load builds the configuration from defaults and PULPLIB_* environment variables.
func Load(ctx context.Context) (*Config, error) {
	return LoadWith(ctx, nil)
}

// LoadWith is Load with a map of dotted-key overrides applied before the environment.
func LoadWith(_ context.Context, overrides map[string]any) (*Config, error) {
	l, err := newLoader()
	if err != nil {
		return nil, err
	}
	if err := l.loadDefaults(); err != nil {
		return nil, err
	}
	if err := l.loadOverrides(overrides); err != nil {
		return nil, err
	}
	if err := l.loadEnvironment(); err != nil {
		return nil, err
	}
	return l.unmarshalAndValidate()
}

func (l *loader) loadDefaults() error {
	if err := l.koanf.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return fmt.Errorf("failed to load defaults: %w", err)
	}
	return nil
}

func (l *loader) loadOverrides(overrides map[string]any) error {
	for key, value := range overrides {
		if err := l.koanf.Set(key, value); err != nil {
			return fmt.Errorf("failed to set key %s: %w", key, err)
		}
	}
	return nil
}

// loadEnvironment only honors variables declared through env struct tags.
func (l *loader) loadEnvironment() error {
	if err := l.koanf.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(key string, value string) (string, any) {
			if configPath, ok := ConfigPathForEnv(key); ok {
				return configPath, value
			}
			return "", nil
		},
	}), nil); err != nil {
		return fmt.Errorf("failed to load environment variables: %w", err)
	}
	return nil
}

func (l *loader) unmarshalAndValidate() (*Config, error) {
	var config Config
	if err := l.koanf.UnmarshalWithConf("", &config, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			WeaklyTypedInput: true,
			Result:           &config,
			TagName:          "koanf",
		},
	}); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if err := l.validator.Struct(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &config, nil
}
