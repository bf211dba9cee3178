package task

import (
	"github.com/drepelov/pubtools-pulplib/engine/unit"
	"github.com/drepelov/pubtools-pulplib/pkg/config"
)

type options struct {
	strictUnits    bool
	validateSchema bool
}

// Option tunes task construction.
type Option func(*options)

func newOptions(opts []Option) *options {
	o := &options{validateSchema: true}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *options) unitOptions() []unit.Option {
	return []unit.Option{unit.WithStrict(o.strictUnits)}
}

// WithStrictUnits rejects tasks reporting units of a content type without a
// dedicated model.
func WithStrictUnits(strict bool) Option {
	return func(o *options) {
		o.strictUnits = strict
	}
}

// WithSchemaValidation toggles structural validation of raw payloads before
// extraction. Enabled by default.
func WithSchemaValidation(enabled bool) Option {
	return func(o *options) {
		o.validateSchema = enabled
	}
}

// OptionsFromConfig maps library configuration onto construction options.
func OptionsFromConfig(cfg *config.Config) []Option {
	if cfg == nil {
		cfg = config.Default()
	}
	return []Option{
		WithStrictUnits(cfg.Units.Strict),
		WithSchemaValidation(cfg.Schema.Validate),
	}
}
