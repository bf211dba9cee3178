package schema

import (
	"context"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// -----------------------------------------------------------------------------
// Validator interface
// -----------------------------------------------------------------------------

type Validator interface {
	Validate(ctx context.Context) error
}

// -----------------------------------------------------------------------------
// CompositeValidator
// -----------------------------------------------------------------------------

// CompositeValidator runs validators in order and stops at the first failure.
type CompositeValidator struct {
	validators []Validator
}

func NewCompositeValidator(validators ...Validator) *CompositeValidator {
	return &CompositeValidator{
		validators: validators,
	}
}

func (v *CompositeValidator) AddValidator(validator Validator) {
	v.validators = append(v.validators, validator)
}

func (v *CompositeValidator) Validate(ctx context.Context) error {
	for _, validator := range v.validators {
		if err := validator.Validate(ctx); err != nil {
			return err
		}
	}
	return nil
}

// -----------------------------------------------------------------------------
// StructValidator
// -----------------------------------------------------------------------------

var (
	sharedValidate     *validator.Validate
	sharedValidateOnce sync.Once
)

// Struct returns the process-wide validator instance. validator.Validate caches
// struct metadata and is safe for concurrent use once configured.
func Struct() *validator.Validate {
	sharedValidateOnce.Do(func() {
		sharedValidate = validator.New(validator.WithRequiredStructEnabled())
		sharedValidate.RegisterTagNameFunc(jsonFieldName)
	})
	return sharedValidate
}

// jsonFieldName reports fields by their wire name in validation errors.
func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return f.Name
	default:
		return name
	}
}

type StructValidator struct {
	validate *validator.Validate
	value    any
}

func NewStructValidator(value any) *StructValidator {
	return &StructValidator{
		validate: Struct(),
		value:    value,
	}
}

func (v *StructValidator) Validate(ctx context.Context) error {
	return v.validate.StructCtx(ctx, v.value)
}

// -----------------------------------------------------------------------------
// DocumentValidator
// -----------------------------------------------------------------------------

// DocumentValidator checks a decoded document against an embedded schema.
type DocumentValidator struct {
	name  Name
	value any
}

func NewDocumentValidator(name Name, value any) *DocumentValidator {
	return &DocumentValidator{name: name, value: value}
}

func (v *DocumentValidator) Validate(ctx context.Context) error {
	return Validate(ctx, v.name, v.value)
}
