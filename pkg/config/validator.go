package config

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// RegisterCustomValidators registers custom validation functions
func RegisterCustomValidators(v *validator.Validate) error {
	return v.RegisterValidation("env_name", validateEnvName)
}

// validateEnvName accepts upper-case variable names carrying the library prefix.
func validateEnvName(fl validator.FieldLevel) bool {
	name := fl.Field().String()
	if !strings.HasPrefix(name, envPrefix) || len(name) == len(envPrefix) {
		return false
	}
	for _, r := range name {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') && r != '_' {
			return false
		}
	}
	return true
}
