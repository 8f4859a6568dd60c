package storage

import (
	// Standard Library Imports
	"strings"

	// External Imports
	"github.com/go-playground/validator/v10"
)

// validate is shared; validator caches struct metadata per type.
var validate = validator.New()

// ValidateName rejects an empty or whitespace-only name.
func ValidateName(field, name string) error {
	if err := validate.Var(strings.TrimSpace(name), "required"); err != nil {
		return NewValidationError("%s is required", field)
	}
	return nil
}

// ValidateNames rejects an absent (nil) list of names. An empty list is valid.
func ValidateNames(field string, names []string) error {
	if err := validate.Var(names, "required"); err != nil {
		return NewValidationError("%s is required", field)
	}
	return nil
}
