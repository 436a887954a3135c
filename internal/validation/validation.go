// Package validation wraps go-playground/validator for request and form
// structs.
package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

// New creates a validator.
func New() *Validator {
	return &Validator{validate: validator.New()}
}

// Struct validates a struct using tags
func (v *Validator) Struct(s any) error {
	return v.validate.Struct(s)
}

// FieldErrors formats validation errors into a field to message map.
// Field names are lower-cased struct field names.
func FieldErrors(err error) map[string]string {
	if err == nil {
		return nil
	}

	errs := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["error"] = "Invalid request format"
		return errs
	}

	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			errs[field] = "This field is required"
		case "max":
			errs[field] = fmt.Sprintf("Must be at most %s", e.Param())
		case "gte", "lte":
			errs[field] = "Must be between 0 and 10"
		case "url":
			errs[field] = "Invalid URL"
		default:
			errs[field] = "Invalid value"
		}
	}

	return errs
}
