// package validation provides helper functions for request data validation.
// It uses the go-playground/validator library and includes custom validation rules.
package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mtsierradev/servicio-social/internal/domain"
)

var validate = validator.New()

// init registers custom validation rules with the validator instance.
func init() {
	// "role_name" restricts a field to the identity roles the service knows.
	err := validate.RegisterValidation("role_name", func(fl validator.FieldLevel) bool {
		if fl.Field().String() == "" {
			// Allow empty strings to be handled by the 'required' tag.
			return true
		}

		switch domain.Role(fl.Field().String()) {
		case domain.RoleAdmin, domain.RoleDocente, domain.RoleUser:
			return true
		}

		return false
	})
	if err != nil {
		// Panic on initialization if a custom validator fails to register,
		// as it indicates a critical startup failure.
		panic(fmt.Sprintf("failed to register custom validation: %v", err))
	}
}

// ValidationError is a custom error type that holds a slice of validation error messages.
type ValidationError struct {
	Errors []string
}

// Error returns a single string concatenating all validation error messages.
func (v *ValidationError) Error() string {
	return strings.Join(v.Errors, ", ")
}

// ValidateStruct performs validation on a given struct based on its validation tags.
// If validation fails, it returns a *ValidationError with user-friendly messages.
func ValidateStruct(s interface{}) error {
	if err := validate.Struct(s); err != nil {
		var validationErrors []string

		for _, err := range err.(validator.ValidationErrors) {
			var message string

			switch err.Tag() {
			case "role_name":
				message = fmt.Sprintf(
					"field '%s' must be one of 'Admin', 'Docente' or 'User'",
					err.Field(),
				)
			case "datetime":
				message = fmt.Sprintf(
					"field '%s' must be a date in YYYY-MM-DD format",
					err.Field(),
				)
			default:
				// Default message for standard tags like 'required', 'min', 'max', etc.
				message = fmt.Sprintf(
					"field '%s' failed on the '%s' tag",
					err.Field(),
					err.Tag(),
				)
			}
			validationErrors = append(validationErrors, message)
		}

		return &ValidationError{Errors: validationErrors}
	}

	return nil
}
