package serrors

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Base is a coded error. Code is a stable machine-readable identifier, Message
// a human-readable default, Field the offending struct field when applicable.
type Base struct {
	Code    string
	Message string
	Field   string
}

func (e *Base) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewError(code, message, field string) *Base {
	return &Base{Code: code, Message: message, Field: field}
}

type ValidationError struct {
	Base
}

func NewValidationError(code, message, field string) *ValidationError {
	return &ValidationError{Base: Base{Code: code, Message: message, Field: field}}
}

// ValidationErrors maps struct field names to their validation failures.
type ValidationErrors map[string]*ValidationError

// ProcessValidatorErrors converts go-playground validator errors into coded
// per-field validation errors.
func ProcessValidatorErrors(errs validator.ValidationErrors) ValidationErrors {
	out := make(ValidationErrors, len(errs))
	for _, err := range errs {
		out[err.Field()] = NewValidationError(
			"VALIDATION_"+err.Tag(),
			validatorMessage(err),
			err.Field(),
		)
	}
	return out
}

// Messages flattens validation errors into a field -> message map for API payloads.
func (v ValidationErrors) Messages() map[string]string {
	out := make(map[string]string, len(v))
	for field, err := range v {
		out[field] = err.Message
	}
	return out
}

func validatorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", err.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", err.Field())
	case "len":
		return fmt.Sprintf("%s must be %s characters long", err.Field(), err.Param())
	case "numeric":
		return fmt.Sprintf("%s must contain only digits", err.Field())
	default:
		return fmt.Sprintf("%s is invalid", err.Field())
	}
}
