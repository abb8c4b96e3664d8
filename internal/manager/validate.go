package manager

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// fieldMessages maps a failing request field to the message shown to clients.
var fieldMessages = map[string]string{
	"Name":     "Model name is required",
	"Model":    "Model name is required",
	"Messages": "Messages are required",
	"Prompt":   "Prompt is required",
}

// validateRequest checks the validate tags of a request struct and reports the
// first failing field, in declaration order.
func validateRequest(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	return newValidationError(verrs[0].StructField())
}

// requireName validates a bare model name taken from a URL path.
func requireName(name string) error {
	if err := validate.Var(name, "required"); err != nil {
		return newValidationError("Name")
	}
	return nil
}

func newValidationError(field string) *ValidationError {
	msg, ok := fieldMessages[field]
	if !ok {
		msg = field + " is invalid"
	}
	return &ValidationError{Field: field, Message: msg}
}
