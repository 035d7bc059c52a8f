// Package validator wraps go-playground struct validation behind the package
// singleton shared by the form controller and the request handlers, so both
// sides check submissions against the same tag schema.
package validator

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks the struct's `validate` tags and reports the failing fields
// as a field→tag map. A nil map means the struct passed.
func Validate(v interface{}) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	fields := make(map[string]string)
	for _, fe := range err.(validator.ValidationErrors) {
		fields[fe.Field()] = fe.Tag()
	}
	return fields
}
