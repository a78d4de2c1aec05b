package utils

import (
	"github.com/go-playground/validator/v10"
)

func NewTrue() *bool {
	b := true
	return &b
}

func NewFalse() *bool {
	b := false
	return &b
}

// ProcessValidationErrors flattens validator errors into field => tag.
func ProcessValidationErrors(err error) map[string]string {
	errs := make(map[string]string)
	if err == nil {
		return errs
	}
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			errs[e.Field()] = e.Tag()
		}
	}
	return errs
}
