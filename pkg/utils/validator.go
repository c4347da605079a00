package utils

import (
	"sync"

	"github.com/go-playground/validator/v10"
)

// Validator wraps a shared go-playground validator instance.
type Validator struct {
	validate *validator.Validate
}

var (
	validatorOnce sync.Once
	instance      *Validator
)

// GetValidator returns the process-wide validator.
func GetValidator() *Validator {
	validatorOnce.Do(func() {
		instance = &Validator{validate: validator.New(validator.WithRequiredStructEnabled())}
	})
	return instance
}

// Validate checks struct tags on i.
func (v *Validator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}
