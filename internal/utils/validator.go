package utils

import (
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	Validate     *validator.Validate
	validateOnce sync.Once
)

// InitValidator builds the shared validator. Safe to call more than once.
func InitValidator() {
	validateOnce.Do(func() {
		v := validator.New()
		// nocomma guards names that end up in comma-joined aggregates
		_ = v.RegisterValidation("nocomma", func(fl validator.FieldLevel) bool {
			return !strings.Contains(fl.Field().String(), ",")
		})
		Validate = v
	})
}

// Validator returns the shared validator, initializing it on first use.
func Validator() *validator.Validate {
	InitValidator()
	return Validate
}
