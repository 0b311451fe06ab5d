package handlers

import (
	"fmt"
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var currencyCodeRx = regexp.MustCompile(`^[A-Z]{3}$`)

// RegisterValidations installs custom binding rules on gin's validator engine.
// Must be called once before routes are registered.
func RegisterValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine type %T", binding.Validator.Engine())
	}
	return v.RegisterValidation("currency", func(fl validator.FieldLevel) bool {
		return currencyCodeRx.MatchString(fl.Field().String())
	})
}
