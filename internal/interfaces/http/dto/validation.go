package dto

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// rifPattern matches a Venezuelan RIF: taxpayer type letter, eight digit
// serial, one check digit. Dashes are optional.
var rifPattern = regexp.MustCompile(`^[VEJPGC]-?[0-9]{8}-?[0-9]$`)

// validRIF is the validator function behind the "rif" binding tag
func validRIF(fl validator.FieldLevel) bool {
	return rifPattern.MatchString(fl.Field().String())
}

// RegisterValidations installs the custom binding validators on gin's
// default validator engine. Call once at startup before serving.
func RegisterValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("rif", validRIF)
}
