package accountdelivery

import (
	"github.com/go-playground/validator/v10"

	"github.com/awesomegic/gic-bank/pkg/dates"
)

// ValidDate8 validates whether the field is a well-formed YYYYMMDD date.
var ValidDate8 validator.Func = func(fl validator.FieldLevel) bool {
	if s, ok := fl.Field().Interface().(string); ok {
		_, err := dates.Parse(s)
		return err == nil
	}
	return false
}
