package interestruledelivery

import (
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// ValidRatePercent validates whether the field is a decimal rate strictly
// between 0 and 100.
var ValidRatePercent validator.Func = func(fl validator.FieldLevel) bool {
	if s, ok := fl.Field().Interface().(string); ok {
		rate, err := decimal.NewFromString(s)
		if err != nil {
			return false
		}
		return rate.GreaterThan(decimal.Zero) && rate.LessThan(oneHundred)
	}
	return false
}
