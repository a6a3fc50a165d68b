package validation

import (
	"github.com/go-playground/validator/v10"
)

const (
	zipCodeLength    = 9
	zipCodeSeparator = 5
	cardNumberLength = 19
)

// validateZipCode accepts the CEP shape 00000-000.
func validateZipCode(fl validator.FieldLevel) bool {
	zip := fl.Field().String()
	if len(zip) != zipCodeLength {
		return false
	}
	for i, r := range zip {
		if i == zipCodeSeparator {
			if r != '-' {
				return false
			}
			continue
		}
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// validateCardNumber accepts four groups of four digits separated by single
// spaces: 0000 0000 0000 0000.
func validateCardNumber(fl validator.FieldLevel) bool {
	number := fl.Field().String()
	if len(number) != cardNumberLength {
		return false
	}
	for i, r := range number {
		if i%5 == 4 {
			if r != ' ' {
				return false
			}
			continue
		}
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
