package validation

import (
	"efood-checkout/internal/common/checkout"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func validDelivery() checkout.Delivery {
	return checkout.Delivery{
		Receiver: "Ana",
		Address:  "Rua das Flores",
		City:     "São Paulo",
		ZipCode:  "01001-000",
		Number:   "12",
	}
}

func validPayment() checkout.Payment {
	return checkout.Payment{
		CardName:     "ANA SOUZA",
		CardNumber:   "1234 5678 9012 3456",
		CardCode:     "321",
		ExpiresMonth: "08",
		ExpiresYear:  "2031",
	}
}

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	var verr *Error
	require.True(t, errors.As(err, &verr), "expected *Error, got %v", err)
	return verr.Fields()
}

func TestValidate_AcceptsWellFormedDelivery(t *testing.T) {
	assert.NoError(t, Validate(validDelivery()))
}

func TestValidate_ZipCode(t *testing.T) {
	tests := []struct {
		name string
		zip  string
		ok   bool
	}{
		{"formatted", "01001-000", true},
		{"too short", "0100100", false},
		{"separator misplaced", "0100-1000", false},
		{"letters", "0100a-000", false},
		{"no separator", "010010000", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validDelivery()
			form.ZipCode = tt.zip
			err := Validate(form)
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.Contains(t, fieldsOf(t, err), "zip_code")
		})
	}
}

func TestValidate_CardNumber(t *testing.T) {
	tests := []struct {
		name   string
		number string
		ok     bool
	}{
		{"grouped", "1234 5678 9012 3456", true},
		{"eighteen chars", "1234 5678 9012 345", false},
		{"twenty chars", "1234 5678 9012 34567", false},
		{"dashes", "1234-5678-9012-3456", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validPayment()
			form.CardNumber = tt.number
			err := Validate(form)
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.Contains(t, fieldsOf(t, err), "card_number")
		})
	}
}

func TestValidate_AcceptsWellFormedPayment(t *testing.T) {
	assert.NoError(t, Validate(validPayment()))
}

func TestValidate_PaymentFieldLengths(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *checkout.Payment)
		field   string
		message string
	}{
		{"short card code", func(p *checkout.Payment) { p.CardCode = "32" }, "card_code", "minimo 3 caracteres"},
		{"long card code", func(p *checkout.Payment) { p.CardCode = "3210" }, "card_code", "máximo 3 caracteres"},
		{"card code letters", func(p *checkout.Payment) { p.CardCode = "32a" }, "card_code", "apenas números"},
		{"short month", func(p *checkout.Payment) { p.ExpiresMonth = "8" }, "expires_month", "minimo 2 caracteres"},
		{"long month", func(p *checkout.Payment) { p.ExpiresMonth = "008" }, "expires_month", "máximo 2 caracteres"},
		{"short year", func(p *checkout.Payment) { p.ExpiresYear = "31" }, "expires_year", "minimo 4 caracteres"},
		{"long year", func(p *checkout.Payment) { p.ExpiresYear = "20311" }, "expires_year", "máximo 4 caracteres"},
		{"missing name", func(p *checkout.Payment) { p.CardName = "" }, "card_name", "preenchimento obrigatório"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validPayment()
			tt.mutate(&form)

			fields := fieldsOf(t, Validate(form))

			assert.Equal(t, tt.message, fields[tt.field])
			assert.Len(t, fields, 1)
		})
	}
}

func TestValidate_DeliveryRequiredFields(t *testing.T) {
	fields := fieldsOf(t, Validate(checkout.Delivery{}))

	for _, field := range []string{"receiver", "address", "city", "zip_code", "number"} {
		assert.Equal(t, "preenchimento obrigatório", fields[field], field)
	}
	assert.NotContains(t, fields, "complement")
}

func TestValidate_PortugueseMessages(t *testing.T) {
	form := validDelivery()
	form.Receiver = ""
	form.ZipCode = "0100"

	fields := fieldsOf(t, Validate(form))

	assert.Equal(t, "preenchimento obrigatório", fields["receiver"])
	assert.Equal(t, "minimo 9 caracteres", fields["zip_code"])
	assert.NotContains(t, fields, "number")
}

func TestValidateIn_English(t *testing.T) {
	form := validDelivery()
	form.Number = "12a"

	fields := fieldsOf(t, ValidateIn(language.English, form))

	assert.Equal(t, "must contain only digits", fields["number"])
}

func TestError_MessageIsStable(t *testing.T) {
	err := &Error{fields: map[string]string{"b": "two", "a": "one"}}
	assert.Equal(t, "Validation failed: a: one, b: two", err.Error())
}

func TestMatchLanguage(t *testing.T) {
	assert.Equal(t, language.BrazilianPortuguese, MatchLanguage(""))
	assert.Equal(t, language.English, MatchLanguage("en-US,en;q=0.9"))
	assert.Equal(t, language.BrazilianPortuguese, MatchLanguage("pt-BR"))
	assert.Equal(t, language.BrazilianPortuguese, MatchLanguage("!!"))
}
