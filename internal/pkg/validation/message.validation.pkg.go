package validation

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// DefaultLanguage is used when a client sends no usable Accept-Language.
var DefaultLanguage = language.BrazilianPortuguese

var supported = []language.Tag{language.BrazilianPortuguese, language.English}

var matcher = language.NewMatcher(supported)

var messages = newCatalog()

var validationMessages = map[string]map[language.Tag]string{
	"required": {
		language.BrazilianPortuguese: "preenchimento obrigatório",
		language.English:             "is required",
	},
	"min": {
		language.BrazilianPortuguese: "minimo %s caracteres",
		language.English:             "must have at least %s characters",
	},
	"max": {
		language.BrazilianPortuguese: "máximo %s caracteres",
		language.English:             "must have at most %s characters",
	},
	"len": {
		language.BrazilianPortuguese: "deve ter exatamente %s caracteres",
		language.English:             "must have the exact length of %s",
	},
	"numeric": {
		language.BrazilianPortuguese: "apenas números",
		language.English:             "must contain only digits",
	},
	"zipcode": {
		language.BrazilianPortuguese: "CEP inválido, use o formato 00000-000",
		language.English:             "must follow the format 00000-000",
	},
	"cardnumber": {
		language.BrazilianPortuguese: "número do cartão inválido, use o formato 0000 0000 0000 0000",
		language.English:             "must follow the format 0000 0000 0000 0000",
	},
	"enum": {
		language.BrazilianPortuguese: "valor não permitido",
		language.English:             "must be one of the allowed enum values",
	},
	"invalid": {
		language.BrazilianPortuguese: "valor inválido",
		language.English:             "is invalid",
	},
}

func newCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(DefaultLanguage))
	for key, byLang := range validationMessages {
		for tag, msg := range byLang {
			_ = b.SetString(tag, key, msg)
		}
	}
	return b
}

func messageKey(tag string) string {
	if _, ok := validationMessages[tag]; ok {
		return tag
	}
	return "invalid"
}

func printer(lang language.Tag) *message.Printer {
	return message.NewPrinter(lang, message.Catalog(messages))
}

// MatchLanguage picks a supported language from an Accept-Language header.
func MatchLanguage(acceptLanguage string) language.Tag {
	if acceptLanguage == "" {
		return DefaultLanguage
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return DefaultLanguage
	}
	_, idx, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return DefaultLanguage
	}
	return supported[idx]
}
