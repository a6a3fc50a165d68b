package validation

import (
	"efood-checkout/internal/common/enum"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"golang.org/x/text/language"
)

var (
	val     *validator.Validate
	valOnce sync.Once
)

// Error carries one message per offending field, keyed by json name.
type Error struct {
	fields map[string]string
}

func (e *Error) Error() string {
	keys := make([]string, 0, len(e.fields))
	for k := range e.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.fields[k]))
	}
	return "Validation failed: " + strings.Join(parts, ", ")
}

func (e *Error) Fields() map[string]string {
	return e.fields
}

// Setup builds the shared validator and registers the custom tags into
// gin's binding engine as well.
func Setup() error {
	if _, err := instance(); err != nil {
		return err
	}

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := registerValidations(v); err != nil {
			return fmt.Errorf("failed to register custom validations in Gin engine: %w", err)
		}
		v.RegisterTagNameFunc(jsonTagName)
	} else {
		return fmt.Errorf("failed to get validation engine")
	}

	return nil
}

func instance() (*validator.Validate, error) {
	var err error
	valOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		if err = registerValidations(v); err != nil {
			err = fmt.Errorf("failed to register custom validations: %w", err)
			return
		}
		v.RegisterTagNameFunc(jsonTagName)
		val = v
	})
	if err != nil {
		return nil, err
	}
	if val == nil {
		return nil, errors.New("validator not initialised")
	}
	return val, nil
}

func jsonTagName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

func registerValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("enum", enum.ValidateEnum); err != nil {
		return fmt.Errorf("failed to register enum validation: %w", err)
	}
	if err := v.RegisterValidation("zipcode", validateZipCode); err != nil {
		return fmt.Errorf("failed to register zipcode validation: %w", err)
	}
	if err := v.RegisterValidation("cardnumber", validateCardNumber); err != nil {
		return fmt.Errorf("failed to register cardnumber validation: %w", err)
	}
	return nil
}

// Validate checks payload and returns an *Error with messages in the
// default language.
func Validate(payload any) error {
	return ValidateIn(DefaultLanguage, payload)
}

// ValidateIn checks payload and renders field messages for lang.
func ValidateIn(lang language.Tag, payload any) error {
	v, err := instance()
	if err != nil {
		return err
	}

	if err := v.Struct(payload); err != nil {
		return parsingErrorValidate(lang, err)
	}

	return nil
}

// FromBindingError converts a gin binding error into an *Error when it is
// a validation failure; other errors are returned unchanged.
func FromBindingError(lang language.Tag, err error) error {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) {
		return parsingErrorValidate(lang, err)
	}
	return err
}

func parsingErrorValidate(lang language.Tag, err error) error {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err
	}

	p := printer(lang)
	fields := make(map[string]string, len(errs))
	for _, e := range errs {
		field := e.Field()
		if _, seen := fields[field]; seen {
			continue
		}
		if e.Param() == "" {
			fields[field] = p.Sprintf(messageKey(e.Tag()))
		} else {
			fields[field] = p.Sprintf(messageKey(e.Tag()), e.Param())
		}
	}

	return &Error{fields: fields}
}
