package config

import (
	"efood-checkout/internal/pkg/validation"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var durationType = reflect.TypeOf(time.Duration(0))

// GetEnv loads .env when present and fills Config from the environment.
// Variables without an envDefault tag are required.
func GetEnv() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		_ = godotenv.Load("../../.env")
	}

	config := &Config{}
	if err := load(config, os.LookupEnv); err != nil {
		return nil, err
	}

	if err := validation.Validate(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if err := config.check(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// check holds the rules that span more than one field.
func (c *Config) check() error {
	if c.AppEnv.IsDeployed() && c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required when APP_ENV is %s", c.AppEnv)
	}
	return nil
}

func load(config *Config, lookup func(string) (string, bool)) error {
	v := reflect.ValueOf(config).Elem()
	t := v.Type()

	for i := range t.NumField() {
		field := t.Field(i)
		envTag := field.Tag.Get("env")
		if envTag == "" {
			continue
		}

		value, exists := lookup(envTag)
		if !exists {
			def, hasDefault := field.Tag.Lookup("envDefault")
			if !hasDefault {
				return fmt.Errorf("environment variable %s not set", envTag)
			}
			value = def
		}

		if err := setField(v.Field(i), value); err != nil {
			return fmt.Errorf("invalid value for %s: %w", envTag, err)
		}
	}

	return nil
}

func setField(f reflect.Value, value string) error {
	if f.Type() == durationType {
		d, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		f.SetInt(int64(d))
		return nil
	}

	switch f.Kind() {
	case reflect.String:
		f.SetString(value)
	case reflect.Int:
		intValue, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		f.SetInt(int64(intValue))
	case reflect.Bool:
		boolValue, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		f.SetBool(boolValue)
	default:
		return fmt.Errorf("unsupported field kind %s", f.Kind())
	}
	return nil
}
