// Package validate checks struct tags and turns violations into readable errors.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

// FieldError is a single violated rule.
type FieldError struct {
	Field   string
	Code    string
	Message string
}

func (e FieldError) Error() string {
	return e.Message
}

// Errors is the list of violations of one struct.
type Errors []FieldError

func (e Errors) Error() string {
	return strings.Join(lo.Map(e, func(f FieldError, _ int) string { return f.Message }), "; ")
}

var (
	instance *validator.Validate
	once     sync.Once
)

func get() *validator.Validate {
	once.Do(func() {
		instance = validator.New(validator.WithRequiredStructEnabled())
		instance.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return instance
}

// Struct validates s. Violations are returned as Errors.
func Struct(s any) error {
	err := get().Struct(s)
	if err == nil {
		return nil
	}

	var violations validator.ValidationErrors
	if !errors.As(err, &violations) {
		return err
	}

	return Errors(lo.Map(violations, func(v validator.FieldError, _ int) FieldError {
		return FieldError{
			Field:   v.Field(),
			Code:    strings.ToUpper(v.Tag()),
			Message: message(v),
		}
	}))
}

// Var validates a single value against tag.
func Var(name string, value any, tag string) error {
	if err := get().Var(value, tag); err != nil {
		var violations validator.ValidationErrors
		if errors.As(err, &violations) && len(violations) > 0 {
			v := violations[0]
			return FieldError{Field: name, Code: strings.ToUpper(v.Tag()), Message: messageFor(name, v.Tag(), v.Param())}
		}
		return err
	}
	return nil
}

func message(v validator.FieldError) string {
	return messageFor(v.Field(), v.Tag(), v.Param())
}

func messageFor(field, tag, param string) string {
	switch tag {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		return fmt.Sprintf("%s must not exceed %s", field, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, param)
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "lte":
		return fmt.Sprintf("%s must not exceed %s", field, param)
	case "hostname_port":
		return fmt.Sprintf("%s must be a host:port address", field)
	case "url", "http_url":
		return fmt.Sprintf("%s must be a valid URL", field)
	default:
		return fmt.Sprintf("%s failed the %s rule", field, tag)
	}
}
