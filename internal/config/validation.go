package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Report yaml keys instead of Go field names
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// ValidationError describes one invalid setting.
type ValidationError struct {
	FieldPath string
	Message   string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, e := range v {
		msgs = append(msgs, fmt.Sprintf("%s: %s", e.FieldPath, e.Message))
	}
	return "invalid configuration: " + strings.Join(msgs, "; ")
}

// Validate checks the settings and returns all problems at once.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return convertValidatorErrors(err)
	}
	return nil
}

func convertValidatorErrors(err error) error {
	var validatorErrs validator.ValidationErrors
	if !errors.As(err, &validatorErrs) {
		return err
	}

	var out ValidationErrors
	for _, e := range validatorErrs {
		// Namespace is "Config.engine.mode"; drop the root type name
		path := e.Namespace()
		if i := strings.IndexByte(path, '.'); i >= 0 {
			path = path[i+1:]
		}
		out = append(out, ValidationError{
			FieldPath: path,
			Message:   validationMessage(e),
		})
	}
	return out
}

func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", e.Param())
	case "required", "required_if":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", e.Param())
	case "file":
		return "file does not exist"
	case "url":
		return "must be a valid URL"
	case "nefield":
		return "must differ from socks_port"
	default:
		return fmt.Sprintf("failed '%s' validation", e.Tag())
	}
}
