package config

import (
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/idelchi/gogen/pkg/validator"
)

// register adds the custom validations used by Config, each with its
// translated message, and reports fields by their flag names.
func register(v *validator.Validator) error {
	validations := []struct {
		tag     string
		fn      func(validator.FieldLevel) bool
		message string
	}{
		{tag: "exclusive", fn: validateExclusive, message: "{0} is mutually exclusive with {1}"},
		{tag: "blockkey", fn: validateKey, message: "{0} must be a 32-bit integer, decimal or 0x-prefixed hex"},
		{tag: "bytesize", fn: validateByteSize, message: "{0} must be a size between 1B and 1GiB, e.g. 512 or 8KiB"},
		{tag: "glob", fn: validateGlob, message: "{0} must be a valid glob pattern"},
	}

	for _, val := range validations {
		if err := v.RegisterValidationAndTranslation(val.tag, val.fn, val.message); err != nil {
			return fmt.Errorf("registering %s validation: %w", val.tag, err)
		}
	}

	v.Validator().RegisterTagNameFunc(func(fld reflect.StructField) string {
		const splitSize = 2

		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", splitSize)[0]
		if name == "-" || name == "" {
			return fld.Name
		}

		return name
	})

	return nil
}

// validateExclusive checks that a field and the named sibling are not both set.
func validateExclusive(fl validator.FieldLevel) bool {
	field := fl.Field()
	otherField := fl.Parent().FieldByName(fl.Param())

	if !field.IsValid() || !otherField.IsValid() {
		return true
	}

	if field.Kind() == reflect.String && otherField.Kind() == reflect.String {
		return field.String() == "" || otherField.String() == ""
	}

	return true
}

func validateKey(fl validator.FieldLevel) bool {
	_, err := ParseKey(fl.Field().String())

	return err == nil
}

func validateByteSize(fl validator.FieldLevel) bool {
	_, err := parseBlockSize(fl.Field().String())

	return err == nil
}

func validateGlob(fl validator.FieldLevel) bool {
	_, err := filepath.Match(fl.Field().String(), "")

	return err == nil
}
