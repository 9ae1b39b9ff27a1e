package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/idelchi/gogen/pkg/validator"
)

// registerExclusive adds the "exclusive" rule with its message: the field may
// only be set if none of the space-separated fields named in its parameter are set.
// Fields are reported by their flag name.
func registerExclusive(v *validator.Validator) error {
	if err := v.RegisterValidationAndTranslation(
		"exclusive",
		validateExclusive,
		"{0} is mutually exclusive with {1}",
	); err != nil {
		return fmt.Errorf("registering exclusive validation: %w", err)
	}

	v.Validator().RegisterTagNameFunc(func(fld reflect.StructField) string {
		const splitSize = 2

		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", splitSize)[0]
		if name == "" || name == "-" {
			return strings.ToLower(fld.Name)
		}

		return name
	})

	return nil
}

func validateExclusive(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String || fl.Field().String() == "" {
		return true
	}

	for _, name := range strings.Fields(fl.Param()) {
		other := fl.Parent().FieldByName(name)
		if other.IsValid() && other.Kind() == reflect.String && other.String() != "" {
			return false
		}
	}

	return true
}
