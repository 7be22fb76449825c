package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// StructLevel is handed to cross-field rules.
type StructLevel = validator.StructLevel

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// report query/json names instead of Go field names
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"form", "json"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
}

// RegisterStructValidation adds a cross-field rule for the given types.
func RegisterStructValidation(fn func(StructLevel), types ...any) {
	validate.RegisterStructValidation(fn, types...)
}

// Validate returns field -> failed tag, or nil when v is valid.
func Validate(v any) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"_": err.Error()}
	}

	out := make(map[string]string, len(errs))
	for _, e := range errs {
		out[e.Field()] = e.Tag()
	}
	return out
}
