package validator

import (
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	validate *validator.Validate
)

func getValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// report fields by their wire name
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

func ValidateStruct(s interface{}) error {
	return getValidator().Struct(s)
}

// TranslateError maps each failing field to its message. Errors that are not
// validation errors end up under the "error" key.
func TranslateError(err error) map[string]string {
	out := make(map[string]string)
	if err == nil {
		return out
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out["error"] = err.Error()
		return out
	}
	for _, fe := range verrs {
		out[fe.Field()] = message(fe)
	}
	return out
}

// Describe renders err as one line, fields in name order, e.g.
// "chat_id is required; text must be at most 4096"
func Describe(err error) string {
	errs := TranslateError(err)
	if msg, ok := errs["error"]; ok && len(errs) == 1 {
		return msg
	}
	parts := make([]string, 0, len(errs))
	for _, field := range slices.Sorted(maps.Keys(errs)) {
		parts = append(parts, field+" "+errs[field])
	}
	return strings.Join(parts, "; ")
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max", "lte":
		return "must be at most " + fe.Param()
	case "min", "gte":
		return "must be at least " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "oneof":
		return "must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "url":
		return "must be a valid URL"
	default:
		return fmt.Sprintf("failed on %q", fe.Tag())
	}
}
