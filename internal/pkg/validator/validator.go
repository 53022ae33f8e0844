package validator

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"homekeeper/internal/pkg/apperr"
)

var validate *validator.Validate

var clockPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = validate.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		return clockPattern.MatchString(fl.Field().String())
	})
	_ = validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
}

// Validate struct fields; returns field → failed tag, or nil.
func Validate(v interface{}) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"_": err.Error()}
	}

	out := make(map[string]string)
	for _, fe := range verrs {
		out[fieldName(fe)] = fe.Tag()
	}
	return out
}

// Check runs Validate and folds the result into a single ValidationError
// with a short human-readable message.
func Check(v interface{}) error {
	fields := Validate(v)
	if fields == nil {
		return nil
	}
	return apperr.Validation(Describe(fields))
}

// Describe renders field failures deterministically, e.g. "name is required".
func Describe(fields map[string]string) string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, describeTag(name, fields[name]))
	}
	return strings.Join(parts, "; ")
}

func describeTag(field, tag string) string {
	switch tag {
	case "required", "notblank":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "url", "http_url":
		return field + " must be a valid URL"
	case "clock":
		return field + " must be a time in HH:MM format"
	case "oneof":
		return field + " has an unsupported value"
	case "min", "gte":
		return field + " is too small"
	case "max", "lte":
		return field + " is too large"
	default:
		return fmt.Sprintf("%s is invalid (%s)", field, tag)
	}
}

func fieldName(fe validator.FieldError) string {
	name := fe.Field()
	if name == "" {
		return fe.StructField()
	}
	return strings.ToLower(name[:1]) + name[1:]
}
