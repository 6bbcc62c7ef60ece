package shared

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// emailPattern mirrors the format check enforced by the public API contract.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// NewValidator returns a validator configured for request payloads: field
// names resolve to their json tags and the email_basic rule is registered.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("email_basic", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	return v
}

// FieldErrors converts validator failures into a ValidationError keyed by
// json field name.
func FieldErrors(err error) *ValidationError {
	fields := make(map[string]string)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			switch fe.Tag() {
			case "required":
				fields[fe.Field()] = "required"
			case "min":
				fields[fe.Field()] = "must be at least " + fe.Param() + " characters"
			case "email_basic":
				fields[fe.Field()] = "invalid email format"
			default:
				fields[fe.Field()] = "invalid"
			}
		}
	}
	return NewValidationError(fields)
}
