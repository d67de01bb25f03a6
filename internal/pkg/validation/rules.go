// Package validation holds the custom form binding rules.
package validation

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// NotBlankTag rejects values that are empty after trimming whitespace.
const NotBlankTag = "notblank"

// NotBlank implements NotBlankTag.
func NotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// RegisterBindingRules installs the custom rules on gin's validator. It is
// safe to call more than once.
func RegisterBindingRules() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin binding validator is not go-playground/validator")
	}
	return v.RegisterValidation(NotBlankTag, NotBlank)
}

// Describe turns a binding error into short per-field messages for logging.
func Describe(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}
	out := make([]string, 0, len(verrs))
	for _, e := range verrs {
		out = append(out, formatValidationError(e))
	}
	return out
}

func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case NotBlankTag:
		return e.Field() + " must not be blank"
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
