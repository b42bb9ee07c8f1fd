package handler

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// formatValidationError converts validator errors into a human-readable
// message naming the first failing field and constraint.
func formatValidationError(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			field := snakeCase(fe.Field())
			switch fe.Tag() {
			case "required":
				return "invalid request: " + field + " is required"
			case "notblank":
				return "invalid request: " + field + " cannot be whitespace only"
			case "max":
				return "invalid request: " + field + " exceeds maximum length of " + fe.Param()
			case "min":
				return "invalid request: " + field + " must have at least " + fe.Param() + " entries or characters"
			case "email":
				return "invalid request: " + field + " must be a valid email address"
			case "oneof":
				return "invalid request: " + field + " must be one of: " + fe.Param()
			default:
				return "invalid request: " + field + " is invalid"
			}
		}
	}
	return "invalid request"
}

// snakeCase converts an exported struct field name to its snake_case JSON
// form (PackageID -> package_id) for error messages.
func snakeCase(name string) string {
	var b strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 && (name[i-1] < 'A' || name[i-1] > 'Z') {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
