// Package validation provides custom validation rules for the application.
package validation

import (
	"regexp"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/odiadev/keygate/internal/errors"
)

var (
	// hostnameRegex matches DNS hostnames: dot-separated labels of letters,
	// digits, and hyphens, with no leading/trailing hyphen per label.
	hostnameRegex = regexp.MustCompile(
		`^([a-zA-Z0-9]|[a-zA-Z0-9][a-zA-Z0-9\-]{0,61}[a-zA-Z0-9])(\.([a-zA-Z0-9]|[a-zA-Z0-9][a-zA-Z0-9\-]{0,61}[a-zA-Z0-9]))*$`,
	)
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// NoWhitespace validates that string doesn't contain leading/trailing whitespace
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return s == strings.TrimSpace(s)
	},
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)

// Hostname validates that a string is a bare DNS hostname. Scheme, port, and
// path are rejected: allowed domains are matched against the Origin host only.
var Hostname = validation.NewStringRuleWithError(
	func(s string) bool {
		return hostnameRegex.MatchString(s)
	},
	validation.NewError("validation_hostname", "must be a valid hostname without scheme or port"),
)
