package validators

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Sentinel errors for the validation taxonomy. Handlers translate these
// into HTTP status codes; everything here stays transport-agnostic.
var (
	ErrMalformedInput      = errors.New("malformed input")
	ErrInvalidValue        = errors.New("invalid value")
	ErrNotFound            = errors.New("not found")
	ErrDuplicateIngredient = errors.New("duplicate ingredient")
	ErrEmptyShoppingList   = errors.New("shopping list is empty")
)

// FieldError attributes a validation failure to the payload field that
// caused it.
type FieldError struct {
	Field  string
	Detail string
	Err    error
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Detail
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

func NewFieldError(field string, sentinel error, format string, args ...interface{}) *FieldError {
	return &FieldError{Field: field, Detail: fmt.Sprintf(format, args...), Err: sentinel}
}

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

// HexColor checks that value is a 3- or 6-digit hex color, with or without
// a leading '#', and returns it normalized to the '#'-prefixed form.
// Re-validating the returned value yields the same value.
func HexColor(value string) (string, error) {
	v := strings.Trim(value, " #")
	if len(v) != 3 && len(v) != 6 {
		return "", NewFieldError("color", ErrInvalidValue, "%q has wrong length (%d)", value, len(v))
	}
	for _, r := range v {
		if !isHexDigit(r) {
			return "", NewFieldError("color", ErrInvalidValue, "%q is not hexadecimal", value)
		}
	}
	return "#" + v, nil
}

func isHexDigit(r rune) bool {
	switch {
	case r >= '0' && r <= '9':
		return true
	case r >= 'a' && r <= 'f':
		return true
	case r >= 'A' && r <= 'F':
		return true
	}
	return false
}

// PositiveID checks that value is a string of decimal digits with an
// integer value greater than zero and returns that integer.
func PositiveID(value string) (int, error) {
	if value == "" {
		return 0, NewFieldError("id", ErrInvalidValue, "value is empty")
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return 0, NewFieldError("id", ErrInvalidValue, "%q must contain only digits", value)
		}
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, NewFieldError("id", ErrInvalidValue, "%q is not a number", value)
	}
	if n <= 0 {
		return 0, NewFieldError("id", ErrInvalidValue, "value must be greater than 0")
	}
	return n, nil
}

// Username checks length and alphabet and returns the canonical
// (capitalized) form under which the name is stored.
func Username(name string) (string, error) {
	runes := []rune(name)
	if len(runes) < 3 || len(runes) > 150 {
		return "", NewFieldError("username", ErrInvalidValue, "length must be between 3 and 150")
	}
	for _, r := range runes {
		if !unicode.IsLetter(r) {
			return "", NewFieldError("username", ErrInvalidValue, "only letters are allowed")
		}
	}
	return Capitalize(name), nil
}

// Slug checks the URL-safe alphabet used for tag slugs.
func Slug(value string) (string, error) {
	if value == "" || len(value) > 200 || !slugPattern.MatchString(value) {
		return "", NewFieldError("slug", ErrInvalidValue, "%q is not a valid slug", value)
	}
	return value, nil
}

// Capitalize upper-cases the first rune and lower-cases the rest.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(strings.ToLower(s))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
