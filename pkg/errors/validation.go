package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// guidRegex matches the canonical 8-4-4-4-12 hex GUID form.
var guidRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// ValidateGUID validates a component or instance GUID string.
// Braced forms ("{...}") are accepted and validated without the braces,
// matching how hosts commonly print them.
func ValidateGUID(s string) error {
	if s == "" {
		return New(ErrCodeInvalidGUID, "GUID cannot be empty")
	}

	trimmed := strings.TrimPrefix(strings.TrimSuffix(s, "}"), "{")
	if !guidRegex.MatchString(trimmed) {
		return New(ErrCodeInvalidGUID, "malformed GUID: %q", s)
	}

	return nil
}

// ValidateComponentName validates a component display name.
// Display names are free-form but must not contain control characters
// and are capped to keep documents readable.
func ValidateComponentName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "component name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidInput, "component name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "component name contains control characters")
		}
	}

	return nil
}

// ValidateParameterName validates a parameter display name.
// Parameter names appear in connection endpoints and must be non-empty
// and free of control characters.
func ValidateParameterName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "parameter name cannot be empty")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "parameter name contains control characters")
		}
	}

	return nil
}

// tokenPrefixRegex matches codec token prefixes (e.g. "pointXYZ", "argb").
var tokenPrefixRegex = regexp.MustCompile(`^[a-z][a-zA-Z0-9]*$`)

// ValidateTokenPrefix validates a codec token prefix.
// Prefixes are lowercase-leading alphanumeric identifiers by convention.
func ValidateTokenPrefix(prefix string) error {
	if prefix == "" {
		return New(ErrCodeInvalidToken, "token prefix cannot be empty")
	}

	if !tokenPrefixRegex.MatchString(prefix) {
		return New(ErrCodeInvalidToken, "invalid token prefix: %q", prefix)
	}

	return nil
}
