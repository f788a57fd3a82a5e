package errors

import (
	"slices"
	"strings"
	"unicode"
)

// maxIDLength bounds element identifiers.
const maxIDLength = 128

// ValidateElementID checks an element identifier before it is written
// into SVG, DOT or JSON output:
//   - not empty
//   - at most 128 bytes
//   - no control characters
//   - no markup characters (< > & " ')
func ValidateElementID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidScene, "element id cannot be empty")
	}
	if len(id) > maxIDLength {
		return New(ErrCodeInvalidScene, "element id too long (max %d characters)", maxIDLength)
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidScene, "element id %q contains control characters", id)
		}
	}
	if i := strings.IndexAny(id, `<>&"'`); i >= 0 {
		return New(ErrCodeInvalidScene, "element id %q contains invalid character %q", id, id[i])
	}
	return nil
}

// ValidateFormat checks that format is one of allowed (case-insensitive).
func ValidateFormat(format string, allowed []string) error {
	if slices.Contains(allowed, strings.ToLower(format)) {
		return nil
	}
	return New(ErrCodeInvalidFormat, "unsupported format %q (want one of %s)", format, strings.Join(allowed, ", "))
}
