package errors

import (
	"strings"
	"unicode"
)

const maxIDLength = 128

// ValidateID validates a node or cluster identifier.
//
// Identifiers end up quoted inside DOT source and in cache keys, so the rules
// are conservative:
//   - No empty identifiers
//   - Maximum length of 128 characters
//   - No whitespace or control characters
//   - No quotes or backslashes
func ValidateID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidID, "identifier cannot be empty")
	}
	if len(id) > maxIDLength {
		return New(ErrCodeInvalidID, "identifier %q too long (max %d characters)", id[:16]+"...", maxIDLength)
	}
	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidID, "identifier %q contains whitespace or control characters", id)
		}
	}
	if strings.ContainsAny(id, "\"\\") {
		return New(ErrCodeInvalidID, "identifier %q contains quotes or backslashes", id)
	}
	return nil
}

// ValidateLabel validates a display label. Labels may contain spaces but
// no control characters other than newlines.
func ValidateLabel(label string) error {
	for _, r := range label {
		if r != '\n' && unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "label %q contains control characters", label)
		}
	}
	return nil
}

// ValidatePath validates an output path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	return nil
}
