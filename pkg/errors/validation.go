package errors

import (
	"strings"
	"unicode"
)

// ValidateIdentifier validates an asset identifier before it is used to name a
// reconstructed file. Identifiers are slash-separated paths relative to the
// traits root.
//
// Validation rules:
//   - Identifier cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidateIdentifier(id string) error {
	if id == "" {
		return New(ErrCodeInvalidPath, "asset identifier cannot be empty")
	}

	const maxLength = 500
	if len(id) > maxLength {
		return New(ErrCodeInvalidPath, "asset identifier too long (max %d characters)", maxLength)
	}

	for _, r := range id {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "asset identifier contains invalid characters")
		}
	}

	if strings.HasPrefix(id, "/") {
		return New(ErrCodeInvalidPath, "asset identifier must be relative: %q", id)
	}

	for _, part := range strings.Split(id, "/") {
		if part == ".." {
			return New(ErrCodeInvalidPath, "asset identifier cannot contain path traversal sequences (..)")
		}
	}

	if strings.Contains(id, "\\") {
		return New(ErrCodeInvalidPath, "asset identifier cannot contain backslashes")
	}

	return nil
}
