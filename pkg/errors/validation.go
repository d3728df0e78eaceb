package errors

import (
	"strings"
	"unicode"
)

// maxAppIDLength bounds application identifiers accepted from input records.
const maxAppIDLength = 256

// ValidateAppID validates an application identifier taken from an input record.
// Identifiers end up inside node and edge ids, so they must be non-empty,
// bounded in length and free of control characters.
func ValidateAppID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "appId cannot be empty")
	}

	if len(id) > maxAppIDLength {
		return New(ErrCodeInvalidInput, "appId too long (max %d characters)", maxAppIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "appId contains invalid control characters")
		}
	}

	return nil
}

// ValidatePath validates a local file path given as a record source.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
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

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !IsURL(rawURL) {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}

// IsURL reports whether s looks like an http or https URL.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
