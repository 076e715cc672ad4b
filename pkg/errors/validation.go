package errors

import (
	"strings"
	"unicode"
)

// ValidatePath validates a user-supplied file path for safety. It prevents
// path traversal and unreasonable lengths before the path is handed to the
// filesystem or a cache backend.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
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

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// ValidateTileID validates a tile id supplied through the CLI or API.
func ValidateTileID(id int) error {
	if id <= 0 {
		return New(ErrCodeInvalidTile, "tile id must be positive, got %d", id)
	}
	return nil
}

// ValidateCacheKey validates a cache key before it reaches a backend.
// Keys are restricted to a conservative character set so the same key is
// valid for file, Redis, and MongoDB backends alike.
func ValidateCacheKey(key string) error {
	if key == "" {
		return New(ErrCodeInvalidInput, "cache key cannot be empty")
	}
	if len(key) > 200 {
		return New(ErrCodeInvalidInput, "cache key too long (max 200 characters)")
	}
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-', r == '_', r == ':', r == '.':
		default:
			return New(ErrCodeInvalidInput, "cache key contains invalid character %q", r)
		}
	}
	return nil
}
