package errors

import (
	"strconv"
	"strings"
	"unicode"
)

// MaxDimension bounds rendered width and height, in pixels.
const MaxDimension = 8192

// ValidateSize checks that a render size is positive and bounded.
func ValidateSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return New(ErrCodeInvalidInput, "size must be positive, got %dx%d", width, height)
	}
	if width > MaxDimension || height > MaxDimension {
		return New(ErrCodeInvalidInput, "size too large (max %d), got %dx%d", MaxDimension, width, height)
	}
	return nil
}

// ParseSeed parses a decimal seed. Surrounding whitespace is ignored.
func ParseSeed(s string) (uint64, error) {
	seed, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, Wrap(ErrCodeInvalidInput, err, "invalid seed %q", s)
	}
	return seed, nil
}

// ValidateOutputPath validates a user-supplied output path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidateOutputPath(path string) error {
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
