package errors

import (
	"math"
	"strings"
	"unicode"
)

// ValidateGap validates a gap dimension. Gaps must be finite; negative
// values are legal at the engine boundary (they clamp to zero) but are
// rejected in configuration files so typos surface early.
func ValidateGap(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidConfig, "%s must be a finite number", name)
	}
	if v < 0 {
		return New(ErrCodeInvalidConfig, "%s cannot be negative (got %g)", name, v)
	}
	return nil
}

// ValidateCacheSize validates the cache margin around the viewport.
func ValidateCacheSize(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return New(ErrCodeInvalidConfig, "cache_size must be a non-negative finite number (got %g)", v)
	}
	return nil
}

// ValidateExtent validates a viewport dimension.
func ValidateExtent(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return New(ErrCodeInvalidConfig, "%s must be a positive finite number (got %g)", name, v)
	}
	return nil
}

// ValidateFilePath validates a user-supplied file path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidateFilePath(path string) error {
	if strings.TrimSpace(path) == "" {
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
