package errors

import (
	"math"
	"strings"
	"unicode"
)

// MaxNodeIDLength bounds node identifiers accepted from files and requests.
const MaxNodeIDLength = 256

// ValidateNodeID validates a node identifier from external input.
//
// The rules are intentionally conservative:
//   - No empty IDs
//   - No control characters or null bytes
//   - Maximum length of MaxNodeIDLength bytes
//
// IDs are otherwise opaque; the layout engine never interprets them.
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidGraph, "node id cannot be empty")
	}

	if len(id) > MaxNodeIDLength {
		return New(ErrCodeInvalidGraph, "node id too long (max %d characters)", MaxNodeIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidGraph, "node id %q contains control characters", id)
		}
	}

	return nil
}

// ValidateWeight validates an edge weight from external input.
// Weights must be finite and non-negative.
func ValidateWeight(w float64) error {
	if math.IsNaN(w) || math.IsInf(w, 0) {
		return New(ErrCodeInvalidGraph, "edge weight must be finite, got %v", w)
	}
	if w < 0 {
		return New(ErrCodeInvalidGraph, "edge weight must be >= 0, got %v", w)
	}
	return nil
}

// ValidateOutputPath validates a file path the CLI is about to write.
// It rejects empty paths, null bytes, and directories (trailing separator).
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "output path cannot be empty")
	}
	if strings.ContainsRune(path, '\x00') {
		return New(ErrCodeInvalidInput, "output path contains invalid characters")
	}
	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, "\\") {
		return New(ErrCodeInvalidInput, "output path %q is a directory", path)
	}
	return nil
}
