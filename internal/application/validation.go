package application

import (
	"fmt"
	"strings"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		displayName := formatFieldName(fieldName)
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", displayName),
		}
	}
	return nil
}

// formatFieldName converts field names to space-separated words for more
// readable error messages (e.g., "basePath" -> "base path")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"basePath": "base path",
		"dir":      "directory",
		"path":     "path",
		"query":    "query",
		"label":    "label",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}

	return fieldName
}

// ValidatePositive checks that a numeric option is positive.
// Returns a ValidationError otherwise.
func ValidatePositive(fieldName string, value int) error {
	if value <= 0 {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s must be positive, got %d", formatFieldName(fieldName), value),
		}
	}
	return nil
}
