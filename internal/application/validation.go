package application

import (
	"fmt"
	"strings"

	"artbind/internal/domain"
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

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "instanceID" -> "instance ID")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"instanceID": "instance ID",
		"path":       "property path",
		"source":     "source",
		"input":      "input name",
		"seconds":    "seconds",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}

	return fieldName
}

// ValidatePath checks that a property path has at least one segment.
func ValidatePath(fieldName, path string) error {
	if len(domain.SplitPath(path)) == 0 {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", formatFieldName(fieldName)),
		}
	}
	return nil
}

// ValidateAssetKind checks that kind is one the asset layer can decode.
func ValidateAssetKind(fieldName string, kind domain.Kind) error {
	if kind != domain.KindImage && kind != domain.KindFont {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("expected image or font, got: %s", kind),
		}
	}
	return nil
}
