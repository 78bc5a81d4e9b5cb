package application

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"bubblesea/internal/domain"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", formatFieldName(fieldName)),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "parentID" -> "parent ID")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"id":            "ID",
		"parentID":      "parent ID",
		"senpaiID":      "senpai ID",
		"grandparentID": "grandparent ID",
		"rootID":        "root ID",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}
	return fieldName
}

// ParseIDField parses a required bubble ID, reporting failures against fieldName.
// The returned error is a ValidationError that also matches ErrInvalidID.
func ParseIDField(fieldName, value string) (domain.ID, error) {
	if err := ValidateRequired(fieldName, value); err != nil {
		return 0, err
	}
	id, err := domain.ParseID(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%w: %w", &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("malformed %s: %q", formatFieldName(fieldName), value),
		}, ErrInvalidID)
	}
	return id, nil
}

// ValidateDistinct rejects a structural edit whose ids coincide
func ValidateDistinct(fields map[string]domain.ID) error {
	seen := make(map[domain.ID]string, len(fields))
	for _, name := range slices.Sorted(maps.Keys(fields)) {
		id := fields[name]
		if other, dup := seen[id]; dup {
			return &ValidationError{
				Field:   name,
				Message: fmt.Sprintf("%s must differ from %s", formatFieldName(name), formatFieldName(other)),
			}
		}
		seen[id] = name
	}
	return nil
}
