// Package validation provides input validation utilities
package validation

import (
	"strings"

	"vidtube/internal/models"

	"github.com/google/uuid"
)

// ParseReference parses raw as an entity identifier. label names the
// parameter in the error message, e.g. "video id".
func ParseReference(label, raw string) (uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.Nil, models.NewInvalidReferenceError(label)
	}
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, models.NewInvalidReferenceError(label)
	}
	return id, nil
}

// RequireField trims value and fails with MissingField when nothing is left.
func RequireField(label, value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", models.NewMissingFieldError(label)
	}
	return trimmed, nil
}

// Optional trims an optional field. ok reports whether a non-blank value was supplied.
func Optional(value *string) (string, bool) {
	if value == nil {
		return "", false
	}
	trimmed := strings.TrimSpace(*value)
	return trimmed, trimmed != ""
}
