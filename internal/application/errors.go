package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidID        = errors.New("invalid ID")
	ErrInvalidOperation = errors.New("invalid operation")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NotFoundError reports a bubble that neither the cache nor the remote knows
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("bubble %s not found", e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// StructureError reports a structural edit that left the outline unchanged
type StructureError struct {
	ID     string
	Reason string
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("cannot restructure %s: %s", e.ID, e.Reason)
}

func (e *StructureError) Is(target error) bool {
	return target == ErrInvalidOperation
}
