package services

import (
	"fmt"
)

// NotFoundError is returned by update/delete operations referencing an
// absent id. The store is left unchanged; callers re-read and re-render.
type NotFoundError struct {
	Entity string
	ID     uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

// NewNotFound constructs a NotFoundError for the given entity and id.
func NewNotFound(entity string, id uint) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

// ValidationError is raised before any mutation when a request is missing
// required fields or carries out-of-range values.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidation constructs a ValidationError with a formatted message.
func NewValidation(format string, v ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, v...)}
}

// ConflictError is returned when an operation collides with in-flight state,
// such as starting a drag while another drag session is active.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// NewConflict constructs a ConflictError with a formatted message.
func NewConflict(format string, v ...interface{}) *ConflictError {
	return &ConflictError{Message: fmt.Sprintf(format, v...)}
}
