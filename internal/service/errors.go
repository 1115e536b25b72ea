package service

import "fmt"

// ValidationError reports an invalid activity configuration. It carries
// the complete field-to-messages map so callers can render every
// violation, never just the first.
type ValidationError struct {
	Result ValidationResult
}

func (e *ValidationError) Error() string {
	return "activity configuration is invalid"
}

// NotFoundError identifies an entity that could not be resolved.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Entity, e.ID)
}

// ConflictError is reserved for boundary use; the core never raises it.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// BadRequestError is reserved for boundary use; the core never raises it.
type BadRequestError struct {
	Message string
}

func (e *BadRequestError) Error() string {
	return e.Message
}
