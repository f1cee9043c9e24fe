package employee

import (
	"errors"
	"fmt"
)

// ValidationError reports a field assignment that violates an invariant.
type ValidationError struct {
	// Field is the human-readable field name ("id", "name", "hourly rate").
	Field string

	// Reason describes the violated constraint.
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidationError returns true if err is or wraps a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Leave approval failures. They are wrapped with the employee names involved.
var (
	ErrNotAuthorized      = errors.New("not authorized to approve leave")
	ErrNotSubordinate     = errors.New("not a subordinate")
	ErrNoLeaveEntitlement = errors.New("no leave entitlement")
)

func newValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}
