package domain

import (
	"errors"
	"fmt"
)

// ValidationError reports invalid input to a mutating call.
// Unknown-id lookups are NOT errors anywhere in the library subsystem;
// they return sentinel values (nil/false/empty) instead.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
