package domain

import (
	"errors"
	"fmt"
)

// ErrValidation marks construction failures of value types. Handlers map it
// to a generic bad-request, distinct from the named domain errors.
var ErrValidation = errors.New("validation failed")

// Invalidf builds a validation error wrapping ErrValidation.
func Invalidf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
