package service

import "errors"

// ErrInvalidTransition is returned when a requested state change is outside
// the allowed set for the actor's role. The state machine output drives UI
// affordance, but this check at the mutation boundary is the authoritative
// one.
var ErrInvalidTransition = errors.New("state transition not allowed for role")

// ValidationError carries a user-facing message for malformed input.
// These messages are not security-sensitive and are surfaced verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError builds a ValidationError with the given message.
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
