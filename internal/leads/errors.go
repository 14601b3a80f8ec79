package leads

import "errors"

// ErrLeadNotFound is returned when no lead exists for the given email.
var ErrLeadNotFound = errors.New("leads: lead not found")

// ValidationError describes a user-caused input problem. It carries the
// single client-facing message for the first failing check; validation never
// accumulates multiple errors in one response.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}
