package domain

import "errors"

// ErrNotFound marks a lookup that matched no document. Callers render it as a
// null result or 404, never as a crash.
var ErrNotFound = errors.New("not found")

// ValidationError names the offending field so the UI can render the message
// inline. It is raised before any storage call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func Invalid(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// AsValidation unwraps err into a *ValidationError when it is one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
