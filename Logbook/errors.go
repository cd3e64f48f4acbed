package Logbook

import "errors"

// Validation failure codes, used by handlers to pick response semantics
// (duplicate maps to a conflict, the rest to a bad request).
const (
	CodeBadDate    = "bad_date"
	CodeDateWindow = "date_window"
	CodeDuplicate  = "duplicate_date"
	CodeIncomplete = "incomplete"
	CodeEmpty      = "empty_submission"
	CodeBadInput   = "bad_input"
)

// ValidationError is a precondition failure caught before any write. It
// is user-facing, never a system fault.
type ValidationError struct {
	Code   string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func validationErr(code, reason string) error {
	return &ValidationError{Code: code, Reason: reason}
}

// AsValidation unwraps err as a ValidationError, or nil.
func AsValidation(err error) *ValidationError {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}
