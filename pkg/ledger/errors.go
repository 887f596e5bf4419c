package ledger

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by Toggle when no record has the given id.
// Callers treat it as a no-op, never as a fatal condition.
var ErrNotFound = errors.New("record not found")

// ValidationError reports a required registration field that was empty
// after trimming.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

// IsValidation returns true if err (or any wrapped error) is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ParseError reports an import or persisted payload that is not a valid
// record collection. Callers absorb it: the ledger stays unchanged.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse records: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// IsParse returns true if err (or any wrapped error) is a ParseError.
func IsParse(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}
