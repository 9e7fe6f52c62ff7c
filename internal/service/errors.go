package service

import "errors"

var (
	ErrNoTournament      = errors.New("no tournament in progress")
	ErrCandidateNotFound = errors.New("candidate not found")
)

// ValidationError is a problem the user can fix, such as a candidate list of
// the wrong size. Its message is meant to be shown as is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
