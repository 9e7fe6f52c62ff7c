package bracket

import "errors"

var (
	// ErrInvalidInput marks input the engine refuses to seed or pair.
	ErrInvalidInput = errors.New("invalid input")

	// ErrPrecondition marks a transition the caller should never have asked for,
	// such as advancing a finished tournament.
	ErrPrecondition = errors.New("precondition violated")
)
