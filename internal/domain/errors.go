package domain

import "errors"

// Error kinds. Every error raised by the core wraps exactly one of them,
// so callers can branch with errors.Is without knowing the specific sentinel.
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidOperation = errors.New("invalid operation")
)

// ErrConflict is an invalid operation caused by something that already exists.
var ErrConflict = newKindError("already exists", ErrInvalidOperation)

// Domain errors.
var (
	ErrTaskNotFound       = newKindError("task not found", ErrNotFound)
	ErrStateNotFound      = newKindError("unknown state", ErrNotFound)
	ErrTagNotFound        = newKindError("tag not found", ErrNotFound)
	ErrRepositoryNotFound = newKindError("repository not found", ErrNotFound)

	ErrSelfAttach            = newKindError("can't attach task to itself", ErrInvalidOperation)
	ErrCyclicAttach          = newKindError("can't attach task to its own subtask", ErrInvalidOperation)
	ErrDuplicateIndex        = newKindError("duplicate task index", ErrInvalidOperation)
	ErrInvalidTransition     = newKindError("invalid state transition", ErrInvalidOperation)
	ErrNoActiveState         = newKindError("task doesn't have a state", ErrInvalidOperation)
	ErrStateAlreadySet       = newKindError("task already has a state", ErrInvalidOperation)
	ErrInvalidStateName      = newKindError("state name cannot be empty", ErrInvalidOperation)
	ErrInvalidTagName        = newKindError("tag name cannot be empty", ErrInvalidOperation)
	ErrInvalidTaskName       = newKindError("task name cannot be empty", ErrInvalidOperation)
	ErrInvalidRepositoryName = newKindError("repository name cannot be empty", ErrInvalidOperation)

	ErrStateExists      = newKindError("state already defined", ErrConflict)
	ErrTransitionExists = newKindError("transition already defined", ErrConflict)
	ErrRepositoryExists = newKindError("repository already exists", ErrConflict)
	ErrConfigExists     = newKindError("config file already exists", ErrConflict)

	ErrUnknownFormat = newKindError("unknown import format", ErrInvalidOperation)
)

// kindError is a sentinel that unwraps to its kind.
type kindError struct {
	kind error
	msg  string
}

func newKindError(msg string, kind error) error {
	return &kindError{msg: msg, kind: kind}
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.kind }
