package types

import "fmt"

// ValidationError is a client-caused input error (bad date range, unresolvable
// location, missing fields). Not retryable.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// AuthorizationError means the actor is not a participant of, or lacks the role
// for, the attempted operation.
type AuthorizationError struct {
	Msg string
}

func (e *AuthorizationError) Error() string { return e.Msg }

func NewAuthorizationError(format string, args ...any) *AuthorizationError {
	return &AuthorizationError{Msg: fmt.Sprintf(format, args...)}
}

// StateError means the requested transition is not permitted from the record's
// current status. A losing concurrent transition also surfaces as StateError.
type StateError struct {
	Msg string
}

func (e *StateError) Error() string { return e.Msg }

func NewStateError(format string, args ...any) *StateError {
	return &StateError{Msg: fmt.Sprintf(format, args...)}
}

// DependencyError wraps a failure of an external collaborator or a missing
// billing prerequisite. Logged with the booking id so a sweep can retry later.
type DependencyError struct {
	Op  string
	Err error
}

func (e *DependencyError) Error() string {
	if e.Err == nil {
		return e.Op
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Err.Error())
}

func (e *DependencyError) Unwrap() error { return e.Err }

func NewDependencyError(op string, err error) *DependencyError {
	return &DependencyError{Op: op, Err: err}
}
