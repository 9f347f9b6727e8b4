package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for classification with errors.Is. Every constructed error
// unwraps to exactly one of these, so callers can branch on the kind without
// inspecting messages.
var (
	ErrValueIsRequired    = errors.New("value is required")
	ErrValueIsInvalid     = errors.New("value is invalid")
	ErrValueIsOutOfRange  = errors.New("value is out of range")
	ErrObjectNotFound     = errors.New("object not found")
	ErrInvalidTransition  = errors.New("status transition is not allowed")
	ErrPreconditionFailed = errors.New("precondition failed")
	ErrConflict           = errors.New("concurrent modification conflict")
	ErrUnauthorized       = errors.New("actor is not authorized")
	ErrCollaboratorFailed = errors.New("external collaborator failed")
)

// sanitize keeps error messages single-line.
func sanitize(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "\r", " ")
}

func withCause(msg string, cause error) string {
	if cause == nil {
		return msg
	}
	return fmt.Sprintf("%s (cause: %s)", msg, sanitize(cause.Error()))
}

// ValueIsRequiredError indicates a required value is missing.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	return withCause(fmt.Sprintf("value is required: %s", sanitize(e.ParamName)), e.Cause)
}

func (e *ValueIsRequiredError) Unwrap() error { return ErrValueIsRequired }

// ValueIsInvalidError indicates a value is malformed or violates a business rule.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	return withCause(fmt.Sprintf("value is invalid: %s", sanitize(e.ParamName)), e.Cause)
}

func (e *ValueIsInvalidError) Unwrap() error { return ErrValueIsInvalid }

// ValueIsOutOfRangeError indicates a numeric value lies outside its permitted range.
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

func (e *ValueIsOutOfRangeError) Error() string {
	return withCause(
		sanitize(fmt.Sprintf("value is out of range: %s is %v, min value is %v, max value is %v",
			e.ParamName, e.Value, e.Min, e.Max)),
		e.Cause)
}

func (e *ValueIsOutOfRangeError) Unwrap() error { return ErrValueIsOutOfRange }

// ObjectNotFoundError indicates a referenced entity does not exist.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	return withCause(sanitize(fmt.Sprintf("object not found: %s %v", e.ParamName, e.ID)), e.Cause)
}

func (e *ObjectNotFoundError) Unwrap() error { return ErrObjectNotFound }

// InvalidTransitionError indicates a status change outside the legal transition graph.
type InvalidTransitionError struct {
	From string
	To   string
}

func NewInvalidTransitionError(from, to string) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	return sanitize(fmt.Sprintf("status transition is not allowed: %s -> %s", e.From, e.To))
}

func (e *InvalidTransitionError) Unwrap() error { return ErrInvalidTransition }

// PreconditionFailedError indicates an operation-specific precondition does not hold
// (e.g. agent unavailable, approval missing).
type PreconditionFailedError struct {
	Message string
	Cause   error
}

func NewPreconditionFailedError(message string) *PreconditionFailedError {
	return &PreconditionFailedError{Message: message}
}

func NewPreconditionFailedErrorWithCause(message string, cause error) *PreconditionFailedError {
	return &PreconditionFailedError{Message: message, Cause: cause}
}

func (e *PreconditionFailedError) Error() string {
	return withCause(fmt.Sprintf("precondition failed: %s", sanitize(e.Message)), e.Cause)
}

func (e *PreconditionFailedError) Unwrap() error { return ErrPreconditionFailed }

// ConflictError indicates a concurrent mutation lost the optimistic version check.
// The operation is retryable by the caller against fresh state.
type ConflictError struct {
	Resource string
	ID       any
	Cause    error
}

func NewConflictError(resource string, id any) *ConflictError {
	return &ConflictError{Resource: resource, ID: id}
}

func NewConflictErrorWithCause(resource string, id any, cause error) *ConflictError {
	return &ConflictError{Resource: resource, ID: id, Cause: cause}
}

func (e *ConflictError) Error() string {
	return withCause(sanitize(fmt.Sprintf("concurrent modification conflict: %s %v", e.Resource, e.ID)), e.Cause)
}

func (e *ConflictError) Unwrap() error { return ErrConflict }

// UnauthorizedError indicates the acting party does not own the resource or role.
type UnauthorizedError struct {
	Message string
}

func NewUnauthorizedError(message string) *UnauthorizedError {
	return &UnauthorizedError{Message: message}
}

func (e *UnauthorizedError) Error() string {
	return fmt.Sprintf("actor is not authorized: %s", sanitize(e.Message))
}

func (e *UnauthorizedError) Unwrap() error { return ErrUnauthorized }

// CollaboratorFailedError indicates a best-effort external call (inventory,
// invoice, event publishing) failed. It never rolls back a committed mutation.
type CollaboratorFailedError struct {
	Collaborator string
	Cause        error
}

func NewCollaboratorFailedError(collaborator string, cause error) *CollaboratorFailedError {
	return &CollaboratorFailedError{Collaborator: collaborator, Cause: cause}
}

func (e *CollaboratorFailedError) Error() string {
	return withCause(fmt.Sprintf("external collaborator failed: %s", sanitize(e.Collaborator)), e.Cause)
}

func (e *CollaboratorFailedError) Unwrap() error { return ErrCollaboratorFailed }
