// Package errs provides standardized error types for the fulfillment service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package covers the full error taxonomy of the order workflow:
//   - ValueIsRequiredError / ValueIsInvalidError / ValueIsOutOfRangeError: malformed input
//   - ObjectNotFoundError: order or agent missing
//   - InvalidTransitionError: status edge not permitted by the transition graph
//   - PreconditionFailedError: operation preconditions not met (agent busy, approval missing)
//   - ConflictError: concurrent mutation lost the optimistic version check (retryable)
//   - UnauthorizedError: actor does not own the resource
//   - CollaboratorFailedError: inventory/invoice/event call failed (never rolls back a commit)
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrConflict)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method producing a single-line, human-readable message
//   - Unwrap() method so errors.Is classifies against the sentinel
//
// No internal stack traces cross the boundary; callers map the sentinel to
// their transport's error representation.
package errs
