// Package errs provides standardized error types for the marketplace engine.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package groups errors into the classes callers need to tell apart:
//   - validation: ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError
//   - lookup: ObjectNotFoundError
//   - state conflict: StateConflictError, returned when a transition is illegal from the
//     entity's current status or when a concurrent writer won the race
//   - permission: PermissionDeniedError, returned when the caller's role or ownership does
//     not match the operation
//   - transient: UnavailableError, returned when a collaborator (store, broker) could not
//     be reached; the caller decides whether to retry
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel, so errors.Is works on wrapped values
package errs
