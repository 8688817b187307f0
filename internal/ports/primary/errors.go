package primary

import (
	"errors"
	"fmt"
)

// ErrorKind categorizes the recoverable failure modes of the lead workflow.
//
// NotFound, OwnerConflict, PermissionDenied and ValidationError are expected
// outcomes returned synchronously for user-facing translation. StoreFailure
// wraps an unexpected storage error; the transaction it belonged to has been
// rolled back.
type ErrorKind string

const (
	// KindNotFound indicates the lead or worker does not exist.
	KindNotFound ErrorKind = "NOT_FOUND"

	// KindOwnerConflict indicates a claim lost the race for an unowned lead.
	KindOwnerConflict ErrorKind = "OWNER_CONFLICT"

	// KindPermissionDenied indicates a role or ownership check failed.
	KindPermissionDenied ErrorKind = "PERMISSION_DENIED"

	// KindValidation indicates a malformed or disallowed field.
	KindValidation ErrorKind = "VALIDATION_ERROR"

	// KindStoreFailure indicates the underlying transactional store failed.
	KindStoreFailure ErrorKind = "STORE_FAILURE"
)

// Error is the typed error returned across the primary port boundary.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error // wrapped cause, set for StoreFailure
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the wrapped cause, if any.
func (e *Error) Unwrap() error { return e.Err }

// NotFoundError creates a NotFound error.
func NotFoundError(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// OwnerConflictError creates an OwnerConflict error.
func OwnerConflictError(format string, args ...any) *Error {
	return &Error{Kind: KindOwnerConflict, Message: fmt.Sprintf(format, args...)}
}

// PermissionDeniedError creates a PermissionDenied error.
func PermissionDeniedError(format string, args ...any) *Error {
	return &Error{Kind: KindPermissionDenied, Message: fmt.Sprintf(format, args...)}
}

// ValidationErr creates a ValidationError.
func ValidationErr(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// StoreFailureError wraps an unexpected storage error.
func StoreFailureError(err error, format string, args ...any) *Error {
	return &Error{Kind: KindStoreFailure, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf returns the ErrorKind of err, or "" if err is not a typed Error.
// Uses errors.As to handle wrapped errors.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsNotFound returns true if the error is a NotFound error.
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

// IsOwnerConflict returns true if the error is an OwnerConflict error.
func IsOwnerConflict(err error) bool { return KindOf(err) == KindOwnerConflict }

// IsPermissionDenied returns true if the error is a PermissionDenied error.
func IsPermissionDenied(err error) bool { return KindOf(err) == KindPermissionDenied }

// IsValidation returns true if the error is a ValidationError.
func IsValidation(err error) bool { return KindOf(err) == KindValidation }
