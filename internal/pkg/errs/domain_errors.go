package errs

import "errors"

// Error kinds shared by the usecase and handler layers.
// Specific errors are marked with one of these so callers can branch with errors.Is.
var (
	ErrNotFound            = errors.New("not found")
	ErrInvalidTransition   = errors.New("invalid transition")
	ErrInvalidSubstitution = errors.New("invalid substitution")
	ErrConflictingState    = errors.New("conflicting state")
	ErrValidation          = errors.New("validation error")
	ErrNotificationFailure = errors.New("notification failure")
	ErrForbidden           = errors.New("forbidden")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)

// Kind returns the first kind sentinel err is marked with, or nil.
func Kind(err error) error {
	for _, k := range []error{
		ErrNotFound,
		ErrInvalidTransition,
		ErrInvalidSubstitution,
		ErrConflictingState,
		ErrValidation,
		ErrNotificationFailure,
		ErrForbidden,
	} {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}
