package errs

import "errors"

// Categories that the HTTP layer maps to status codes. Use cases Mark their
// specific errors onto one of these.
var (
	ErrNotFound                = errors.New("requested entity not found")
	ErrForbidden               = errors.New("operation not permitted for caller")
	ErrConflict                = errors.New("state conflict")
	ErrDomainValidation        = errors.New("domain validation error")
	ErrUnauthenticated         = errors.New("authentication required")
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
