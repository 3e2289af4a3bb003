package services

import (
	"errors"
	"fmt"

	"github.com/SR-Exam/scheduler-service/internal/repositories"
)

// Error kinds surfaced to handlers. Handlers map these onto HTTP statuses;
// services never embed transport detail.
var (
	// ErrSourceUnavailable means the remote catalog could not be reached or
	// returned garbage. Retry later is the only remedy.
	ErrSourceUnavailable = repositories.ErrSourceUnavailable

	// ErrStoreUnavailable means the local store rejected an operation for a
	// reason other than a constraint.
	ErrStoreUnavailable = errors.New("local store unavailable")

	// ErrConstraintViolation means the store refused a write because of a
	// duplicate key or a dangling reference.
	ErrConstraintViolation = errors.New("constraint violation")

	// ErrNotAuthenticated covers unknown identifiers, wrong passwords and
	// operations that require a session when none is active. Callers cannot
	// distinguish the cases.
	ErrNotAuthenticated = errors.New("not authenticated")

	ErrValidationFailed = errors.New("validation failed")

	ErrUserNotFound    = errors.New("user not found")
	ErrBookingNotFound = errors.New("booking not found")
)

// storeError classifies a repository write failure into one of the service
// error kinds, keeping the cause in the message.
func storeError(err error) error {
	if repositories.IsConstraintError(err) {
		return fmt.Errorf("%w: %v", ErrConstraintViolation, err)
	}
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}

// validationError wraps field errors under ErrValidationFailed so handlers
// can match the kind while still reporting the fields.
func validationError(errs error) error {
	return fmt.Errorf("%w: %v", ErrValidationFailed, errs)
}
