package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// ErrSourceUnavailable wraps every remote catalog failure. The caller can
// only retry later; no structured detail crosses this boundary.
var ErrSourceUnavailable = errors.New("remote catalog unavailable")

// Repository aggregates the per-entity repositories over one store handle.
type Repository interface {
	User() UserRepository
	Room() RoomRepository
	Subject() SubjectRepository
	Shift() ShiftRepository
	Enrollment() EnrollmentRepository
	Booking() BookingRepository

	// WithTransaction executes fn against a repository bound to a single
	// store transaction; any error rolls the whole transaction back.
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	Ping(ctx context.Context) error
	Close() error
}

// RepositoryManager owns repository initialization and shutdown.
type RepositoryManager interface {
	Initialize() error
	GetRepository() Repository
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// IsNotFoundError reports whether err is the store's record-not-found.
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsConstraintError reports whether err is a duplicate key or a foreign key
// violation. Requires the store to be opened with error translation.
func IsConstraintError(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated)
}
