package repositories

import (
	"context"

	"github.com/SR-Exam/scheduler-service/internal/models"
)

// ===== LOCAL STORE REPOSITORIES =====
//
// Lookup methods return (nil, nil) when the row does not exist; absence is a
// valid outcome for every caller in the sync and auth paths, not an error.

type UserRepository interface {
	GetByBNNumber(ctx context.Context, bnNumber string) (*models.User, error)
	// GetByIdentifier matches a user whose nim OR initial equals identifier.
	// nim and initial values are expected to be disjoint across users; when
	// they are not, the first matching row wins.
	GetByIdentifier(ctx context.Context, identifier string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	// UpdateCatalogFields applies the remote-owned fields (name, role,
	// initial) to an existing row, leaving the stored credential untouched.
	UpdateCatalogFields(ctx context.Context, user *models.User) error
	UpdatePassword(ctx context.Context, bnNumber, hashedPassword string) error
	UpdateRole(ctx context.Context, bnNumber, role string) error
	List(ctx context.Context) ([]*models.User, error)
}

type RoomRepository interface {
	GetByNumber(ctx context.Context, roomNumber string) (*models.Room, error)
	Create(ctx context.Context, room *models.Room) error
	List(ctx context.Context) ([]*models.Room, error)
}

type SubjectRepository interface {
	GetByCode(ctx context.Context, subjectCode string) (*models.Subject, error)
	Create(ctx context.Context, subject *models.Subject) error
	List(ctx context.Context) ([]*models.Subject, error)
}

type ShiftRepository interface {
	GetByID(ctx context.Context, shiftID string) (*models.Shift, error)
	List(ctx context.Context) ([]*models.Shift, error)
}

type EnrollmentRepository interface {
	GetByClassCode(ctx context.Context, classCode string) (*models.Enrollment, error)
	Create(ctx context.Context, enrollment *models.Enrollment) error
	// List returns enrollments with their subject preloaded, as the
	// scheduling UI groups enrollments by subject.
	List(ctx context.Context) ([]*models.Enrollment, error)
}

type BookingRepository interface {
	Create(ctx context.Context, booking *models.ExamTransaction) error
	GetByID(ctx context.Context, transactionID string) (*models.ExamTransaction, error)
	List(ctx context.Context) ([]*models.ExamTransaction, error)
	// ListByDate returns full booking rows for a date with subject, room and
	// shift preloaded. date is formatted as 2006-01-02.
	ListByDate(ctx context.Context, date string) ([]*models.ExamTransaction, error)
	// ListOccupancy returns the (room, shift) pairs booked on a date,
	// optionally restricted to one room.
	ListOccupancy(ctx context.Context, date string, roomNumber *string) ([]models.RoomTransaction, error)
	Update(ctx context.Context, booking *models.ExamTransaction) error
}

// ===== REMOTE CATALOG =====

// RemoteCatalog is the read-only system of record. The engine only consumes
// it as "produces a finite list of records, or fails".
type RemoteCatalog interface {
	FetchUsers(ctx context.Context) ([]models.CatalogUser, error)
	FetchRooms(ctx context.Context) ([]models.CatalogRoom, error)
	FetchSubjects(ctx context.Context) ([]models.CatalogSubject, error)
	FetchEnrollments(ctx context.Context) ([]models.CatalogEnrollment, error)
	GetPasswordByNIM(ctx context.Context, nim string) (string, error)
}
