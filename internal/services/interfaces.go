package services

import (
	"context"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/SR-Exam/scheduler-service/internal/models"
	"github.com/SR-Exam/scheduler-service/internal/validator"
)

// ===== REQUEST/RESPONSE DTOs =====

// Use business validator types
type LoginRequest = validator.LoginRequest
type ChangePasswordRequest = validator.ChangePasswordRequest
type EditRoleRequest = validator.EditRoleRequest
type CreateBookingRequest = validator.CreateBookingRequest
type AssignProctorRequest = validator.AssignProctorRequest

// LoginResponse reports which identity column matched the identifier so the
// client can adjust its UI for students versus assistants.
type LoginResponse struct {
	MatchedBy string      `json:"matched_by"`
	User      models.User `json:"user"`
}

// SyncResult summarizes one table's reconciliation pass.
type SyncResult struct {
	Table    string `json:"table"`
	Fetched  int    `json:"fetched"`
	Inserted int    `json:"inserted"`
	Updated  int    `json:"updated"`
	Skipped  int    `json:"skipped"`
}

// BookingResponse is an exam transaction with its date rendered as a plain
// YYYY-MM-DD string.
type BookingResponse struct {
	*models.ExamTransaction
	TransactionDate string `json:"transaction_date"`
}

func newBookingResponse(booking *models.ExamTransaction) *BookingResponse {
	return &BookingResponse{
		ExamTransaction: booking,
		TransactionDate: time.Time(booking.TransactionDate).Format("2006-01-02"),
	}
}

// ===== SERVICE INTERFACES =====

// AuthService manages the single operator session and local credentials.
type AuthService interface {
	Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error)
	ChangePassword(ctx context.Context, req *ChangePasswordRequest) error
	EditRole(ctx context.Context, bnNumber string, req *EditRoleRequest) error
	// GetPasswordByNIM relays the remote credential lookup used during
	// first-time account provisioning.
	GetPasswordByNIM(ctx context.Context, nim string) (string, error)
	CurrentUser() (models.User, bool)
}

// SyncService reconciles the local cache against the remote catalog.
type SyncService interface {
	SyncUsers(ctx context.Context) (*SyncResult, error)
	SyncRooms(ctx context.Context) (*SyncResult, error)
	SyncSubjects(ctx context.Context) (*SyncResult, error)
	SyncEnrollments(ctx context.Context) (*SyncResult, error)
	// SyncAll runs users, rooms, subjects, enrollments in dependency order
	// and stops at the first failing table. Results for completed tables are
	// returned alongside the error.
	SyncAll(ctx context.Context) ([]*SyncResult, error)
}

// BookingService creates and inspects exam room bookings.
type BookingService interface {
	Create(ctx context.Context, req *CreateBookingRequest) (*BookingResponse, error)
	List(ctx context.Context) ([]*BookingResponse, error)
	// RoomTransactions returns the occupied (room, shift) pairs for a date,
	// optionally restricted to one room.
	RoomTransactions(ctx context.Context, date string, roomNumber *string) ([]models.RoomTransaction, error)
	AssignProctor(ctx context.Context, transactionID string, req *AssignProctorRequest) (*BookingResponse, error)
}

// CatalogService reads the locally cached catalog tables.
type CatalogService interface {
	Users(ctx context.Context) ([]*models.User, error)
	Rooms(ctx context.Context) ([]*models.Room, error)
	Subjects(ctx context.Context) ([]*models.Subject, error)
	Shifts(ctx context.Context) ([]*models.Shift, error)
	Enrollments(ctx context.Context) ([]*models.Enrollment, error)
}

// ReportService renders exports of the schedule.
type ReportService interface {
	ScheduleWorkbook(ctx context.Context, date string) (*excelize.File, error)
}

// ServiceManager provides access to all services and owns their lifecycle.
type ServiceManager interface {
	Auth() AuthService
	Sync() SyncService
	Booking() BookingService
	Catalog() CatalogService
	Report() ReportService

	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
