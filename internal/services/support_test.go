package services

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/SR-Exam/scheduler-service/internal/models"
	"github.com/SR-Exam/scheduler-service/internal/repositories"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ===== IN-MEMORY REPOSITORY =====

// fakeRepository backs the service tests with plain maps. Enrollment and
// booking writes enforce the same references the real store does.
type fakeRepository struct {
	users       map[string]*models.User
	rooms       map[string]*models.Room
	subjects    map[string]*models.Subject
	shifts      map[string]*models.Shift
	enrollments map[string]*models.Enrollment
	bookings    map[string]*models.ExamTransaction

	bookingCreateCalls int
	bookingCreateErr   error
	userCreateErr      error
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		users:       make(map[string]*models.User),
		rooms:       make(map[string]*models.Room),
		subjects:    make(map[string]*models.Subject),
		shifts:      make(map[string]*models.Shift),
		enrollments: make(map[string]*models.Enrollment),
		bookings:    make(map[string]*models.ExamTransaction),
	}
}

func (f *fakeRepository) User() repositories.UserRepository             { return &fakeUserRepo{f} }
func (f *fakeRepository) Room() repositories.RoomRepository             { return &fakeRoomRepo{f} }
func (f *fakeRepository) Subject() repositories.SubjectRepository       { return &fakeSubjectRepo{f} }
func (f *fakeRepository) Shift() repositories.ShiftRepository           { return &fakeShiftRepo{f} }
func (f *fakeRepository) Enrollment() repositories.EnrollmentRepository { return &fakeEnrollmentRepo{f} }
func (f *fakeRepository) Booking() repositories.BookingRepository       { return &fakeBookingRepo{f} }

func (f *fakeRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(f)
}

func (f *fakeRepository) Ping(ctx context.Context) error { return nil }
func (f *fakeRepository) Close() error                   { return nil }

type fakeUserRepo struct{ r *fakeRepository }

func (u *fakeUserRepo) GetByBNNumber(_ context.Context, bnNumber string) (*models.User, error) {
	if user, ok := u.r.users[bnNumber]; ok {
		clone := *user
		return &clone, nil
	}
	return nil, nil
}

func (u *fakeUserRepo) GetByIdentifier(_ context.Context, identifier string) (*models.User, error) {
	for _, user := range u.r.users {
		if (user.NIM != nil && *user.NIM == identifier) || (user.Initial != nil && *user.Initial == identifier) {
			clone := *user
			return &clone, nil
		}
	}
	return nil, nil
}

func (u *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	if u.r.userCreateErr != nil {
		return u.r.userCreateErr
	}
	if _, ok := u.r.users[user.BNNumber]; ok {
		return gorm.ErrDuplicatedKey
	}
	// nim is unique among present values only; NULLs never collide.
	if user.NIM != nil {
		for _, existing := range u.r.users {
			if existing.NIM != nil && *existing.NIM == *user.NIM {
				return gorm.ErrDuplicatedKey
			}
		}
	}
	clone := *user
	u.r.users[user.BNNumber] = &clone
	return nil
}

func (u *fakeUserRepo) UpdateCatalogFields(_ context.Context, user *models.User) error {
	existing, ok := u.r.users[user.BNNumber]
	if !ok {
		return nil
	}
	existing.Name = user.Name
	existing.Role = user.Role
	existing.Initial = user.Initial
	return nil
}

func (u *fakeUserRepo) UpdatePassword(_ context.Context, bnNumber, hashedPassword string) error {
	if existing, ok := u.r.users[bnNumber]; ok {
		existing.Password = hashedPassword
	}
	return nil
}

func (u *fakeUserRepo) UpdateRole(_ context.Context, bnNumber, role string) error {
	existing, ok := u.r.users[bnNumber]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	existing.Role = role
	return nil
}

func (u *fakeUserRepo) List(_ context.Context) ([]*models.User, error) {
	keys := make([]string, 0, len(u.r.users))
	for key := range u.r.users {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	out := make([]*models.User, 0, len(keys))
	for _, key := range keys {
		clone := *u.r.users[key]
		out = append(out, &clone)
	}
	return out, nil
}

type fakeRoomRepo struct{ r *fakeRepository }

func (r *fakeRoomRepo) GetByNumber(_ context.Context, roomNumber string) (*models.Room, error) {
	if room, ok := r.r.rooms[roomNumber]; ok {
		clone := *room
		return &clone, nil
	}
	return nil, nil
}

func (r *fakeRoomRepo) Create(_ context.Context, room *models.Room) error {
	if _, ok := r.r.rooms[room.RoomNumber]; ok {
		return gorm.ErrDuplicatedKey
	}
	clone := *room
	r.r.rooms[room.RoomNumber] = &clone
	return nil
}

func (r *fakeRoomRepo) List(_ context.Context) ([]*models.Room, error) {
	out := make([]*models.Room, 0, len(r.r.rooms))
	for _, room := range r.r.rooms {
		clone := *room
		out = append(out, &clone)
	}
	return out, nil
}

type fakeSubjectRepo struct{ r *fakeRepository }

func (s *fakeSubjectRepo) GetByCode(_ context.Context, subjectCode string) (*models.Subject, error) {
	if subject, ok := s.r.subjects[subjectCode]; ok {
		clone := *subject
		return &clone, nil
	}
	return nil, nil
}

func (s *fakeSubjectRepo) Create(_ context.Context, subject *models.Subject) error {
	if _, ok := s.r.subjects[subject.SubjectCode]; ok {
		return gorm.ErrDuplicatedKey
	}
	clone := *subject
	s.r.subjects[subject.SubjectCode] = &clone
	return nil
}

func (s *fakeSubjectRepo) List(_ context.Context) ([]*models.Subject, error) {
	out := make([]*models.Subject, 0, len(s.r.subjects))
	for _, subject := range s.r.subjects {
		clone := *subject
		out = append(out, &clone)
	}
	return out, nil
}

type fakeShiftRepo struct{ r *fakeRepository }

func (s *fakeShiftRepo) GetByID(_ context.Context, shiftID string) (*models.Shift, error) {
	if shift, ok := s.r.shifts[shiftID]; ok {
		clone := *shift
		return &clone, nil
	}
	return nil, nil
}

func (s *fakeShiftRepo) List(_ context.Context) ([]*models.Shift, error) {
	out := make([]*models.Shift, 0, len(s.r.shifts))
	for _, shift := range s.r.shifts {
		clone := *shift
		out = append(out, &clone)
	}
	return out, nil
}

type fakeEnrollmentRepo struct{ r *fakeRepository }

func (e *fakeEnrollmentRepo) GetByClassCode(_ context.Context, classCode string) (*models.Enrollment, error) {
	if enrollment, ok := e.r.enrollments[classCode]; ok {
		clone := *enrollment
		return &clone, nil
	}
	return nil, nil
}

func (e *fakeEnrollmentRepo) Create(_ context.Context, enrollment *models.Enrollment) error {
	studentExists := false
	for _, user := range e.r.users {
		if user.NIM != nil && *user.NIM == enrollment.NIM {
			studentExists = true
			break
		}
	}
	if !studentExists {
		return gorm.ErrForeignKeyViolated
	}
	if _, ok := e.r.subjects[enrollment.SubjectCode]; !ok {
		return gorm.ErrForeignKeyViolated
	}
	clone := *enrollment
	e.r.enrollments[enrollment.ClassCode] = &clone
	return nil
}

func (e *fakeEnrollmentRepo) List(_ context.Context) ([]*models.Enrollment, error) {
	out := make([]*models.Enrollment, 0, len(e.r.enrollments))
	for _, enrollment := range e.r.enrollments {
		clone := *enrollment
		out = append(out, &clone)
	}
	return out, nil
}

type fakeBookingRepo struct{ r *fakeRepository }

func (b *fakeBookingRepo) Create(_ context.Context, booking *models.ExamTransaction) error {
	b.r.bookingCreateCalls++
	if b.r.bookingCreateErr != nil {
		return b.r.bookingCreateErr
	}
	if _, ok := b.r.bookings[booking.TransactionID]; ok {
		return gorm.ErrDuplicatedKey
	}
	if _, ok := b.r.subjects[booking.SubjectCode]; !ok {
		return gorm.ErrForeignKeyViolated
	}
	if _, ok := b.r.rooms[booking.RoomNumber]; !ok {
		return gorm.ErrForeignKeyViolated
	}
	if _, ok := b.r.shifts[booking.ShiftID]; !ok {
		return gorm.ErrForeignKeyViolated
	}
	clone := *booking
	b.r.bookings[booking.TransactionID] = &clone
	return nil
}

func (b *fakeBookingRepo) GetByID(_ context.Context, transactionID string) (*models.ExamTransaction, error) {
	if booking, ok := b.r.bookings[transactionID]; ok {
		clone := *booking
		return &clone, nil
	}
	return nil, nil
}

func (b *fakeBookingRepo) List(_ context.Context) ([]*models.ExamTransaction, error) {
	keys := make([]string, 0, len(b.r.bookings))
	for key := range b.r.bookings {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	out := make([]*models.ExamTransaction, 0, len(keys))
	for _, key := range keys {
		clone := *b.r.bookings[key]
		out = append(out, &clone)
	}
	return out, nil
}

func (b *fakeBookingRepo) ListByDate(_ context.Context, date string) ([]*models.ExamTransaction, error) {
	var out []*models.ExamTransaction
	for _, booking := range b.r.bookings {
		if bookingDate(booking) != date {
			continue
		}
		clone := *booking
		if subject, ok := b.r.subjects[booking.SubjectCode]; ok {
			subjectClone := *subject
			clone.Subject = &subjectClone
		}
		if room, ok := b.r.rooms[booking.RoomNumber]; ok {
			roomClone := *room
			clone.Room = &roomClone
		}
		if shift, ok := b.r.shifts[booking.ShiftID]; ok {
			shiftClone := *shift
			clone.Shift = &shiftClone
		}
		out = append(out, &clone)
	}
	return out, nil
}

func (b *fakeBookingRepo) ListOccupancy(_ context.Context, date string, roomNumber *string) ([]models.RoomTransaction, error) {
	var out []models.RoomTransaction
	for _, booking := range b.r.bookings {
		if bookingDate(booking) != date {
			continue
		}
		if roomNumber != nil && booking.RoomNumber != *roomNumber {
			continue
		}
		out = append(out, models.RoomTransaction{
			RoomNumber: booking.RoomNumber,
			ShiftID:    booking.ShiftID,
		})
	}
	return out, nil
}

func bookingDate(booking *models.ExamTransaction) string {
	return time.Time(booking.TransactionDate).Format("2006-01-02")
}

func (b *fakeBookingRepo) Update(_ context.Context, booking *models.ExamTransaction) error {
	clone := *booking
	b.r.bookings[booking.TransactionID] = &clone
	return nil
}

// ===== FAKE REMOTE CATALOG =====

type fakeRemote struct {
	users       []models.CatalogUser
	rooms       []models.CatalogRoom
	subjects    []models.CatalogSubject
	enrollments []models.CatalogEnrollment
	passwords   map[string]string

	usersErr       error
	roomsErr       error
	subjectsErr    error
	enrollmentsErr error
}

func (f *fakeRemote) FetchUsers(_ context.Context) ([]models.CatalogUser, error) {
	if f.usersErr != nil {
		return nil, f.usersErr
	}
	return f.users, nil
}

func (f *fakeRemote) FetchRooms(_ context.Context) ([]models.CatalogRoom, error) {
	if f.roomsErr != nil {
		return nil, f.roomsErr
	}
	return f.rooms, nil
}

func (f *fakeRemote) FetchSubjects(_ context.Context) ([]models.CatalogSubject, error) {
	if f.subjectsErr != nil {
		return nil, f.subjectsErr
	}
	return f.subjects, nil
}

func (f *fakeRemote) FetchEnrollments(_ context.Context) ([]models.CatalogEnrollment, error) {
	if f.enrollmentsErr != nil {
		return nil, f.enrollmentsErr
	}
	return f.enrollments, nil
}

func (f *fakeRemote) GetPasswordByNIM(_ context.Context, nim string) (string, error) {
	if password, ok := f.passwords[nim]; ok {
		return password, nil
	}
	return "", repositories.ErrSourceUnavailable
}
