package services

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"gorm.io/gorm"

	"github.com/SR-Exam/scheduler-service/internal/events"
	"github.com/SR-Exam/scheduler-service/internal/models"
	"github.com/SR-Exam/scheduler-service/internal/validator"
)

func newBookingFixture(t *testing.T) (*fakeRepository, *events.MockEventPublisher, BookingService) {
	t.Helper()
	repo := newFakeRepository()
	repo.subjects["COMP6100"] = &models.Subject{SubjectCode: "COMP6100", SubjectName: "Software Engineering"}
	repo.rooms["724"] = &models.Room{RoomNumber: "724", RoomCapacity: 40, Campus: "Anggrek"}
	repo.shifts["2"] = &models.Shift{ShiftID: "2", StartTime: "09:20", EndTime: "11:00"}

	publisher := events.NewMockEventPublisher(testLogger())
	svc := NewBookingService(repo, publisher, validator.NewBusinessValidator(), testLogger())
	return repo, publisher, svc
}

func validBookingRequest() *CreateBookingRequest {
	return &CreateBookingRequest{
		SubjectCode:     "COMP6100",
		RoomNumber:      "724",
		ShiftID:         "2",
		TransactionDate: "2026-09-15",
	}
}

var transactionIDPattern = regexp.MustCompile(`^TI\d{4}$`)

func TestCreateBooking(t *testing.T) {
	repo, publisher, svc := newBookingFixture(t)

	resp, err := svc.Create(context.Background(), validBookingRequest())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if !transactionIDPattern.MatchString(resp.ExamTransaction.TransactionID) {
		t.Errorf("unexpected transaction id %q", resp.ExamTransaction.TransactionID)
	}
	if resp.TransactionDate != "2026-09-15" {
		t.Errorf("expected date 2026-09-15, got %q", resp.TransactionDate)
	}
	if resp.Status == nil || *resp.Status != models.StatusScheduled {
		t.Errorf("expected scheduled status, got %v", resp.Status)
	}
	if repo.bookingCreateCalls != 1 {
		t.Errorf("expected exactly one insert, got %d", repo.bookingCreateCalls)
	}

	published := publisher.GetPublishedEvents()
	if len(published) != 1 || published[0].Type != events.EventBookingCreated {
		t.Errorf("expected booking created event, got %+v", published)
	}
}

func TestCreateBookingSingleAttemptOnConstraintViolation(t *testing.T) {
	repo, publisher, svc := newBookingFixture(t)
	repo.bookingCreateErr = gorm.ErrDuplicatedKey

	_, err := svc.Create(context.Background(), validBookingRequest())
	if !errors.Is(err, ErrConstraintViolation) {
		t.Fatalf("expected constraint violation, got %v", err)
	}

	// A colliding id is not retried; the caller submits again.
	if repo.bookingCreateCalls != 1 {
		t.Errorf("expected exactly one insert attempt, got %d", repo.bookingCreateCalls)
	}
	if len(repo.bookings) != 0 {
		t.Errorf("expected no stored booking, got %d", len(repo.bookings))
	}
	if len(publisher.GetPublishedEvents()) != 0 {
		t.Error("expected no event on failed create")
	}
}

func TestCreateBookingRejectsUnknownReferences(t *testing.T) {
	_, _, svc := newBookingFixture(t)

	req := validBookingRequest()
	req.RoomNumber = "999"
	if _, err := svc.Create(context.Background(), req); !errors.Is(err, ErrConstraintViolation) {
		t.Errorf("expected constraint violation for unknown room, got %v", err)
	}
}

func TestCreateBookingValidatesRequest(t *testing.T) {
	_, _, svc := newBookingFixture(t)

	req := validBookingRequest()
	req.TransactionDate = "15/09/2026"
	if _, err := svc.Create(context.Background(), req); !errors.Is(err, ErrValidationFailed) {
		t.Errorf("expected validation failure for bad date, got %v", err)
	}

	req = validBookingRequest()
	req.ShiftID = ""
	if _, err := svc.Create(context.Background(), req); !errors.Is(err, ErrValidationFailed) {
		t.Errorf("expected validation failure for missing shift, got %v", err)
	}
}

func TestRoomTransactionsFiltersByDateAndRoom(t *testing.T) {
	_, _, svc := newBookingFixture(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, validBookingRequest()); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	occupied, err := svc.RoomTransactions(ctx, "2026-09-15", nil)
	if err != nil {
		t.Fatalf("occupancy query failed: %v", err)
	}
	if len(occupied) != 1 || occupied[0].RoomNumber != "724" || occupied[0].ShiftID != "2" {
		t.Errorf("unexpected occupancy: %+v", occupied)
	}

	// Other dates and rooms come back empty.
	if occupied, _ := svc.RoomTransactions(ctx, "2026-09-16", nil); len(occupied) != 0 {
		t.Errorf("expected empty occupancy for other date, got %+v", occupied)
	}
	other := "999"
	if occupied, _ := svc.RoomTransactions(ctx, "2026-09-15", &other); len(occupied) != 0 {
		t.Errorf("expected empty occupancy for other room, got %+v", occupied)
	}

	if _, err := svc.RoomTransactions(ctx, "not-a-date", nil); !errors.Is(err, ErrValidationFailed) {
		t.Errorf("expected validation failure for bad date, got %v", err)
	}
}

func TestAssignProctor(t *testing.T) {
	repo, publisher, svc := newBookingFixture(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, validBookingRequest())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	publisher.ClearEvents()

	status := models.StatusOngoing
	resp, err := svc.AssignProctor(ctx, created.ExamTransaction.TransactionID, &AssignProctorRequest{Proctor: "AL24", Status: &status})
	if err != nil {
		t.Fatalf("assign failed: %v", err)
	}
	if resp.Proctor == nil || *resp.Proctor != "AL24" {
		t.Errorf("expected proctor AL24, got %v", resp.Proctor)
	}
	if resp.Status == nil || *resp.Status != models.StatusOngoing {
		t.Errorf("expected ongoing status, got %v", resp.Status)
	}

	stored := repo.bookings[created.ExamTransaction.TransactionID]
	if stored.Proctor == nil || *stored.Proctor != "AL24" {
		t.Errorf("expected stored proctor, got %v", stored.Proctor)
	}

	published := publisher.GetPublishedEvents()
	if len(published) != 1 || published[0].Type != events.EventProctorAssigned {
		t.Errorf("expected proctor assigned event, got %+v", published)
	}

	if _, err := svc.AssignProctor(ctx, "ZZ0000", &AssignProctorRequest{Proctor: "AL24"}); !errors.Is(err, ErrBookingNotFound) {
		t.Errorf("expected booking not found, got %v", err)
	}
}

func TestListBookings(t *testing.T) {
	_, _, svc := newBookingFixture(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, validBookingRequest()); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	bookings, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(bookings) != 1 {
		t.Fatalf("expected 1 booking, got %d", len(bookings))
	}
	if bookings[0].TransactionDate != "2026-09-15" {
		t.Errorf("expected rendered date, got %q", bookings[0].TransactionDate)
	}
}
