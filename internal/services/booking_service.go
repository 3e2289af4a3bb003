package services

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"gorm.io/datatypes"

	"github.com/SR-Exam/scheduler-service/internal/events"
	"github.com/SR-Exam/scheduler-service/internal/models"
	"github.com/SR-Exam/scheduler-service/internal/repositories"
	"github.com/SR-Exam/scheduler-service/internal/validator"
)

type bookingService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	validator *validator.BusinessValidator
	logger    *slog.Logger
}

func NewBookingService(repo repositories.Repository, publisher events.EventPublisher, bv *validator.BusinessValidator, logger *slog.Logger) BookingService {
	return &bookingService{
		repo:      repo,
		publisher: publisher,
		validator: bv,
		logger:    logger,
	}
}

// newTransactionID draws a random id in the TI0000-TI9999 space. Collisions
// are not retried; the insert fails with a constraint violation and the
// caller submits again.
func newTransactionID() string {
	return fmt.Sprintf("TI%04d", rand.Intn(10000))
}

// Create books a room and shift for one subject on one date. Exactly one row
// is inserted per request; a store rejection surfaces as a constraint
// violation and nothing is written.
func (s *bookingService) Create(ctx context.Context, req *CreateBookingRequest) (*BookingResponse, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, validationError(errs)
	}

	date, err := time.Parse("2006-01-02", req.TransactionDate)
	if err != nil {
		return nil, validationError(err)
	}

	status := models.StatusScheduled
	booking := &models.ExamTransaction{
		TransactionID:   newTransactionID(),
		SubjectCode:     req.SubjectCode,
		RoomNumber:      req.RoomNumber,
		ShiftID:         req.ShiftID,
		TransactionDate: datatypes.Date(date),
		TransactionTime: req.TransactionTime,
		SeatNumber:      req.SeatNumber,
		Status:          &status,
	}

	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		return tx.Booking().Create(ctx, booking)
	})
	if err != nil {
		s.logger.Warn("Booking rejected by store",
			"transaction_id", booking.TransactionID, "error", err)
		return nil, storeError(err)
	}

	s.logger.Info("Booking created",
		"transaction_id", booking.TransactionID,
		"subject_code", booking.SubjectCode,
		"room_number", booking.RoomNumber,
		"shift_id", booking.ShiftID,
		"date", req.TransactionDate)

	s.publish(ctx, events.EventBookingCreated, map[string]interface{}{
		"transaction_id": booking.TransactionID,
		"subject_code":   booking.SubjectCode,
		"room_number":    booking.RoomNumber,
		"shift_id":       booking.ShiftID,
		"date":           req.TransactionDate,
	})

	return newBookingResponse(booking), nil
}

func (s *bookingService) List(ctx context.Context) ([]*BookingResponse, error) {
	bookings, err := s.repo.Booking().List(ctx)
	if err != nil {
		return nil, storeError(err)
	}

	responses := make([]*BookingResponse, 0, len(bookings))
	for _, booking := range bookings {
		responses = append(responses, newBookingResponse(booking))
	}
	return responses, nil
}

// RoomTransactions reports the occupied (room, shift) pairs for a date so the
// client can grey out taken slots. It never prevents a booking.
func (s *bookingService) RoomTransactions(ctx context.Context, date string, roomNumber *string) ([]models.RoomTransaction, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, validationError(err)
	}

	occupancy, err := s.repo.Booking().ListOccupancy(ctx, date, roomNumber)
	if err != nil {
		return nil, storeError(err)
	}
	return occupancy, nil
}

// AssignProctor sets the proctor and optionally advances the status of an
// existing booking.
func (s *bookingService) AssignProctor(ctx context.Context, transactionID string, req *AssignProctorRequest) (*BookingResponse, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, validationError(errs)
	}

	booking, err := s.repo.Booking().GetByID(ctx, transactionID)
	if err != nil {
		return nil, storeError(err)
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}

	booking.Proctor = &req.Proctor
	if req.Status != nil {
		booking.Status = req.Status
	}

	if err := s.repo.Booking().Update(ctx, booking); err != nil {
		return nil, storeError(err)
	}

	s.logger.Info("Proctor assigned",
		"transaction_id", transactionID, "proctor", req.Proctor)

	s.publish(ctx, events.EventProctorAssigned, map[string]interface{}{
		"transaction_id": transactionID,
		"proctor":        req.Proctor,
	})

	return newBookingResponse(booking), nil
}

// publish sends an event without letting broker trouble affect the booking
// path.
func (s *bookingService) publish(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, events.NewEvent(eventType, data)); err != nil {
		s.logger.Warn("Failed to publish event", "event_type", eventType, "error", err)
	}
}
