package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/SR-Exam/scheduler-service/internal/models"
	"github.com/SR-Exam/scheduler-service/internal/repositories"
)

type reportService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewReportService(repo repositories.Repository, logger *slog.Logger) ReportService {
	return &reportService{repo: repo, logger: logger}
}

var scheduleHeaders = []string{
	"Transaction ID", "Subject Code", "Subject Name", "Room", "Campus",
	"Shift", "Start", "End", "Date", "Seat", "Proctor", "Status",
}

// ScheduleWorkbook renders one day's bookings as a spreadsheet, one row per
// exam transaction with its subject, room and shift resolved.
func (s *reportService) ScheduleWorkbook(ctx context.Context, date string) (*excelize.File, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, validationError(err)
	}

	bookings, err := s.repo.Booking().ListByDate(ctx, date)
	if err != nil {
		return nil, storeError(err)
	}

	f := excelize.NewFile()
	const sheet = "Schedule"
	f.SetSheetName("Sheet1", sheet)

	for col, header := range scheduleHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, header)
	}
	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		last, _ := excelize.CoordinatesToCellName(len(scheduleHeaders), 1)
		f.SetCellStyle(sheet, "A1", last, style)
	}

	for row, booking := range bookings {
		values := scheduleRow(booking, date)
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	f.SetColWidth(sheet, "A", "L", 16)

	s.logger.Info("Schedule report rendered", "date", date, "rows", len(bookings))
	return f, nil
}

func scheduleRow(booking *models.ExamTransaction, date string) []interface{} {
	subjectName := ""
	if booking.Subject != nil {
		subjectName = booking.Subject.SubjectName
	}
	campus := ""
	if booking.Room != nil {
		campus = booking.Room.Campus
	}
	start, end := "", ""
	if booking.Shift != nil {
		start, end = booking.Shift.StartTime, booking.Shift.EndTime
	}

	seat := ""
	if booking.SeatNumber != nil {
		seat = fmt.Sprintf("%d", *booking.SeatNumber)
	}
	proctor := ""
	if booking.Proctor != nil {
		proctor = *booking.Proctor
	}
	status := ""
	if booking.Status != nil {
		status = *booking.Status
	}

	return []interface{}{
		booking.TransactionID, booking.SubjectCode, subjectName,
		booking.RoomNumber, campus, booking.ShiftID, start, end,
		date, seat, proctor, status,
	}
}
