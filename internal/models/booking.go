package models

import (
	"gorm.io/datatypes"
)

// Booking statuses. The engine only ever writes StatusScheduled on creation;
// later states come from proctor assignment.
const (
	StatusScheduled = "scheduled"
	StatusOngoing   = "ongoing"
	StatusDone      = "done"
)

// ExamTransaction records that a subject's exam occupies a room and shift on
// a date. Created exactly once per booking request; subject, room and shift
// must already exist in the local catalog.
type ExamTransaction struct {
	TransactionID   string         `json:"transaction_id" gorm:"column:transaction_id;primaryKey;size:16"`
	SubjectCode     string         `json:"subject_code" gorm:"column:subject_code;not null;size:50"`
	RoomNumber      string         `json:"room_number" gorm:"column:room_number;not null;size:255"`
	ShiftID         string         `json:"shift_id" gorm:"column:shift_id;not null;size:1"`
	TransactionDate datatypes.Date `json:"-" gorm:"column:transaction_date;not null"`
	TransactionTime *string        `json:"transaction_time,omitempty" gorm:"column:transaction_time;size:8"`
	SeatNumber      *int           `json:"seat_number,omitempty" gorm:"column:seat_number"`
	Proctor         *string        `json:"proctor,omitempty" gorm:"column:proctor;size:255"`
	Status          *string        `json:"status,omitempty" gorm:"column:status;size:32"`

	Subject *Subject `json:"subject,omitempty" gorm:"foreignKey:SubjectCode;references:SubjectCode"`
	Room    *Room    `json:"room,omitempty" gorm:"foreignKey:RoomNumber;references:RoomNumber"`
	Shift   *Shift   `json:"shift,omitempty" gorm:"foreignKey:ShiftID;references:ShiftID"`
}

func (ExamTransaction) TableName() string {
	return "exam_transaction"
}

// RoomTransaction is the occupancy projection used by the conflict display:
// which (room, shift) pairs are taken on a given date.
type RoomTransaction struct {
	RoomNumber string `json:"room_number"`
	ShiftID    string `json:"shift_id"`
}
