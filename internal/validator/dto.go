package validator

// LoginRequest carries the credentials for a sign-in attempt. Identifier is a
// student number or an assistant initial; password may be empty because
// first-time accounts have no local password yet.
type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required,max=50"`
	Password   string `json:"password"`
}

// ChangePasswordRequest updates the signed-in user's local password.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password" validate:"required,min=1,max=72"`
}

// EditRoleRequest reassigns a user's role.
type EditRoleRequest struct {
	Role string `json:"role" validate:"required,user_role"`
}

// CreateBookingRequest books a room and shift for a subject's exam.
type CreateBookingRequest struct {
	SubjectCode     string  `json:"subject_code" validate:"required,max=16"`
	RoomNumber      string  `json:"room_number" validate:"required,max=8"`
	ShiftID         string  `json:"shift_id" validate:"required,len=1"`
	TransactionDate string  `json:"transaction_date" validate:"required,datetime=2006-01-02"`
	TransactionTime *string `json:"transaction_time" validate:"omitempty,max=16"`
	SeatNumber      *int    `json:"seat_number" validate:"omitempty,min=1"`
}

// AssignProctorRequest sets the proctor and optionally the status of a booking.
type AssignProctorRequest struct {
	Proctor string  `json:"proctor" validate:"required,max=50"`
	Status  *string `json:"status" validate:"omitempty,booking_status"`
}
