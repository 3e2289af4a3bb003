package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SR-Exam/scheduler-service/internal/models"
	"github.com/SR-Exam/scheduler-service/internal/services"
	"github.com/SR-Exam/scheduler-service/internal/utils"
)

type BookingHandler struct {
	BaseHandler
	service services.BookingService
}

func NewBookingHandler(service services.BookingService, logger utils.Logger) *BookingHandler {
	return &BookingHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// CreateBooking books a room and shift for an exam
// @Summary Create booking
// @Tags bookings
// @Accept json
// @Produce json
// @Param request body services.CreateBookingRequest true "Booking"
// @Success 201 {object} services.BookingResponse
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 409 {object} ErrorResponse "Duplicate id or unknown reference"
// @Router /bookings [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req services.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body", Details: err.Error()})
		return
	}

	h.LogRequest(c, "Creating booking",
		"subject_code", req.SubjectCode, "room_number", req.RoomNumber,
		"shift_id", req.ShiftID, "date", req.TransactionDate)

	resp, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		h.RespondWithError(c, err, "Booking failed")
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *BookingHandler) ListBookings(c *gin.Context) {
	bookings, err := h.service.List(c.Request.Context())
	if err != nil {
		h.RespondWithError(c, err, "Failed to list bookings")
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// GetOccupancy reports the occupied room and shift pairs for a date
// @Summary Room occupancy
// @Tags bookings
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param room query string false "Restrict to one room"
// @Success 200 {array} models.RoomTransaction
// @Failure 400 {object} ErrorResponse "Missing or malformed date"
// @Router /bookings/occupancy [get]
func (h *BookingHandler) GetOccupancy(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Query parameter 'date' is required"})
		return
	}

	var room *string
	if value := c.Query("room"); value != "" {
		room = &value
	}

	occupancy, err := h.service.RoomTransactions(c.Request.Context(), date, room)
	if err != nil {
		h.RespondWithError(c, err, "Occupancy query failed")
		return
	}

	// The client expects a list even when nothing is booked.
	if occupancy == nil {
		occupancy = []models.RoomTransaction{}
	}
	c.JSON(http.StatusOK, occupancy)
}

// AssignProctor sets the proctor and optionally the status of a booking.
func (h *BookingHandler) AssignProctor(c *gin.Context) {
	transactionID := c.Param("id")

	var req services.AssignProctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body", Details: err.Error()})
		return
	}

	h.LogRequest(c, "Assigning proctor", "transaction_id", transactionID, "proctor", req.Proctor)

	resp, err := h.service.AssignProctor(c.Request.Context(), transactionID, &req)
	if err != nil {
		h.RespondWithError(c, err, "Proctor assignment failed")
		return
	}

	c.JSON(http.StatusOK, resp)
}
