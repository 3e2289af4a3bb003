package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SR-Exam/scheduler-service/internal/services"
	"github.com/SR-Exam/scheduler-service/internal/utils"
)

// BaseHandler carries the pieces every handler needs.
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

// ErrorResponse is the JSON shape of every error reply.
type ErrorResponse struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func (h *BaseHandler) LogRequest(c *gin.Context, msg string, args ...interface{}) {
	utils.LoggerFromContext(c, h.logger).Info(msg, args...)
}

func (h *BaseHandler) LogError(c *gin.Context, err error, msg string, args ...interface{}) {
	args = append(args, "error", err)
	utils.LoggerFromContext(c, h.logger).Error(msg, args...)
}

// RespondWithError maps a service error kind onto an HTTP status. message is
// what the client sees; the cause goes into details.
func (h *BaseHandler) RespondWithError(c *gin.Context, err error, message string) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, services.ErrValidationFailed):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrNotAuthenticated):
		status = http.StatusUnauthorized
	case errors.Is(err, services.ErrUserNotFound), errors.Is(err, services.ErrBookingNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrConstraintViolation):
		status = http.StatusConflict
	case errors.Is(err, services.ErrSourceUnavailable):
		status = http.StatusBadGateway
	case errors.Is(err, services.ErrStoreUnavailable):
		status = http.StatusServiceUnavailable
	}

	if status >= http.StatusInternalServerError {
		h.LogError(c, err, message)
	}

	c.JSON(status, ErrorResponse{Message: message, Details: err.Error()})
}
