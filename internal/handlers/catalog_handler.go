package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SR-Exam/scheduler-service/internal/services"
	"github.com/SR-Exam/scheduler-service/internal/utils"
)

// CatalogHandler serves the locally cached catalog tables.
type CatalogHandler struct {
	BaseHandler
	service services.CatalogService
}

func NewCatalogHandler(service services.CatalogService, logger utils.Logger) *CatalogHandler {
	return &CatalogHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

func (h *CatalogHandler) ListUsers(c *gin.Context) {
	users, err := h.service.Users(c.Request.Context())
	if err != nil {
		h.RespondWithError(c, err, "Failed to list users")
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *CatalogHandler) ListRooms(c *gin.Context) {
	rooms, err := h.service.Rooms(c.Request.Context())
	if err != nil {
		h.RespondWithError(c, err, "Failed to list rooms")
		return
	}
	c.JSON(http.StatusOK, rooms)
}

func (h *CatalogHandler) ListSubjects(c *gin.Context) {
	subjects, err := h.service.Subjects(c.Request.Context())
	if err != nil {
		h.RespondWithError(c, err, "Failed to list subjects")
		return
	}
	c.JSON(http.StatusOK, subjects)
}

func (h *CatalogHandler) ListShifts(c *gin.Context) {
	shifts, err := h.service.Shifts(c.Request.Context())
	if err != nil {
		h.RespondWithError(c, err, "Failed to list shifts")
		return
	}
	c.JSON(http.StatusOK, shifts)
}

func (h *CatalogHandler) ListEnrollments(c *gin.Context) {
	enrollments, err := h.service.Enrollments(c.Request.Context())
	if err != nil {
		h.RespondWithError(c, err, "Failed to list enrollments")
		return
	}
	c.JSON(http.StatusOK, enrollments)
}
