package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SR-Exam/scheduler-service/internal/services"
	"github.com/SR-Exam/scheduler-service/internal/utils"
)

type SyncHandler struct {
	BaseHandler
	service services.SyncService
}

func NewSyncHandler(service services.SyncService, logger utils.Logger) *SyncHandler {
	return &SyncHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// SyncAll refreshes every catalog table
// @Summary Sync all catalog tables
// @Description Reconcile users, rooms, subjects and enrollments in dependency order
// @Tags sync
// @Produce json
// @Success 200 {array} services.SyncResult
// @Failure 502 {object} ErrorResponse "Remote catalog unavailable"
// @Failure 503 {object} ErrorResponse "Local store unavailable"
// @Router /sync [post]
func (h *SyncHandler) SyncAll(c *gin.Context) {
	h.LogRequest(c, "Full catalog sync requested")

	results, err := h.service.SyncAll(c.Request.Context())
	if err != nil {
		h.RespondWithError(c, err, "Catalog sync failed")
		return
	}

	c.JSON(http.StatusOK, results)
}

func (h *SyncHandler) SyncUsers(c *gin.Context) {
	h.runStep(c, h.service.SyncUsers, "User sync failed")
}

func (h *SyncHandler) SyncRooms(c *gin.Context) {
	h.runStep(c, h.service.SyncRooms, "Room sync failed")
}

func (h *SyncHandler) SyncSubjects(c *gin.Context) {
	h.runStep(c, h.service.SyncSubjects, "Subject sync failed")
}

func (h *SyncHandler) SyncEnrollments(c *gin.Context) {
	h.runStep(c, h.service.SyncEnrollments, "Enrollment sync failed")
}

func (h *SyncHandler) runStep(c *gin.Context, step func(context.Context) (*services.SyncResult, error), message string) {
	result, err := step(c.Request.Context())
	if err != nil {
		h.RespondWithError(c, err, message)
		return
	}
	c.JSON(http.StatusOK, result)
}
