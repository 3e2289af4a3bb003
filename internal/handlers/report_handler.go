package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SR-Exam/scheduler-service/internal/services"
	"github.com/SR-Exam/scheduler-service/internal/utils"
)

type ReportHandler struct {
	BaseHandler
	service services.ReportService
}

func NewReportHandler(service services.ReportService, logger utils.Logger) *ReportHandler {
	return &ReportHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ScheduleReport streams one day's schedule as an xlsx download
// @Summary Schedule report
// @Tags reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {file} binary
// @Failure 400 {object} ErrorResponse "Missing or malformed date"
// @Router /reports/schedule [get]
func (h *ReportHandler) ScheduleReport(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Query parameter 'date' is required"})
		return
	}

	h.LogRequest(c, "Schedule report requested", "date", date)

	workbook, err := h.service.ScheduleWorkbook(c.Request.Context(), date)
	if err != nil {
		h.RespondWithError(c, err, "Report generation failed")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="schedule-%s.xlsx"`, date))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := workbook.Write(c.Writer); err != nil {
		h.LogError(c, err, "Failed to stream report")
	}
}
