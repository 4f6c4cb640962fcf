package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/yoga-studio-admin/internal/service"
	"github.com/noah-isme/yoga-studio-admin/pkg/response"
)

type exportService interface {
	Timetable(ctx context.Context, req service.CourseSearchRequest, format string) (*service.ExportFile, error)
}

// ExportHandler streams rendered timetables.
type ExportHandler struct {
	service exportService
}

// NewExportHandler constructs an ExportHandler.
func NewExportHandler(svc exportService) *ExportHandler {
	return &ExportHandler{service: svc}
}

// Timetable godoc
// @Summary Download the course timetable
// @Tags Exports
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv or pdf" default(csv)
// @Param teacher_name query string false "Teacher name fragment"
// @Param day_of_week query string false "Weekday name"
// @Param date query string false "Instance date"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /exports/timetable [get]
func (h *ExportHandler) Timetable(c *gin.Context) {
	var req service.CourseSearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, bindError(err, "invalid export query"))
		return
	}
	file, err := h.service.Timetable(c.Request.Context(), req, c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.File(c, file.Filename, file.ContentType, file.Data)
}
