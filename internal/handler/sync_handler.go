package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/yoga-studio-admin/internal/models"
	"github.com/noah-isme/yoga-studio-admin/pkg/response"
)

type syncService interface {
	Enqueue(ctx context.Context) (*models.SyncReport, error)
	Report(id string) (*models.SyncReport, error)
	Reset(ctx context.Context) error
}

// SyncHandler exposes the mirror sync endpoints.
type SyncHandler struct {
	service syncService
}

// NewSyncHandler constructs a SyncHandler.
func NewSyncHandler(svc syncService) *SyncHandler {
	return &SyncHandler{service: svc}
}

// Start godoc
// @Summary Queue a mirror sync
// @Tags Sync
// @Produce json
// @Success 202 {object} response.Envelope
// @Failure 503 {object} response.Envelope
// @Router /sync [post]
func (h *SyncHandler) Start(c *gin.Context) {
	report, err := h.service.Enqueue(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Location", c.FullPath()+"/"+report.ID)
	response.Accepted(c, report)
}

// Status godoc
// @Summary Get a mirror sync report
// @Tags Sync
// @Produce json
// @Param id path string true "Sync ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /sync/{id} [get]
func (h *SyncHandler) Status(c *gin.Context) {
	report, err := h.service.Report(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report)
}

// Reset godoc
// @Summary Clear the mirror
// @Tags Sync
// @Success 204
// @Failure 503 {object} response.Envelope
// @Router /sync [delete]
func (h *SyncHandler) Reset(c *gin.Context) {
	if err := h.service.Reset(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
