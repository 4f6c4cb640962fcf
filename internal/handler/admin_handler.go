package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/yoga-studio-admin/pkg/errors"
	"github.com/noah-isme/yoga-studio-admin/pkg/response"
)

type adminService interface {
	Reset(ctx context.Context) error
	Ping(ctx context.Context) error
	SchemaVersion(ctx context.Context) (int, error)
}

// AdminHandler exposes database maintenance and health endpoints.
type AdminHandler struct {
	service adminService
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(svc adminService) *AdminHandler {
	return &AdminHandler{service: svc}
}

// Reset godoc
// @Summary Drop and recreate every studio table
// @Tags Admin
// @Success 204
// @Router /admin/reset [post]
func (h *AdminHandler) Reset(c *gin.Context) {
	if err := h.service.Reset(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Health godoc
// @Summary Liveness check
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *AdminHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready godoc
// @Summary Readiness check
// @Tags Health
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 503 {object} response.Envelope
// @Router /ready [get]
func (h *AdminHandler) Ready(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.service.Ping(ctx); err != nil {
		response.Error(c, appErrors.Wrap(err, "DATABASE_UNAVAILABLE", http.StatusServiceUnavailable, "database unavailable"))
		return
	}
	version, err := h.service.SchemaVersion(ctx)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"status": "ready", "schema_version": version})
}
