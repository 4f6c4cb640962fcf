package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/yoga-studio-admin/internal/models"
	"github.com/noah-isme/yoga-studio-admin/internal/service"
	appErrors "github.com/noah-isme/yoga-studio-admin/pkg/errors"
	"github.com/noah-isme/yoga-studio-admin/pkg/response"
)

type instanceService interface {
	ListByCourse(ctx context.Context, courseID int64) ([]models.ClassInstance, error)
	ListByDate(ctx context.Context, date string) ([]models.ClassInstance, error)
	Get(ctx context.Context, id int64) (*models.ClassInstance, error)
	Create(ctx context.Context, courseID int64, req service.InstanceRequest) (*models.ClassInstance, error)
	Update(ctx context.Context, id int64, req service.InstanceRequest) (*models.ClassInstance, error)
	Delete(ctx context.Context, id int64) error
}

// InstanceHandler exposes class instance endpoints.
type InstanceHandler struct {
	service instanceService
}

// NewInstanceHandler constructs an InstanceHandler.
func NewInstanceHandler(svc instanceService) *InstanceHandler {
	return &InstanceHandler{service: svc}
}

// ListByCourse godoc
// @Summary List class instances of a course
// @Tags Instances
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /courses/{id}/instances [get]
func (h *InstanceHandler) ListByCourse(c *gin.Context) {
	courseID, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	instances, err := h.service.ListByCourse(c.Request.Context(), courseID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, instances, len(instances))
}

// ListByDate godoc
// @Summary List class instances on a date
// @Tags Instances
// @Produce json
// @Param date query string true "yyyy-MM-dd or dd/MM/yyyy"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /instances [get]
func (h *InstanceHandler) ListByDate(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "date is required"))
		return
	}
	instances, err := h.service.ListByDate(c.Request.Context(), date)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, instances, len(instances))
}

// Get godoc
// @Summary Get class instance
// @Tags Instances
// @Produce json
// @Param id path int true "Instance ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /instances/{id} [get]
func (h *InstanceHandler) Get(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	instance, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, instance)
}

// Create godoc
// @Summary Schedule a class instance
// @Description The date must fall on the course weekday.
// @Tags Instances
// @Accept json
// @Produce json
// @Param id path int true "Course ID"
// @Param payload body service.InstanceRequest true "Instance payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /courses/{id}/instances [post]
func (h *InstanceHandler) Create(c *gin.Context) {
	courseID, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.InstanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "invalid class instance payload"))
		return
	}
	instance, err := h.service.Create(c.Request.Context(), courseID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, instance)
}

// Update godoc
// @Summary Move a class instance
// @Tags Instances
// @Accept json
// @Produce json
// @Param id path int true "Instance ID"
// @Param payload body service.InstanceRequest true "Instance payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /instances/{id} [put]
func (h *InstanceHandler) Update(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.InstanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "invalid class instance payload"))
		return
	}
	instance, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, instance)
}

// Delete godoc
// @Summary Delete class instance
// @Tags Instances
// @Param id path int true "Instance ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /instances/{id} [delete]
func (h *InstanceHandler) Delete(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
