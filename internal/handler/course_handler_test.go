package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/yoga-studio-admin/internal/models"
	"github.com/noah-isme/yoga-studio-admin/internal/service"
	appErrors "github.com/noah-isme/yoga-studio-admin/pkg/errors"
)

type courseServiceMock struct {
	search    service.CourseSearchRequest
	updatedID int64
	deleted   int64
	err       error
}

func (m *courseServiceMock) List(ctx context.Context) ([]models.Course, error) {
	return []models.Course{{ID: 1, Name: "Morning Flow"}}, m.err
}

func (m *courseServiceMock) Search(ctx context.Context, req service.CourseSearchRequest) ([]models.Course, error) {
	m.search = req
	return []models.Course{}, m.err
}

func (m *courseServiceMock) Get(ctx context.Context, id int64) (*models.Course, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &models.Course{ID: id, Name: "Morning Flow"}, nil
}

func (m *courseServiceMock) Create(ctx context.Context, req service.CourseRequest) (*models.Course, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &models.Course{ID: 3, Name: req.Name, DayOfWeek: req.DayOfWeek}, nil
}

func (m *courseServiceMock) Update(ctx context.Context, id int64, req service.CourseRequest) (*models.Course, error) {
	m.updatedID = id
	if m.err != nil {
		return nil, m.err
	}
	return &models.Course{ID: id, Name: req.Name}, nil
}

func (m *courseServiceMock) Delete(ctx context.Context, id int64) error {
	m.deleted = id
	return m.err
}

func TestCourseHandlerSearchBindsQuery(t *testing.T) {
	mock := &courseServiceMock{}
	h := NewCourseHandler(mock)
	c, w := newTestContext(http.MethodGet, "/courses/search?teacher_name=ann&day_of_week=Monday&date=06/01/2025", nil)

	h.Search(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, service.CourseSearchRequest{TeacherName: "ann", DayOfWeek: "Monday", Date: "06/01/2025"}, mock.search)
}

func TestCourseHandlerSearchPropagatesValidation(t *testing.T) {
	h := NewCourseHandler(&courseServiceMock{err: appErrors.Clone(appErrors.ErrValidation, "day_of_week is not a weekday")})
	c, w := newTestContext(http.MethodGet, "/courses/search?day_of_week=Funday", nil)

	h.Search(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCourseHandlerCreate(t *testing.T) {
	h := NewCourseHandler(&courseServiceMock{})
	c, w := newTestContext(http.MethodPost, "/courses", map[string]interface{}{
		"name": "Morning Flow", "teacher_id": 1, "day_of_week": "Monday", "time": "09:00",
		"duration_minutes": 60, "max_capacity": 12, "price": 15,
	})

	h.Create(c)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"day_of_week":"Monday"`)
}

func TestCourseHandlerUpdateUsesPathID(t *testing.T) {
	mock := &courseServiceMock{}
	h := NewCourseHandler(mock)
	c, w := newTestContext(http.MethodPut, "/courses/4", map[string]interface{}{"name": "Evening Flow"})
	c.Params = gin.Params{{Key: "id", Value: "4"}}

	h.Update(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(4), mock.updatedID)
}

func TestCourseHandlerDelete(t *testing.T) {
	mock := &courseServiceMock{}
	h := NewCourseHandler(mock)
	c, w := newTestContext(http.MethodDelete, "/courses/5", nil)
	c.Params = gin.Params{{Key: "id", Value: "5"}}

	h.Delete(c)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, int64(5), mock.deleted)
}

func TestCourseHandlerDeleteNotFound(t *testing.T) {
	h := NewCourseHandler(&courseServiceMock{err: appErrors.Clone(appErrors.ErrNotFound, "course not found")})
	c, w := newTestContext(http.MethodDelete, "/courses/5", nil)
	c.Params = gin.Params{{Key: "id", Value: "5"}}

	h.Delete(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCourseHandlerGetRejectsNegativeID(t *testing.T) {
	h := NewCourseHandler(&courseServiceMock{})
	c, w := newTestContext(http.MethodGet, "/courses/-1", nil)
	c.Params = gin.Params{{Key: "id", Value: "-1"}}

	h.Get(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
