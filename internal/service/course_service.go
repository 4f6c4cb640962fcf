package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/yoga-studio-admin/internal/calendar"
	"github.com/noah-isme/yoga-studio-admin/internal/models"
	"github.com/noah-isme/yoga-studio-admin/internal/validation"
	appErrors "github.com/noah-isme/yoga-studio-admin/pkg/errors"
)

type courseRepository interface {
	Search(ctx context.Context, filter models.CourseSearch) ([]models.Course, error)
	List(ctx context.Context) ([]models.Course, error)
	FindByID(ctx context.Context, id int64) (*models.Course, error)
	Create(ctx context.Context, course *models.Course) (int64, error)
	Update(ctx context.Context, course *models.Course) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

// CourseRequest represents payload for creating or replacing a course.
type CourseRequest struct {
	Name            string  `json:"name" validate:"required"`
	Description     *string `json:"description"`
	TeacherID       int64   `json:"teacher_id" validate:"required,gt=0"`
	DayOfWeek       string  `json:"day_of_week" validate:"required,weekday"`
	Time            string  `json:"time" validate:"required,hhmm"`
	DurationMinutes int     `json:"duration_minutes" validate:"required,gt=0"`
	MaxCapacity     int     `json:"max_capacity" validate:"required,gt=0"`
	Price           float64 `json:"price" validate:"gte=0"`
	Difficulty      *string `json:"difficulty" validate:"omitempty,oneof=Beginner Intermediate Advanced 'All Levels'"`
	Type            *string `json:"type" validate:"omitempty,oneof='Flow Yoga' 'Aerial Yoga' 'Family Yoga'"`
}

// CourseSearchRequest carries the optional search filters. Date may be in
// storage or display layout.
type CourseSearchRequest struct {
	TeacherName string `form:"teacher_name"`
	DayOfWeek   string `form:"day_of_week"`
	Date        string `form:"date"`
}

// CourseService orchestrates course operations.
type CourseService struct {
	repo      courseRepository
	teachers  teacherRepository
	validator *validator.Validate
	logger    *zap.Logger
	metrics   *MetricsService
}

// NewCourseService constructs a CourseService.
func NewCourseService(repo courseRepository, teachers teacherRepository, validate *validator.Validate, logger *zap.Logger) *CourseService {
	if validate == nil {
		validate = validation.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{repo: repo, teachers: teachers, validator: validate, logger: logger}
}

// WithMetrics records search query timings on m.
func (s *CourseService) WithMetrics(m *MetricsService) *CourseService {
	s.metrics = m
	return s
}

// List returns every course with its teacher name.
func (s *CourseService) List(ctx context.Context) ([]models.Course, error) {
	courses, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list courses")
	}
	return courses, nil
}

// Search filters courses by teacher name, weekday and instance date. Filters
// are bound as given, so one that matches nothing yields an empty list. A
// date in either accepted layout is normalised to the storage layout first.
func (s *CourseService) Search(ctx context.Context, req CourseSearchRequest) ([]models.Course, error) {
	filter := models.CourseSearch{
		TeacherName: strings.TrimSpace(req.TeacherName),
		DayOfWeek:   strings.TrimSpace(req.DayOfWeek),
		Date:        strings.TrimSpace(req.Date),
	}
	if filter.Date != "" {
		if parsed, err := calendar.ParseAny(filter.Date); err == nil {
			filter.Date = calendar.FormatStorage(parsed)
		}
	}

	start := time.Now()
	courses, err := s.repo.Search(ctx, filter)
	s.metrics.ObserveDBQuery("course_search", time.Since(start))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to search courses")
	}
	return courses, nil
}

// Get returns a course by id.
func (s *CourseService) Get(ctx context.Context, id int64) (*models.Course, error) {
	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}
	return course, nil
}

// Create stores a new course.
func (s *CourseService) Create(ctx context.Context, req CourseRequest) (*models.Course, error) {
	course, err := s.prepare(ctx, req)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.Create(ctx, course); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create course")
	}
	s.logger.Info("course created", zap.Int64("course_id", course.ID), zap.String("day_of_week", course.DayOfWeek))
	return s.Get(ctx, course.ID)
}

// Update replaces every editable field of a course.
func (s *CourseService) Update(ctx context.Context, id int64, req CourseRequest) (*models.Course, error) {
	course, err := s.prepare(ctx, req)
	if err != nil {
		return nil, err
	}
	course.ID = id

	affected, err := s.repo.Update(ctx, course)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update course")
	}
	if affected == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
	}
	return s.Get(ctx, id)
}

// Delete removes a course and all of its class instances.
func (s *CourseService) Delete(ctx context.Context, id int64) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete course")
	}
	if affected == 0 {
		return appErrors.Clone(appErrors.ErrNotFound, "course not found")
	}
	s.logger.Info("course deleted", zap.Int64("course_id", id))
	return nil
}

func (s *CourseService) prepare(ctx context.Context, req CourseRequest) (*models.Course, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.DayOfWeek = strings.TrimSpace(req.DayOfWeek)
	req.Time = strings.TrimSpace(req.Time)
	req.Description = normalizeOptional(req.Description)
	req.Difficulty = normalizeOptional(req.Difficulty)
	req.Type = normalizeOptional(req.Type)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, validation.Describe("invalid course payload", err))
	}
	if err := ensureTeacher(ctx, s.teachers, req.TeacherID); err != nil {
		return nil, err
	}

	return &models.Course{
		Name:            req.Name,
		Description:     req.Description,
		TeacherID:       req.TeacherID,
		DayOfWeek:       req.DayOfWeek,
		Time:            req.Time,
		DurationMinutes: req.DurationMinutes,
		MaxCapacity:     req.MaxCapacity,
		Price:           req.Price,
		Difficulty:      req.Difficulty,
		Type:            req.Type,
	}, nil
}
