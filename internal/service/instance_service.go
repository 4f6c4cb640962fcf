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

type instanceRepository interface {
	ListByCourse(ctx context.Context, courseID int64) ([]models.ClassInstance, error)
	ListByDate(ctx context.Context, date string) ([]models.ClassInstance, error)
	FindByID(ctx context.Context, id int64) (*models.ClassInstance, error)
	Create(ctx context.Context, instance *models.ClassInstance) (int64, error)
	Update(ctx context.Context, instance *models.ClassInstance) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

// InstanceRequest represents payload for scheduling or moving a class
// instance. Date may be in storage or display layout.
type InstanceRequest struct {
	Date      string `json:"date" validate:"required"`
	TeacherID int64  `json:"teacher_id" validate:"required,gt=0"`
}

// InstanceService orchestrates class instance operations and enforces the
// course weekday on every write.
type InstanceService struct {
	repo      instanceRepository
	courses   courseRepository
	teachers  teacherRepository
	rule      ScheduleRule
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewInstanceService constructs an InstanceService.
func NewInstanceService(repo instanceRepository, courses courseRepository, teachers teacherRepository, rule ScheduleRule, validate *validator.Validate, logger *zap.Logger) *InstanceService {
	if validate == nil {
		validate = validation.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InstanceService{repo: repo, courses: courses, teachers: teachers, rule: rule, validator: validate, logger: logger, now: time.Now}
}

// ListByCourse returns the instances of a course, newest first.
func (s *InstanceService) ListByCourse(ctx context.Context, courseID int64) ([]models.ClassInstance, error) {
	if _, err := s.course(ctx, courseID); err != nil {
		return nil, err
	}
	instances, err := s.repo.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list class instances")
	}
	s.decorate(instances)
	return instances, nil
}

// ListByDate returns the instances held on date.
func (s *InstanceService) ListByDate(ctx context.Context, date string) ([]models.ClassInstance, error) {
	parsed, err := parseInstanceDate(date)
	if err != nil {
		return nil, err
	}
	instances, err := s.repo.ListByDate(ctx, calendar.FormatStorage(parsed))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list class instances")
	}
	s.decorate(instances)
	return instances, nil
}

// Get returns an instance by id.
func (s *InstanceService) Get(ctx context.Context, id int64) (*models.ClassInstance, error) {
	instance, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class instance not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class instance")
	}
	describeInstance(instance, s.now())
	return instance, nil
}

// Create schedules a class instance of courseID.
func (s *InstanceService) Create(ctx context.Context, courseID int64, req InstanceRequest) (*models.ClassInstance, error) {
	course, err := s.course(ctx, courseID)
	if err != nil {
		return nil, err
	}
	date, err := s.checkRequest(ctx, course, req)
	if err != nil {
		return nil, err
	}

	instance := &models.ClassInstance{CourseID: course.ID, TeacherID: req.TeacherID, Date: date}
	if _, err := s.repo.Create(ctx, instance); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create class instance")
	}
	s.logger.Info("class instance scheduled", zap.Int64("course_id", course.ID), zap.Int64("instance_id", instance.ID), zap.String("date", date))
	return s.Get(ctx, instance.ID)
}

// Update moves an instance to another date or teacher. The parent course is
// looked up from the stored row.
func (s *InstanceService) Update(ctx context.Context, id int64, req InstanceRequest) (*models.ClassInstance, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	course, err := s.course(ctx, existing.CourseID)
	if err != nil {
		return nil, err
	}
	date, err := s.checkRequest(ctx, course, req)
	if err != nil {
		return nil, err
	}

	existing.Date = date
	existing.TeacherID = req.TeacherID
	affected, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update class instance")
	}
	if affected == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "class instance not found")
	}
	return s.Get(ctx, id)
}

// Delete removes a single class instance.
func (s *InstanceService) Delete(ctx context.Context, id int64) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete class instance")
	}
	if affected == 0 {
		return appErrors.Clone(appErrors.ErrNotFound, "class instance not found")
	}
	return nil
}

func (s *InstanceService) checkRequest(ctx context.Context, course *models.Course, req InstanceRequest) (string, error) {
	req.Date = strings.TrimSpace(req.Date)
	if err := s.validator.Struct(req); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, validation.Describe("invalid class instance payload", err))
	}
	parsed, err := parseInstanceDate(req.Date)
	if err != nil {
		return "", err
	}
	date, err := s.rule.Check(parsed, course.DayOfWeek)
	if err != nil {
		return "", err
	}
	if err := ensureTeacher(ctx, s.teachers, req.TeacherID); err != nil {
		return "", err
	}
	return date, nil
}

func (s *InstanceService) course(ctx context.Context, id int64) (*models.Course, error) {
	course, err := s.courses.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}
	return course, nil
}

func parseInstanceDate(raw string) (time.Time, error) {
	parsed, err := calendar.ParseAny(strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "date must be yyyy-MM-dd or dd/MM/yyyy")
	}
	return parsed, nil
}

func (s *InstanceService) decorate(instances []models.ClassInstance) {
	today := s.now()
	for i := range instances {
		describeInstance(&instances[i], today)
	}
}

func describeInstance(instance *models.ClassInstance, today time.Time) {
	instance.DisplayDate = calendar.StorageToDisplay(instance.Date)
	instance.When = calendar.RelativeDescription(instance.Date, today)
	instance.Past = calendar.IsPastDate(instance.Date, today)
}
