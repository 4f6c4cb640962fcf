package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/yoga-studio-admin/internal/calendar"
	"github.com/noah-isme/yoga-studio-admin/internal/models"
	appErrors "github.com/noah-isme/yoga-studio-admin/pkg/errors"
	"github.com/noah-isme/yoga-studio-admin/pkg/export"
)

var timetableHeaders = []string{"Course", "Teacher", "Day", "Start", "End", "Duration", "Capacity", "Price", "Difficulty", "Type"}

type courseSearcher interface {
	Search(ctx context.Context, req CourseSearchRequest) ([]models.Course, error)
}

type fileStorage interface {
	Save(filename string, data []byte) (string, error)
}

// ExportFile is a rendered timetable.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService renders the course timetable as CSV or PDF.
type ExportService struct {
	courses courseSearcher
	logger  *zap.Logger
	now     func() time.Time
}

// NewExportService constructs an ExportService.
func NewExportService(courses courseSearcher, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{courses: courses, logger: logger, now: time.Now}
}

// Timetable renders every course matching req, grouped by weekday.
func (s *ExportService) Timetable(ctx context.Context, req CourseSearchRequest, format string) (*ExportFile, error) {
	f, err := export.ParseFormat(format)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "format must be csv or pdf")
	}
	courses, err := s.courses.Search(ctx, req)
	if err != nil {
		return nil, err
	}

	data := buildTimetable(courses)
	data.Title = "Class Timetable " + calendar.FormatDisplay(s.now())
	payload, err := export.Render(f, data)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render timetable")
	}
	s.logger.Info("timetable exported", zap.String("format", string(f)), zap.Int("courses", len(courses)))

	return &ExportFile{
		Filename:    fmt.Sprintf("timetable_%s.%s", s.now().UTC().Format("20060102_150405"), f.Extension()),
		ContentType: f.ContentType(),
		Data:        payload,
	}, nil
}

// SaveTimetable renders the timetable and writes it to store.
func (s *ExportService) SaveTimetable(ctx context.Context, store fileStorage, req CourseSearchRequest, format string) (string, error) {
	file, err := s.Timetable(ctx, req, format)
	if err != nil {
		return "", err
	}
	path, err := store.Save(file.Filename, file.Data)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save timetable")
	}
	return path, nil
}

func buildTimetable(courses []models.Course) export.Dataset {
	order := make(map[string]int, len(models.DaysOfWeek))
	for i, day := range models.DaysOfWeek {
		order[day] = i
	}
	sorted := append([]models.Course(nil), courses...)
	sortCourses(sorted, order)

	rows := make([]map[string]string, 0, len(sorted))
	for _, c := range sorted {
		end, err := calendar.EndTime(c.Time, c.DurationMinutes)
		if err != nil {
			end = ""
		}
		rows = append(rows, map[string]string{
			"Course":     c.Name,
			"Teacher":    c.TeacherName,
			"Day":        c.DayOfWeek,
			"Start":      c.Time,
			"End":        end,
			"Duration":   strconv.Itoa(c.DurationMinutes) + " min",
			"Capacity":   strconv.Itoa(c.MaxCapacity),
			"Price":      strconv.FormatFloat(c.Price, 'f', 2, 64),
			"Difficulty": deref(c.Difficulty),
			"Type":       deref(c.Type),
		})
	}
	return export.Dataset{Headers: timetableHeaders, Rows: rows}
}

func sortCourses(courses []models.Course, dayOrder map[string]int) {
	sort.SliceStable(courses, func(i, j int) bool {
		a, b := courses[i], courses[j]
		if dayOrder[a.DayOfWeek] != dayOrder[b.DayOfWeek] {
			return dayOrder[a.DayOfWeek] < dayOrder[b.DayOfWeek]
		}
		if a.Time != b.Time {
			return a.Time < b.Time
		}
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	})
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
