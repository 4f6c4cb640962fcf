package service

import (
	"context"
	"database/sql"
	"sort"

	"github.com/noah-isme/yoga-studio-admin/internal/models"
)

type mockTeacherRepo struct {
	items   map[int64]*models.Teacher
	nextID  int64
	listErr error
}

func newMockTeacherRepo(names ...string) *mockTeacherRepo {
	m := &mockTeacherRepo{items: map[int64]*models.Teacher{}}
	for _, name := range names {
		_, _ = m.Create(context.Background(), &models.Teacher{Name: name})
	}
	return m
}

func (m *mockTeacherRepo) List(ctx context.Context) ([]models.Teacher, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]models.Teacher, 0, len(m.items))
	for _, t := range m.items {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *mockTeacherRepo) FindByID(ctx context.Context, id int64) (*models.Teacher, error) {
	if t, ok := m.items[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockTeacherRepo) Exists(ctx context.Context, id int64) (bool, error) {
	_, ok := m.items[id]
	return ok, nil
}

func (m *mockTeacherRepo) Create(ctx context.Context, teacher *models.Teacher) (int64, error) {
	m.nextID++
	teacher.ID = m.nextID
	cp := *teacher
	m.items[teacher.ID] = &cp
	return teacher.ID, nil
}

type mockCourseRepo struct {
	items      map[int64]*models.Course
	nextID     int64
	lastFilter models.CourseSearch
	deleteErr  error
	teachers   *mockTeacherRepo
}

func newMockCourseRepo(teachers *mockTeacherRepo) *mockCourseRepo {
	return &mockCourseRepo{items: map[int64]*models.Course{}, teachers: teachers}
}

func (m *mockCourseRepo) Search(ctx context.Context, filter models.CourseSearch) ([]models.Course, error) {
	m.lastFilter = filter
	out := []models.Course{}
	for _, c := range m.items {
		if filter.DayOfWeek != "" && c.DayOfWeek != filter.DayOfWeek {
			continue
		}
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockCourseRepo) List(ctx context.Context) ([]models.Course, error) {
	return m.Search(ctx, models.CourseSearch{})
}

func (m *mockCourseRepo) FindByID(ctx context.Context, id int64) (*models.Course, error) {
	if c, ok := m.items[id]; ok {
		cp := *c
		if m.teachers != nil {
			if t, ok := m.teachers.items[c.TeacherID]; ok {
				cp.TeacherName = t.Name
			}
		}
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockCourseRepo) Create(ctx context.Context, course *models.Course) (int64, error) {
	m.nextID++
	course.ID = m.nextID
	cp := *course
	m.items[course.ID] = &cp
	return course.ID, nil
}

func (m *mockCourseRepo) Update(ctx context.Context, course *models.Course) (int64, error) {
	if _, ok := m.items[course.ID]; !ok {
		return 0, nil
	}
	cp := *course
	m.items[course.ID] = &cp
	return 1, nil
}

func (m *mockCourseRepo) Delete(ctx context.Context, id int64) (int64, error) {
	if m.deleteErr != nil {
		return 0, m.deleteErr
	}
	if _, ok := m.items[id]; !ok {
		return 0, nil
	}
	delete(m.items, id)
	return 1, nil
}

type mockInstanceRepo struct {
	items    map[int64]*models.ClassInstance
	nextID   int64
	lastDate string
}

func newMockInstanceRepo() *mockInstanceRepo {
	return &mockInstanceRepo{items: map[int64]*models.ClassInstance{}}
}

func (m *mockInstanceRepo) ListByCourse(ctx context.Context, courseID int64) ([]models.ClassInstance, error) {
	out := []models.ClassInstance{}
	for _, i := range m.items {
		if i.CourseID == courseID {
			out = append(out, *i)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Date > out[b].Date })
	return out, nil
}

func (m *mockInstanceRepo) ListByDate(ctx context.Context, date string) ([]models.ClassInstance, error) {
	m.lastDate = date
	out := []models.ClassInstance{}
	for _, i := range m.items {
		if i.Date == date {
			out = append(out, *i)
		}
	}
	return out, nil
}

func (m *mockInstanceRepo) FindByID(ctx context.Context, id int64) (*models.ClassInstance, error) {
	if i, ok := m.items[id]; ok {
		cp := *i
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockInstanceRepo) Create(ctx context.Context, instance *models.ClassInstance) (int64, error) {
	m.nextID++
	instance.ID = m.nextID
	cp := *instance
	m.items[instance.ID] = &cp
	return instance.ID, nil
}

func (m *mockInstanceRepo) Update(ctx context.Context, instance *models.ClassInstance) (int64, error) {
	if _, ok := m.items[instance.ID]; !ok {
		return 0, nil
	}
	cp := *instance
	m.items[instance.ID] = &cp
	return 1, nil
}

func (m *mockInstanceRepo) Delete(ctx context.Context, id int64) (int64, error) {
	if _, ok := m.items[id]; !ok {
		return 0, nil
	}
	delete(m.items, id)
	return 1, nil
}

func strPtr(s string) *string { return &s }
