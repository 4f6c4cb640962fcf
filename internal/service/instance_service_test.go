package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/noah-isme/yoga-studio-admin/internal/models"
	appErrors "github.com/noah-isme/yoga-studio-admin/pkg/errors"
)

type instanceFixture struct {
	svc       *InstanceService
	instances *mockInstanceRepo
	courses   *mockCourseRepo
	courseID  int64
}

func newInstanceFixture(t *testing.T, day string) instanceFixture {
	t.Helper()
	teachers := newMockTeacherRepo("Ann", "Bo")
	courses := newMockCourseRepo(teachers)
	id, err := courses.Create(context.Background(), &models.Course{Name: "Flow", TeacherID: 1, DayOfWeek: day, Time: "07:00", DurationMinutes: 60, MaxCapacity: 10})
	require.NoError(t, err)
	instances := newMockInstanceRepo()
	svc := NewInstanceService(instances, courses, teachers, NewScheduleRule(language.English), nil, nil)
	return instanceFixture{svc: svc, instances: instances, courses: courses, courseID: id}
}

func TestInstanceServiceCreateOnCourseDay(t *testing.T) {
	f := newInstanceFixture(t, "Monday")

	instance, err := f.svc.Create(context.Background(), f.courseID, InstanceRequest{Date: "01/01/2024", TeacherID: 2})
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", instance.Date)
	assert.Equal(t, int64(2), instance.TeacherID)
}

func TestInstanceServiceCreateRejectsWrongWeekday(t *testing.T) {
	f := newInstanceFixture(t, "Monday")

	_, err := f.svc.Create(context.Background(), f.courseID, InstanceRequest{Date: "2024-01-02", TeacherID: 1})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrScheduleMismatch))
	assert.Contains(t, err.Error(), "(Tuesday)")
	assert.Empty(t, f.instances.items)
}

func TestInstanceServiceCreateInvalidCourseDay(t *testing.T) {
	f := newInstanceFixture(t, "Mondy")

	_, err := f.svc.Create(context.Background(), f.courseID, InstanceRequest{Date: "2024-01-01", TeacherID: 1})
	assert.True(t, appErrors.Is(err, appErrors.ErrInvalidCourseDay))
}

func TestInstanceServiceCreateUnknownCourseAndTeacher(t *testing.T) {
	f := newInstanceFixture(t, "Monday")

	_, err := f.svc.Create(context.Background(), 99, InstanceRequest{Date: "2024-01-01", TeacherID: 1})
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))

	_, err = f.svc.Create(context.Background(), f.courseID, InstanceRequest{Date: "2024-01-01", TeacherID: 9})
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))

	_, err = f.svc.Create(context.Background(), f.courseID, InstanceRequest{Date: "someday", TeacherID: 1})
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestInstanceServiceUpdateReappliesRule(t *testing.T) {
	f := newInstanceFixture(t, "Monday")
	ctx := context.Background()

	created, err := f.svc.Create(ctx, f.courseID, InstanceRequest{Date: "2024-01-01", TeacherID: 1})
	require.NoError(t, err)

	_, err = f.svc.Update(ctx, created.ID, InstanceRequest{Date: "2024-01-03", TeacherID: 1})
	assert.True(t, appErrors.Is(err, appErrors.ErrScheduleMismatch))

	moved, err := f.svc.Update(ctx, created.ID, InstanceRequest{Date: "2024-01-08", TeacherID: 2})
	require.NoError(t, err)
	assert.Equal(t, "2024-01-08", moved.Date)
	assert.Equal(t, int64(2), moved.TeacherID)

	_, err = f.svc.Update(ctx, 77, InstanceRequest{Date: "2024-01-08", TeacherID: 2})
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
}

func TestInstanceServiceListAndDelete(t *testing.T) {
	f := newInstanceFixture(t, "Monday")
	ctx := context.Background()

	for _, date := range []string{"2024-01-01", "2024-01-15", "2024-01-08"} {
		_, err := f.svc.Create(ctx, f.courseID, InstanceRequest{Date: date, TeacherID: 1})
		require.NoError(t, err)
	}

	list, err := f.svc.ListByCourse(ctx, f.courseID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "2024-01-15", list[0].Date)

	onDate, err := f.svc.ListByDate(ctx, "08/01/2024")
	require.NoError(t, err)
	assert.Len(t, onDate, 1)
	assert.Equal(t, "2024-01-08", f.instances.lastDate)

	require.NoError(t, f.svc.Delete(ctx, list[0].ID))
	assert.True(t, appErrors.Is(f.svc.Delete(ctx, list[0].ID), appErrors.ErrNotFound))

	_, err = f.svc.ListByCourse(ctx, 404)
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
}

func TestInstanceServiceDescribesDatesRelativeToToday(t *testing.T) {
	f := newInstanceFixture(t, "Monday")
	f.svc.now = func() time.Time { return time.Date(2024, 1, 8, 12, 0, 0, 0, time.Local) }
	ctx := context.Background()

	for _, date := range []string{"2024-01-01", "2024-01-08", "2024-01-15"} {
		_, err := f.svc.Create(ctx, f.courseID, InstanceRequest{Date: date, TeacherID: 1})
		require.NoError(t, err)
	}

	list, err := f.svc.ListByCourse(ctx, f.courseID)
	require.NoError(t, err)
	require.Len(t, list, 3)

	assert.Equal(t, "15/01/2024", list[0].DisplayDate)
	assert.Equal(t, "In 7 days", list[0].When)
	assert.False(t, list[0].Past)
	assert.Equal(t, "Today", list[1].When)
	assert.False(t, list[1].Past)
	assert.Equal(t, "7 days ago", list[2].When)
	assert.True(t, list[2].Past)
}
