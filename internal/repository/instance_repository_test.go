package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/yoga-studio-admin/internal/models"
)

func TestInstanceRepositoryListByCourseNewestFirst(t *testing.T) {
	db := newStudioDB(t)
	ann := seedTeacher(t, db, "Ann")
	bo := seedTeacher(t, db, "Bo")
	courseID := seedCourse(t, db, "Flow", ann, "Monday")
	seedInstance(t, db, courseID, ann, "2024-01-01")
	seedInstance(t, db, courseID, bo, "2024-01-15")
	seedInstance(t, db, courseID, ann, "2024-01-08")

	instances, err := NewInstanceRepository(db).ListByCourse(context.Background(), courseID)
	require.NoError(t, err)
	require.Len(t, instances, 3)
	assert.Equal(t, "2024-01-15", instances[0].Date)
	assert.Equal(t, "Bo", instances[0].TeacherName)
	assert.Equal(t, "2024-01-08", instances[1].Date)
	assert.Equal(t, "2024-01-01", instances[2].Date)
}

func TestInstanceRepositoryUpdateAndDelete(t *testing.T) {
	db := newStudioDB(t)
	ann := seedTeacher(t, db, "Ann")
	bo := seedTeacher(t, db, "Bo")
	courseID := seedCourse(t, db, "Flow", ann, "Monday")
	id := seedInstance(t, db, courseID, ann, "2024-01-01")
	repo := NewInstanceRepository(db)
	ctx := context.Background()

	affected, err := repo.Update(ctx, &models.ClassInstance{ID: id, TeacherID: bo, Date: "2024-01-08"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	found, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Bo", found.TeacherName)
	assert.Equal(t, "2024-01-08", found.Date)
	assert.Equal(t, courseID, found.CourseID)

	onDate, err := repo.ListByDate(ctx, "2024-01-08")
	require.NoError(t, err)
	require.Len(t, onDate, 1)

	affected, err = repo.Delete(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	_, err = repo.FindByID(ctx, id)
	assert.True(t, errors.Is(err, sql.ErrNoRows))
}

func TestInstanceRepositoryListByDateQuery(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"id", "course_id", "teacher_id", "teacher_name", "date"}).
		AddRow(4, 1, 2, "Ann", "2024-01-01")
	mock.ExpectQuery(regexp.QuoteMeta("WHERE i.date = ?")).
		WithArgs("2024-01-01").
		WillReturnRows(rows)

	instances, err := NewInstanceRepository(db).ListByDate(context.Background(), "2024-01-01")
	require.NoError(t, err)
	require.Len(t, instances, 1)
	assert.Equal(t, int64(4), instances[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInstanceRepositoryCreateWrapsError(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO class_instances")).
		WithArgs(int64(1), int64(2), "2024-01-01").
		WillReturnError(errors.New("constraint failed"))

	_, err := NewInstanceRepository(db).Create(context.Background(), &models.ClassInstance{CourseID: 1, TeacherID: 2, Date: "2024-01-01"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create class instance")
	require.NoError(t, mock.ExpectationsWereMet())
}
