package repository

import (
	"context"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/yoga-studio-admin/internal/models"
	"github.com/noah-isme/yoga-studio-admin/pkg/config"
	"github.com/noah-isme/yoga-studio-admin/pkg/database"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func newStudioDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := database.OpenSQLite(config.DatabaseConfig{Path: database.MemoryPath})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.Migrate(context.Background(), db, nil))
	return db
}

func seedTeacher(t *testing.T, db *sqlx.DB, name string) int64 {
	t.Helper()
	id, err := NewTeacherRepository(db).Create(context.Background(), &models.Teacher{Name: name})
	require.NoError(t, err)
	return id
}

func seedCourse(t *testing.T, db *sqlx.DB, name string, teacherID int64, day string) int64 {
	t.Helper()
	id, err := NewCourseRepository(db).Create(context.Background(), &models.Course{
		Name:            name,
		TeacherID:       teacherID,
		DayOfWeek:       day,
		Time:            "09:00",
		DurationMinutes: 60,
		MaxCapacity:     12,
		Price:           15,
	})
	require.NoError(t, err)
	return id
}

func seedInstance(t *testing.T, db *sqlx.DB, courseID, teacherID int64, date string) int64 {
	t.Helper()
	id, err := NewInstanceRepository(db).Create(context.Background(), &models.ClassInstance{
		CourseID:  courseID,
		TeacherID: teacherID,
		Date:      date,
	})
	require.NoError(t, err)
	return id
}

func strPtr(s string) *string { return &s }
