package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/yoga-studio-admin/internal/models"
)

// CourseRepository manages persistence for courses.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository constructs a CourseRepository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// Search returns courses matching filter, each with its teacher name.
func (r *CourseRepository) Search(ctx context.Context, filter models.CourseSearch) ([]models.Course, error) {
	query, args := BuildCourseSearch(filter)
	courses := []models.Course{}
	if err := r.db.SelectContext(ctx, &courses, query, args...); err != nil {
		return nil, fmt.Errorf("search courses: %w", err)
	}
	return courses, nil
}

// List returns every course.
func (r *CourseRepository) List(ctx context.Context) ([]models.Course, error) {
	return r.Search(ctx, models.CourseSearch{})
}

// FindByID fetches a course with its teacher name. It returns sql.ErrNoRows
// when absent.
func (r *CourseRepository) FindByID(ctx context.Context, id int64) (*models.Course, error) {
	var course models.Course
	if err := r.db.GetContext(ctx, &course, buildCourseByID(), id); err != nil {
		return nil, err
	}
	return &course, nil
}

// Create inserts a course and stores the generated id on it.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) (int64, error) {
	const query = `INSERT INTO courses (name, description, teacher_id, day_of_week, time, duration, max_capacity, price, difficulty, type)
		VALUES (:name, :description, :teacher_id, :day_of_week, :time, :duration, :max_capacity, :price, :difficulty, :type)`
	res, err := r.db.NamedExecContext(ctx, query, course)
	if err != nil {
		return 0, fmt.Errorf("create course: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create course id: %w", err)
	}
	course.ID = id
	return id, nil
}

// Update overwrites the stored course and returns the rows affected.
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) (int64, error) {
	const query = `UPDATE courses SET name = :name, description = :description, teacher_id = :teacher_id, day_of_week = :day_of_week,
		time = :time, duration = :duration, max_capacity = :max_capacity, price = :price, difficulty = :difficulty, type = :type
		WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, course)
	if err != nil {
		return 0, fmt.Errorf("update course: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("update course rows: %w", err)
	}
	return affected, nil
}

// Delete removes a course together with its class instances in one
// transaction and returns the number of course rows removed.
func (r *CourseRepository) Delete(ctx context.Context, id int64) (affected int64, err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin course delete: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM class_instances WHERE course_id = ?`, id); err != nil {
		return 0, fmt.Errorf("delete course instances: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM courses WHERE id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("delete course: %w", err)
	}
	if affected, err = res.RowsAffected(); err != nil {
		return 0, fmt.Errorf("delete course rows: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit course delete: %w", err)
	}
	return affected, nil
}
