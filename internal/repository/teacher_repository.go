package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/yoga-studio-admin/internal/models"
)

// TeacherRepository manages persistence for teachers.
type TeacherRepository struct {
	db *sqlx.DB
}

// NewTeacherRepository constructs a TeacherRepository.
func NewTeacherRepository(db *sqlx.DB) *TeacherRepository {
	return &TeacherRepository{db: db}
}

// List returns every teacher ordered by name.
func (r *TeacherRepository) List(ctx context.Context) ([]models.Teacher, error) {
	const query = `SELECT id, name, email, phone FROM teachers ORDER BY name ASC`
	teachers := []models.Teacher{}
	if err := r.db.SelectContext(ctx, &teachers, query); err != nil {
		return nil, fmt.Errorf("list teachers: %w", err)
	}
	return teachers, nil
}

// FindByID fetches a teacher by ID. It returns sql.ErrNoRows when absent.
func (r *TeacherRepository) FindByID(ctx context.Context, id int64) (*models.Teacher, error) {
	const query = `SELECT id, name, email, phone FROM teachers WHERE id = ?`
	var teacher models.Teacher
	if err := r.db.GetContext(ctx, &teacher, query, id); err != nil {
		return nil, err
	}
	return &teacher, nil
}

// Exists reports whether a teacher with id is stored.
func (r *TeacherRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists int
	if err := r.db.GetContext(ctx, &exists, `SELECT 1 FROM teachers WHERE id = ? LIMIT 1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check teacher: %w", err)
	}
	return true, nil
}

// Create inserts a teacher and stores the generated id on it.
func (r *TeacherRepository) Create(ctx context.Context, teacher *models.Teacher) (int64, error) {
	const query = `INSERT INTO teachers (name, email, phone) VALUES (:name, :email, :phone)`
	res, err := r.db.NamedExecContext(ctx, query, teacher)
	if err != nil {
		return 0, fmt.Errorf("create teacher: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create teacher id: %w", err)
	}
	teacher.ID = id
	return id, nil
}
