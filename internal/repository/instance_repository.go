package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/yoga-studio-admin/internal/models"
)

const instanceSelect = `SELECT i.id, i.course_id, i.teacher_id, t.name AS teacher_name, i.date
FROM class_instances i
JOIN teachers t ON i.teacher_id = t.id`

// InstanceRepository manages persistence for dated class instances.
type InstanceRepository struct {
	db *sqlx.DB
}

// NewInstanceRepository constructs an InstanceRepository.
func NewInstanceRepository(db *sqlx.DB) *InstanceRepository {
	return &InstanceRepository{db: db}
}

// ListByCourse returns the instances of a course, most recent date first.
func (r *InstanceRepository) ListByCourse(ctx context.Context, courseID int64) ([]models.ClassInstance, error) {
	query := instanceSelect + "\nWHERE i.course_id = ?\nORDER BY i.date DESC"
	instances := []models.ClassInstance{}
	if err := r.db.SelectContext(ctx, &instances, query, courseID); err != nil {
		return nil, fmt.Errorf("list course instances: %w", err)
	}
	return instances, nil
}

// ListByDate returns every instance scheduled on a storage-format date.
func (r *InstanceRepository) ListByDate(ctx context.Context, date string) ([]models.ClassInstance, error) {
	query := instanceSelect + "\nWHERE i.date = ?\nORDER BY i.course_id ASC, i.id ASC"
	instances := []models.ClassInstance{}
	if err := r.db.SelectContext(ctx, &instances, query, date); err != nil {
		return nil, fmt.Errorf("list instances by date: %w", err)
	}
	return instances, nil
}

// FindByID fetches an instance. It returns sql.ErrNoRows when absent.
func (r *InstanceRepository) FindByID(ctx context.Context, id int64) (*models.ClassInstance, error) {
	var instance models.ClassInstance
	if err := r.db.GetContext(ctx, &instance, instanceSelect+"\nWHERE i.id = ?", id); err != nil {
		return nil, err
	}
	return &instance, nil
}

// Create inserts an instance and stores the generated id on it.
func (r *InstanceRepository) Create(ctx context.Context, instance *models.ClassInstance) (int64, error) {
	const query = `INSERT INTO class_instances (course_id, teacher_id, date) VALUES (:course_id, :teacher_id, :date)`
	res, err := r.db.NamedExecContext(ctx, query, instance)
	if err != nil {
		return 0, fmt.Errorf("create class instance: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create class instance id: %w", err)
	}
	instance.ID = id
	return id, nil
}

// Update changes the date and teacher of an instance and returns the rows
// affected.
func (r *InstanceRepository) Update(ctx context.Context, instance *models.ClassInstance) (int64, error) {
	const query = `UPDATE class_instances SET date = :date, teacher_id = :teacher_id WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, instance)
	if err != nil {
		return 0, fmt.Errorf("update class instance: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("update class instance rows: %w", err)
	}
	return affected, nil
}

// Delete removes a single instance and returns the rows affected.
func (r *InstanceRepository) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM class_instances WHERE id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("delete class instance: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete class instance rows: %w", err)
	}
	return affected, nil
}
