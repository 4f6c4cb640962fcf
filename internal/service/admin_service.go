package service

import (
	"context"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/noah-isme/yoga-studio-admin/pkg/database"
	appErrors "github.com/noah-isme/yoga-studio-admin/pkg/errors"
)

// AdminService runs maintenance against the local database.
type AdminService struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewAdminService constructs an AdminService.
func NewAdminService(db *sqlx.DB, logger *zap.Logger) *AdminService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminService{db: db, logger: logger}
}

// Migrate brings the schema up to date.
func (s *AdminService) Migrate(ctx context.Context) error {
	if err := database.Migrate(ctx, s.db, s.logger); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to migrate database")
	}
	return nil
}

// Reset drops every teacher, course and instance and recreates the schema.
func (s *AdminService) Reset(ctx context.Context) error {
	if err := database.Reset(ctx, s.db, s.logger); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reset database")
	}
	s.logger.Warn("local database reset")
	return nil
}

// Ping reports whether the database answers.
func (s *AdminService) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// SchemaVersion returns the stored schema version.
func (s *AdminService) SchemaVersion(ctx context.Context) (int, error) {
	return database.SchemaVersion(ctx, s.db)
}
