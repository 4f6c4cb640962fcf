package app

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/noah-isme/yoga-studio-admin/internal/calendar"
	"github.com/noah-isme/yoga-studio-admin/internal/repository"
	"github.com/noah-isme/yoga-studio-admin/internal/service"
	"github.com/noah-isme/yoga-studio-admin/internal/validation"
	"github.com/noah-isme/yoga-studio-admin/pkg/config"
	"github.com/noah-isme/yoga-studio-admin/pkg/database"
)

// App holds the wired services shared by the HTTP server and the CLI.
type App struct {
	Config *config.Config
	Logger *zap.Logger
	DB     *sqlx.DB

	Teachers  *service.TeacherService
	Courses   *service.CourseService
	Instances *service.InstanceService
	Sync      *service.SyncService
	Exports   *service.ExportService
	Auth      *service.AuthService
	Admin     *service.AdminService
	Metrics   *service.MetricsService

	closers []func() error
}

// New opens the local database, migrates it and builds every service.
// The mirror is connected only when MIRROR_DRIVER selects one.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := database.OpenSQLite(cfg.Database)
	if err != nil {
		return nil, err
	}
	a := &App{Config: cfg, Logger: logger, DB: db}
	a.closers = append(a.closers, db.Close)

	if err := database.Migrate(ctx, db, logger); err != nil {
		_ = a.Close()
		return nil, err
	}

	mirror, err := a.openMirror(ctx)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	validate := validation.New()
	locale := calendar.ParseLocale(cfg.Locale)

	teacherRepo := repository.NewTeacherRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	instanceRepo := repository.NewInstanceRepository(db)

	a.Metrics = service.NewMetricsService()
	a.Teachers = service.NewTeacherService(teacherRepo, validate, logger)
	a.Courses = service.NewCourseService(courseRepo, teacherRepo, validate, logger).WithMetrics(a.Metrics)
	a.Instances = service.NewInstanceService(instanceRepo, courseRepo, teacherRepo, service.NewScheduleRule(locale), validate, logger)
	a.Exports = service.NewExportService(a.Courses, logger)
	a.Admin = service.NewAdminService(db, logger)
	a.Auth = service.NewAuthService(validate, logger, service.AuthConfig{
		Username:          cfg.Auth.Username,
		PasswordHash:      cfg.Auth.PasswordHash,
		AccessTokenSecret: cfg.JWT.Secret,
		AccessTokenExpiry: cfg.JWT.Expiration,
	})
	a.Sync = service.NewSyncService(repository.NewMirrorSource(db), mirror, service.SyncConfig{
		Tables:     repository.MirroredTables,
		Workers:    cfg.Sync.Workers,
		Retries:    cfg.Sync.Retries,
		RetryDelay: cfg.Sync.RetryDelay,
	}, a.Metrics, logger)

	return a, nil
}

// openMirror returns a nil interface, never a typed nil, when no driver is set.
func (a *App) openMirror(ctx context.Context) (service.Mirror, error) {
	switch a.Config.Mirror.Driver {
	case config.MirrorDriverRedis:
		client, err := database.NewRedis(a.Config.Redis)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, client.Close)
		a.Logger.Info("mirror connected", zap.String("driver", config.MirrorDriverRedis))
		return repository.NewRedisMirror(client, a.Config.Mirror.Prefix), nil
	case config.MirrorDriverPostgres:
		pg, err := database.NewPostgres(a.Config.Postgres)
		if err != nil {
			return nil, fmt.Errorf("connect postgres mirror: %w", err)
		}
		a.closers = append(a.closers, pg.Close)
		mirror := repository.NewPostgresMirror(pg)
		if err := mirror.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		a.Logger.Info("mirror connected", zap.String("driver", config.MirrorDriverPostgres))
		return mirror, nil
	default:
		return nil, nil
	}
}

// Close releases the mirror connection and the local database.
func (a *App) Close() error {
	var first error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}
