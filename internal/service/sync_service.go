package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/yoga-studio-admin/internal/models"
	appErrors "github.com/noah-isme/yoga-studio-admin/pkg/errors"
	"github.com/noah-isme/yoga-studio-admin/pkg/jobs"
)

const (
	syncJobType       = "mirror_sync"
	maxErrorsPerTable = 10
)

type mirrorSource interface {
	Rows(ctx context.Context, table string) ([]models.MirrorRow, error)
}

// Mirror is a remote copy of the local tables.
type Mirror interface {
	Put(ctx context.Context, collection, id string, fields map[string]interface{}) error
	Clear(ctx context.Context) error
}

// SyncConfig tunes the background sync queue.
type SyncConfig struct {
	Tables     []string
	Workers    int
	Retries    int
	RetryDelay time.Duration
}

// SyncService copies the local tables to the mirror. Runs are best effort:
// a failing row is logged and counted and the run carries on.
type SyncService struct {
	source  mirrorSource
	mirror  Mirror
	cfg     SyncConfig
	metrics *MetricsService
	logger  *zap.Logger
	queue   *jobs.Queue
	now     func() time.Time

	mu      sync.RWMutex
	reports map[string]*models.SyncReport
}

// NewSyncService constructs a SyncService. A nil mirror leaves sync
// unavailable.
func NewSyncService(source mirrorSource, mirror Mirror, cfg SyncConfig, metrics *MetricsService, logger *zap.Logger) *SyncService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &SyncService{
		source:  source,
		mirror:  mirror,
		cfg:     cfg,
		metrics: metrics,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
		reports: make(map[string]*models.SyncReport),
	}
	s.queue = jobs.NewQueue(syncJobType, s.handleJob, jobs.QueueConfig{
		Workers:    cfg.Workers,
		MaxRetries: cfg.Retries,
		RetryDelay: cfg.RetryDelay,
		OnGiveUp:   s.giveUp,
		Logger:     logger,
	})
	return s
}

// Available reports whether a mirror is configured.
func (s *SyncService) Available() bool {
	return s.mirror != nil
}

// Start launches the background workers.
func (s *SyncService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop waits for running syncs to return.
func (s *SyncService) Stop() {
	s.queue.Stop()
}

// Sync pushes every table to the mirror and waits for the result.
func (s *SyncService) Sync(ctx context.Context) (*models.SyncReport, error) {
	if !s.Available() {
		return nil, appErrors.ErrSyncUnavailable
	}
	report := &models.SyncReport{ID: uuid.NewString(), Status: models.SyncStatusQueued, QueuedAt: s.now()}
	s.run(ctx, report)
	if report.Status == models.SyncStatusFailed {
		return report, appErrors.Clone(appErrors.ErrSyncFailed, report.Error)
	}
	return report, nil
}

// Enqueue schedules a background sync and returns its queued report.
func (s *SyncService) Enqueue(ctx context.Context) (*models.SyncReport, error) {
	if !s.Available() {
		return nil, appErrors.ErrSyncUnavailable
	}
	report := &models.SyncReport{ID: uuid.NewString(), Status: models.SyncStatusQueued, QueuedAt: s.now()}
	s.store(report)

	if err := s.queue.Enqueue(ctx, jobs.Job{ID: report.ID, Type: syncJobType}); err != nil {
		s.mu.Lock()
		delete(s.reports, report.ID)
		s.mu.Unlock()
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to queue sync")
	}
	return s.snapshot(report.ID), nil
}

// Report returns the latest state of a run.
func (s *SyncService) Report(id string) (*models.SyncReport, error) {
	if report := s.snapshot(id); report != nil {
		return report, nil
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "sync run not found")
}

// Reset clears every mirrored collection.
func (s *SyncService) Reset(ctx context.Context) error {
	if !s.Available() {
		return appErrors.ErrSyncUnavailable
	}
	if err := s.mirror.Clear(ctx); err != nil {
		return appErrors.Wrap(err, appErrors.ErrSyncFailed.Code, appErrors.ErrSyncFailed.Status, "failed to clear mirror")
	}
	s.logger.Info("mirror cleared")
	return nil
}

func (s *SyncService) handleJob(ctx context.Context, job jobs.Job) error {
	report := s.snapshot(job.ID)
	if report == nil {
		return nil
	}

	working := &models.SyncReport{ID: report.ID, QueuedAt: report.QueuedAt}
	s.run(ctx, working)
	if working.Status == models.SyncStatusFailed {
		return fmt.Errorf("sync %s failed: %s", job.ID, working.Error)
	}
	return nil
}

func (s *SyncService) giveUp(job jobs.Job, err error) {
	s.logger.Error("mirror sync abandoned", zap.String("sync_id", job.ID), zap.Int("attempts", job.Attempt), zap.Error(err))
}

func (s *SyncService) run(ctx context.Context, report *models.SyncReport) {
	started := s.now()
	report.StartedAt = &started
	report.Status = models.SyncStatusRunning
	report.Tables = make([]models.SyncTableResult, 0, len(s.cfg.Tables))
	report.Pushed, report.Failed, report.Error = 0, 0, ""
	s.store(report)

	var readFailures int
	for _, table := range s.cfg.Tables {
		result, err := s.syncTable(ctx, table)
		if err != nil {
			readFailures++
			result.Errors = append(result.Errors, err.Error())
			s.logger.Error("mirror sync could not read table", zap.String("sync_id", report.ID), zap.String("table", table), zap.Error(err))
		}
		report.Tables = append(report.Tables, result)
		report.Pushed += result.Pushed
		report.Failed += result.Failed
		s.metrics.ObserveSyncTable(table, result.Pushed, result.Failed)
	}

	finished := s.now()
	report.FinishedAt = &finished
	switch {
	case readFailures == len(s.cfg.Tables) && len(s.cfg.Tables) > 0:
		report.Status = models.SyncStatusFailed
		report.Error = "no table could be read"
	case report.Failed > 0 && report.Pushed == 0:
		report.Status = models.SyncStatusFailed
		report.Error = fmt.Sprintf("%d rows failed to sync", report.Failed)
	case report.Failed > 0 || readFailures > 0:
		report.Status = models.SyncStatusPartial
		report.Error = fmt.Sprintf("%d rows failed to sync", report.Failed)
	default:
		report.Status = models.SyncStatusCompleted
	}

	s.metrics.ObserveSyncRun(report.Status, finished.Sub(started))
	s.logger.Info("mirror sync finished",
		zap.String("sync_id", report.ID),
		zap.String("status", report.Status),
		zap.Int("pushed", report.Pushed),
		zap.Int("failed", report.Failed),
	)
	s.store(report)
}

func (s *SyncService) syncTable(ctx context.Context, table string) (models.SyncTableResult, error) {
	result := models.SyncTableResult{Table: table}
	start := time.Now()
	rows, err := s.source.Rows(ctx, table)
	s.metrics.ObserveDBQuery("mirror_rows_"+table, time.Since(start))
	if err != nil {
		return result, err
	}
	for _, row := range rows {
		if err := s.mirror.Put(ctx, table, row.ID, row.Fields); err != nil {
			result.Failed++
			if len(result.Errors) < maxErrorsPerTable {
				result.Errors = append(result.Errors, err.Error())
			}
			s.logger.Warn("mirror row failed", zap.String("table", table), zap.String("row_id", row.ID), zap.Error(err))
			continue
		}
		result.Pushed++
	}
	return result, nil
}

// store saves a copy so readers never share memory with a running sync.
func (s *SyncService) store(report *models.SyncReport) {
	cp := *report
	cp.Tables = append([]models.SyncTableResult(nil), report.Tables...)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports[report.ID] = &cp
}

func (s *SyncService) snapshot(id string) *models.SyncReport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	report, ok := s.reports[id]
	if !ok {
		return nil
	}
	cp := *report
	cp.Tables = append([]models.SyncTableResult(nil), report.Tables...)
	return &cp
}
