package models

import "time"

// Sync run states.
const (
	SyncStatusQueued    = "QUEUED"
	SyncStatusRunning   = "RUNNING"
	SyncStatusCompleted = "COMPLETED"
	SyncStatusPartial   = "PARTIAL"
	SyncStatusFailed    = "FAILED"
)

// SyncTableResult counts mirrored rows for one local table.
type SyncTableResult struct {
	Table  string   `json:"table"`
	Pushed int      `json:"pushed"`
	Failed int      `json:"failed"`
	Errors []string `json:"errors,omitempty"`
}

// SyncReport summarises one mirror run.
type SyncReport struct {
	ID         string            `json:"id"`
	Status     string            `json:"status"`
	Tables     []SyncTableResult `json:"tables"`
	Pushed     int               `json:"pushed"`
	Failed     int               `json:"failed"`
	Error      string            `json:"error,omitempty"`
	QueuedAt   time.Time         `json:"queued_at"`
	StartedAt  *time.Time        `json:"started_at,omitempty"`
	FinishedAt *time.Time        `json:"finished_at,omitempty"`
}

// MirrorRow is a local row prepared for the remote mirror, keyed by its id.
type MirrorRow struct {
	ID     string
	Fields map[string]interface{}
}
