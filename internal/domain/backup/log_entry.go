package backup

import (
	"context"
	"time"

	"github.com/mls/backend/internal/domain/shared"
)

// Operation is the kind of snapshot operation performed
type Operation string

const (
	OperationBackup  Operation = "BACKUP"
	OperationRestore Operation = "RESTORE"
)

// IsValid checks if the operation is valid
func (o Operation) IsValid() bool {
	return o == OperationBackup || o == OperationRestore
}

// Status is the outcome of a snapshot operation
type Status string

const (
	StatusSuccess Status = "SUCCESS"
	StatusFailed  Status = "FAILED"
)

// LogEntry records one backup or restore run. Entries are append-only;
// the newest one answers "when did we last back up".
type LogEntry struct {
	shared.BaseEntity
	Operation   Operation `json:"operation"`
	Status      Status    `json:"status"`
	ObjectKey   string    `json:"object_key"`
	SizeBytes   int64     `json:"size_bytes"`
	Details     string    `json:"details"`
	PerformedAt time.Time `json:"performed_at"`
}

// NewLogEntry creates a new log entry for a completed operation
func NewLogEntry(op Operation, status Status, objectKey string) (*LogEntry, error) {
	if !op.IsValid() {
		return nil, shared.NewDomainError("INVALID_OPERATION", "Backup operation is not valid")
	}
	return &LogEntry{
		BaseEntity:  shared.NewBaseEntity(),
		Operation:   op,
		Status:      status,
		ObjectKey:   objectKey,
		PerformedAt: time.Now(),
	}, nil
}

// LogRepository provides access to the backup log
type LogRepository interface {
	Save(ctx context.Context, entry *LogEntry) error
	// FindLatest returns the most recent entry, or shared.ErrNotFound
	// when no backup has ever run.
	FindLatest(ctx context.Context) (*LogEntry, error)
	FindAll(ctx context.Context, limit int) ([]LogEntry, error)
}
