package backup

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/mls/backend/internal/domain/backup"
	"github.com/mls/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ErrSnapshotNotFound is returned when a snapshot key does not exist in the store
var ErrSnapshotNotFound = errors.New("snapshot not found")

// SnapshotStore stores and retrieves database snapshot files
type SnapshotStore interface {
	// Upload stores a snapshot under the given key and returns its size in bytes
	Upload(ctx context.Context, key string, data []byte) (int64, error)
	// Download retrieves a snapshot by key, or ErrSnapshotNotFound
	Download(ctx context.Context, key string) ([]byte, error)
	// List returns stored snapshot keys, newest first
	List(ctx context.Context, limit int) ([]string, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// snapshotKeyFormat embeds the creation timestamp so keys sort
// chronologically.
const snapshotKeyFormat = "db_backup_20060102_150405.sqlite3"

// Service orchestrates database snapshot backups and restores.
// It copies the whole sqlite database file to the snapshot store and
// records every run in the backup log.
type Service struct {
	dbFilePath  string
	store       SnapshotStore
	logRepo     backup.LogRepository
	retainCount int
	logger      *zap.Logger
}

// NewService creates a new backup Service. dbFilePath must point at the
// sqlite database file; backups are not supported on other drivers.
func NewService(dbFilePath string, store SnapshotStore, logRepo backup.LogRepository, retainCount int, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		dbFilePath:  dbFilePath,
		store:       store,
		logRepo:     logRepo,
		retainCount: retainCount,
		logger:      logger,
	}
}

// BackupResult describes a completed backup run
type BackupResult struct {
	ObjectKey   string    `json:"object_key"`
	SizeBytes   int64     `json:"size_bytes"`
	PerformedAt time.Time `json:"performed_at"`
}

// Backup snapshots the database file to the store and logs the run.
// Failed runs are logged too, so the backup log is a complete audit
// trail.
func (s *Service) Backup(ctx context.Context) (*BackupResult, error) {
	if s.dbFilePath == "" {
		return nil, shared.NewDomainError("BACKUP_UNSUPPORTED", "Snapshot backups require the sqlite driver")
	}

	key := time.Now().UTC().Format(snapshotKeyFormat)

	data, err := os.ReadFile(s.dbFilePath)
	if err != nil {
		s.recordRun(ctx, backup.OperationBackup, backup.StatusFailed, key, 0, err.Error())
		return nil, fmt.Errorf("failed to read database file: %w", err)
	}

	size, err := s.store.Upload(ctx, key, data)
	if err != nil {
		s.recordRun(ctx, backup.OperationBackup, backup.StatusFailed, key, 0, err.Error())
		return nil, fmt.Errorf("failed to upload snapshot: %w", err)
	}

	entry := s.recordRun(ctx, backup.OperationBackup, backup.StatusSuccess, key, size, "")
	s.pruneOldSnapshots(ctx)

	s.logger.Info("Database backup completed",
		zap.String("object_key", key),
		zap.Int64("size_bytes", size),
	)

	return &BackupResult{
		ObjectKey:   key,
		SizeBytes:   size,
		PerformedAt: entry.PerformedAt,
	}, nil
}

// Restore replaces the database file with the named snapshot.
// The caller is responsible for reopening connections afterwards.
func (s *Service) Restore(ctx context.Context, key string) error {
	if s.dbFilePath == "" {
		return shared.NewDomainError("BACKUP_UNSUPPORTED", "Snapshot restores require the sqlite driver")
	}
	if key == "" {
		return shared.NewDomainError("INVALID_INPUT", "Snapshot key is required")
	}

	data, err := s.store.Download(ctx, key)
	if err != nil {
		if errors.Is(err, ErrSnapshotNotFound) {
			s.recordRun(ctx, backup.OperationRestore, backup.StatusFailed, key, 0, "snapshot not found")
			return shared.NewDomainError("NOT_FOUND", "Snapshot not found")
		}
		s.recordRun(ctx, backup.OperationRestore, backup.StatusFailed, key, 0, err.Error())
		return fmt.Errorf("failed to download snapshot: %w", err)
	}

	if err := os.WriteFile(s.dbFilePath, data, 0o600); err != nil {
		s.recordRun(ctx, backup.OperationRestore, backup.StatusFailed, key, 0, err.Error())
		return fmt.Errorf("failed to write database file: %w", err)
	}

	s.recordRun(ctx, backup.OperationRestore, backup.StatusSuccess, key, int64(len(data)), "")

	s.logger.Info("Database restore completed",
		zap.String("object_key", key),
		zap.Int("size_bytes", len(data)),
	)
	return nil
}

// LastBackup returns the most recent successful backup, or
// shared.ErrNotFound when no backup has ever run.
func (s *Service) LastBackup(ctx context.Context) (*backup.LogEntry, error) {
	return s.logRepo.FindLatest(ctx)
}

// AvailableBackups lists the snapshot keys currently in the store,
// newest first.
func (s *Service) AvailableBackups(ctx context.Context) ([]string, error) {
	return s.store.List(ctx, 0)
}

// History returns recent backup log entries, newest first
func (s *Service) History(ctx context.Context, limit int) ([]backup.LogEntry, error) {
	return s.logRepo.FindAll(ctx, limit)
}

func (s *Service) recordRun(ctx context.Context, op backup.Operation, status backup.Status, key string, size int64, details string) *backup.LogEntry {
	entry, err := backup.NewLogEntry(op, status, key)
	if err != nil {
		s.logger.Error("Failed to build backup log entry", zap.Error(err))
		return &backup.LogEntry{PerformedAt: time.Now()}
	}
	entry.SizeBytes = size
	entry.Details = details
	if err := s.logRepo.Save(ctx, entry); err != nil {
		s.logger.Error("Failed to record backup run", zap.Error(err))
	}
	return entry
}

// pruneOldSnapshots deletes snapshots beyond the retain count.
// Best effort; failures are logged and never fail the backup.
func (s *Service) pruneOldSnapshots(ctx context.Context) {
	if s.retainCount <= 0 {
		return
	}
	keys, err := s.store.List(ctx, 0)
	if err != nil {
		s.logger.Warn("Failed to list snapshots for pruning", zap.Error(err))
		return
	}
	for _, key := range keys[min(s.retainCount, len(keys)):] {
		if err := s.store.Delete(ctx, key); err != nil {
			s.logger.Warn("Failed to prune old snapshot",
				zap.String("object_key", key),
				zap.Error(err),
			)
		}
	}
}
