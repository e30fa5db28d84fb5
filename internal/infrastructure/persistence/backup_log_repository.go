package persistence

import (
	"context"
	"errors"

	"github.com/mls/backend/internal/domain/backup"
	"github.com/mls/backend/internal/domain/shared"
	"github.com/mls/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormBackupLogRepository implements backup.LogRepository using GORM
type GormBackupLogRepository struct {
	db *gorm.DB
}

// NewGormBackupLogRepository creates a new GormBackupLogRepository
func NewGormBackupLogRepository(db *gorm.DB) *GormBackupLogRepository {
	return &GormBackupLogRepository{db: db}
}

// Save persists a backup log entry
func (r *GormBackupLogRepository) Save(ctx context.Context, entry *backup.LogEntry) error {
	model := models.BackupLogModelFromDomain(entry)
	return r.db.WithContext(ctx).Save(model).Error
}

// FindLatest returns the most recent successful backup entry
func (r *GormBackupLogRepository) FindLatest(ctx context.Context) (*backup.LogEntry, error) {
	var model models.BackupLogModel
	if err := r.db.WithContext(ctx).
		Where("operation = ? AND status = ?", string(backup.OperationBackup), string(backup.StatusSuccess)).
		Order("performed_at DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns backup log entries, newest first
func (r *GormBackupLogRepository) FindAll(ctx context.Context, limit int) ([]backup.LogEntry, error) {
	var logModels []models.BackupLogModel
	query := r.db.WithContext(ctx).Order("performed_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&logModels).Error; err != nil {
		return nil, err
	}
	entries := make([]backup.LogEntry, len(logModels))
	for i, model := range logModels {
		entries[i] = *model.ToDomain()
	}
	return entries, nil
}
