package models

import (
	"time"

	"github.com/mls/backend/internal/domain/backup"
)

// BackupLogModel is the persistence model for backup log entries
type BackupLogModel struct {
	BaseModel
	Operation   string    `gorm:"size:20;not null"`
	Status      string    `gorm:"size:20;not null"`
	ObjectKey   string    `gorm:"size:512"`
	SizeBytes   int64     `gorm:"not null;default:0"`
	Details     string    `gorm:"type:text"`
	PerformedAt time.Time `gorm:"not null;index"`
}

// TableName returns the table name for BackupLogModel
func (BackupLogModel) TableName() string {
	return "backup_log"
}

// ToDomain converts BackupLogModel to domain LogEntry
func (m *BackupLogModel) ToDomain() *backup.LogEntry {
	return &backup.LogEntry{
		BaseEntity:  m.BaseModel.ToDomain(),
		Operation:   backup.Operation(m.Operation),
		Status:      backup.Status(m.Status),
		ObjectKey:   m.ObjectKey,
		SizeBytes:   m.SizeBytes,
		Details:     m.Details,
		PerformedAt: m.PerformedAt,
	}
}

// BackupLogModelFromDomain creates a BackupLogModel from domain LogEntry
func BackupLogModelFromDomain(e *backup.LogEntry) *BackupLogModel {
	m := &BackupLogModel{
		Operation:   string(e.Operation),
		Status:      string(e.Status),
		ObjectKey:   e.ObjectKey,
		SizeBytes:   e.SizeBytes,
		Details:     e.Details,
		PerformedAt: e.PerformedAt,
	}
	m.FromDomainBaseEntity(e.BaseEntity)
	return m
}
