package persistence

import (
	"github.com/mls/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// AutoMigrate creates or updates the schema for every persistence model
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.LandlordModel{},
		&models.ManagerModel{},
		&models.FlatModel{},
		&models.TenantModel{},
		&models.CommunicationModel{},
		&models.PaymentModel{},
		&models.AdjustmentModel{},
		&models.ExtraChargeModel{},
		&models.ExpenseModel{},
		&models.BackupLogModel{},
	)
}
