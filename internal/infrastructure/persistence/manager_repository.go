package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mls/backend/internal/domain/property"
	"github.com/mls/backend/internal/domain/shared"
	"github.com/mls/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormManagerRepository implements property.ManagerRepository using GORM
type GormManagerRepository struct {
	db *gorm.DB
}

// NewGormManagerRepository creates a new GormManagerRepository
func NewGormManagerRepository(db *gorm.DB) *GormManagerRepository {
	return &GormManagerRepository{db: db}
}

// FindByID finds a building manager by its ID
func (r *GormManagerRepository) FindByID(ctx context.Context, id uuid.UUID) (*property.BuildingManager, error) {
	var model models.ManagerModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all building managers with filtering
func (r *GormManagerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]property.BuildingManager, error) {
	var managerModels []models.ManagerModel
	query := r.db.WithContext(ctx).Model(&models.ManagerModel{})
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name LIKE ?", pattern)
	}

	sortField := ValidateSortField(filter.OrderBy, CommonSortFields, "created_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))
	query = applyPagination(query, filter)

	if err := query.Find(&managerModels).Error; err != nil {
		return nil, err
	}
	managers := make([]property.BuildingManager, len(managerModels))
	for i, model := range managerModels {
		managers[i] = *model.ToDomain()
	}
	return managers, nil
}

// Save creates or updates a building manager
func (r *GormManagerRepository) Save(ctx context.Context, manager *property.BuildingManager) error {
	model := models.ManagerModelFromDomain(manager)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes a building manager
func (r *GormManagerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ManagerModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts building managers matching the filter
func (r *GormManagerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.ManagerModel{})
	if filter.Search != "" {
		query = query.Where("name LIKE ?", "%"+filter.Search+"%")
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
