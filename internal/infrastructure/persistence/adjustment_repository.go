package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mls/backend/internal/domain/ledger"
	"github.com/mls/backend/internal/domain/shared"
	"github.com/mls/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormAdjustmentRepository implements ledger.AdjustmentRepository using GORM
type GormAdjustmentRepository struct {
	db *gorm.DB
}

// NewGormAdjustmentRepository creates a new GormAdjustmentRepository
func NewGormAdjustmentRepository(db *gorm.DB) *GormAdjustmentRepository {
	return &GormAdjustmentRepository{db: db}
}

// FindByID finds an adjustment by its ID
func (r *GormAdjustmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.UtilitiesAdjustment, error) {
	var model models.AdjustmentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all adjustments with filtering
func (r *GormAdjustmentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ledger.UtilitiesAdjustment, error) {
	var adjustmentModels []models.AdjustmentModel
	query := r.db.WithContext(ctx).Model(&models.AdjustmentModel{})
	if flatID, ok := filter.Filters["flat_id"]; ok {
		query = query.Where("flat_id = ?", flatID)
	}
	if year, ok := filter.Filters["reference_year"]; ok {
		query = query.Where("reference_year = ?", year)
	}

	sortField := ValidateSortField(filter.OrderBy, map[string]bool{
		"id": true, "created_at": true, "reference_year": true,
	}, "reference_year")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))
	query = applyPagination(query, filter)

	if err := query.Find(&adjustmentModels).Error; err != nil {
		return nil, err
	}
	return adjustmentModelsToDomain(adjustmentModels), nil
}

// FindByFlat finds adjustments for the given flat, newest year first
func (r *GormAdjustmentRepository) FindByFlat(ctx context.Context, flatID uuid.UUID) ([]ledger.UtilitiesAdjustment, error) {
	var adjustmentModels []models.AdjustmentModel
	if err := r.db.WithContext(ctx).
		Where("flat_id = ?", flatID).
		Order("reference_year DESC").
		Find(&adjustmentModels).Error; err != nil {
		return nil, err
	}
	return adjustmentModelsToDomain(adjustmentModels), nil
}

// FindByFlatAndTenant finds adjustments for one tenancy, newest year first
func (r *GormAdjustmentRepository) FindByFlatAndTenant(ctx context.Context, flatID, tenantID uuid.UUID) ([]ledger.UtilitiesAdjustment, error) {
	var adjustmentModels []models.AdjustmentModel
	if err := r.db.WithContext(ctx).
		Where("flat_id = ? AND tenant_id = ?", flatID, tenantID).
		Order("reference_year DESC").
		Find(&adjustmentModels).Error; err != nil {
		return nil, err
	}
	return adjustmentModelsToDomain(adjustmentModels), nil
}

// FindByFlatYearAndTenant finds the single adjustment for a flat, year and tenant
func (r *GormAdjustmentRepository) FindByFlatYearAndTenant(ctx context.Context, flatID uuid.UUID, year int, tenantID uuid.UUID) (*ledger.UtilitiesAdjustment, error) {
	var model models.AdjustmentModel
	if err := r.db.WithContext(ctx).
		Where("flat_id = ? AND reference_year = ? AND tenant_id = ?", flatID, year, tenantID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByYear finds adjustments across flats for a reference year
func (r *GormAdjustmentRepository) FindByYear(ctx context.Context, year int) ([]ledger.UtilitiesAdjustment, error) {
	var adjustmentModels []models.AdjustmentModel
	if err := r.db.WithContext(ctx).
		Where("reference_year = ?", year).
		Order("created_at DESC").
		Find(&adjustmentModels).Error; err != nil {
		return nil, err
	}
	return adjustmentModelsToDomain(adjustmentModels), nil
}

// FindLatestByFlat returns the flat's most recent adjustment by year
func (r *GormAdjustmentRepository) FindLatestByFlat(ctx context.Context, flatID uuid.UUID) (*ledger.UtilitiesAdjustment, error) {
	var model models.AdjustmentModel
	if err := r.db.WithContext(ctx).
		Where("flat_id = ?", flatID).
		Order("reference_year DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates an adjustment
func (r *GormAdjustmentRepository) Save(ctx context.Context, adjustment *ledger.UtilitiesAdjustment) error {
	model := models.AdjustmentModelFromDomain(adjustment)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes an adjustment
func (r *GormAdjustmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.AdjustmentModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts adjustments matching the filter
func (r *GormAdjustmentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.AdjustmentModel{})
	if flatID, ok := filter.Filters["flat_id"]; ok {
		query = query.Where("flat_id = ?", flatID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func adjustmentModelsToDomain(adjustmentModels []models.AdjustmentModel) []ledger.UtilitiesAdjustment {
	adjustments := make([]ledger.UtilitiesAdjustment, len(adjustmentModels))
	for i, model := range adjustmentModels {
		adjustments[i] = *model.ToDomain()
	}
	return adjustments
}
