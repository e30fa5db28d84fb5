package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mls/backend/internal/domain/ledger"
	"github.com/mls/backend/internal/domain/shared"
	"github.com/mls/backend/internal/domain/shared/valueobject"
	"github.com/mls/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormExtraChargeRepository implements ledger.ExtraChargeRepository using GORM
type GormExtraChargeRepository struct {
	db *gorm.DB
}

// NewGormExtraChargeRepository creates a new GormExtraChargeRepository
func NewGormExtraChargeRepository(db *gorm.DB) *GormExtraChargeRepository {
	return &GormExtraChargeRepository{db: db}
}

// FindByID finds an extra charge by its ID
func (r *GormExtraChargeRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.ExtraCharge, error) {
	var model models.ExtraChargeModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all extra charges with filtering
func (r *GormExtraChargeRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ledger.ExtraCharge, error) {
	var chargeModels []models.ExtraChargeModel
	query := r.db.WithContext(ctx).Model(&models.ExtraChargeModel{})
	if tenantID, ok := filter.Filters["tenant_id"]; ok {
		query = query.Where("tenant_id = ?", tenantID)
	}
	if flatID, ok := filter.Filters["flat_id"]; ok {
		query = query.Where("flat_id = ?", flatID)
	}

	sortField := ValidateSortField(filter.OrderBy, map[string]bool{
		"id": true, "created_at": true, "reference_month": true,
	}, "reference_month")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))
	query = applyPagination(query, filter)

	if err := query.Find(&chargeModels).Error; err != nil {
		return nil, err
	}
	return chargeModelsToDomain(chargeModels), nil
}

// FindByTenant finds extra charges billed to the given tenant
func (r *GormExtraChargeRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID) ([]ledger.ExtraCharge, error) {
	var chargeModels []models.ExtraChargeModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("reference_month DESC").
		Find(&chargeModels).Error; err != nil {
		return nil, err
	}
	return chargeModelsToDomain(chargeModels), nil
}

// FindByFlat finds extra charges billed for the given flat
func (r *GormExtraChargeRepository) FindByFlat(ctx context.Context, flatID uuid.UUID) ([]ledger.ExtraCharge, error) {
	var chargeModels []models.ExtraChargeModel
	if err := r.db.WithContext(ctx).
		Where("flat_id = ?", flatID).
		Order("reference_month DESC").
		Find(&chargeModels).Error; err != nil {
		return nil, err
	}
	return chargeModelsToDomain(chargeModels), nil
}

// FindByTenantAndMonth finds extra charges for one ledger month
func (r *GormExtraChargeRepository) FindByTenantAndMonth(ctx context.Context, tenantID uuid.UUID, month valueobject.Month) ([]ledger.ExtraCharge, error) {
	var chargeModels []models.ExtraChargeModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND reference_month = ?", tenantID, month.Date()).
		Find(&chargeModels).Error; err != nil {
		return nil, err
	}
	return chargeModelsToDomain(chargeModels), nil
}

// Save creates or updates an extra charge
func (r *GormExtraChargeRepository) Save(ctx context.Context, charge *ledger.ExtraCharge) error {
	model := models.ExtraChargeModelFromDomain(charge)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes an extra charge
func (r *GormExtraChargeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ExtraChargeModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts extra charges matching the filter
func (r *GormExtraChargeRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.ExtraChargeModel{})
	if tenantID, ok := filter.Filters["tenant_id"]; ok {
		query = query.Where("tenant_id = ?", tenantID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func chargeModelsToDomain(chargeModels []models.ExtraChargeModel) []ledger.ExtraCharge {
	charges := make([]ledger.ExtraCharge, len(chargeModels))
	for i, model := range chargeModels {
		charges[i] = *model.ToDomain()
	}
	return charges
}
