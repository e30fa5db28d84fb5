package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mls/backend/internal/domain/shared"
	"github.com/mls/backend/internal/domain/tenancy"
	"github.com/mls/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTenantRepository implements tenancy.TenantRepository using GORM
type GormTenantRepository struct {
	db *gorm.DB
}

// NewGormTenantRepository creates a new GormTenantRepository
func NewGormTenantRepository(db *gorm.DB) *GormTenantRepository {
	return &GormTenantRepository{db: db}
}

// FindByID finds a tenant by its ID
func (r *GormTenantRepository) FindByID(ctx context.Context, id uuid.UUID) (*tenancy.Tenant, error) {
	var model models.TenantModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all tenants with filtering
func (r *GormTenantRepository) FindAll(ctx context.Context, filter shared.Filter) ([]tenancy.Tenant, error) {
	var tenantModels []models.TenantModel
	query := r.db.WithContext(ctx).Model(&models.TenantModel{})
	query = applyTenantFilter(query, filter)

	sortField := ValidateSortField(filter.OrderBy, TenantSortFields, "created_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))
	query = applyPagination(query, filter)

	if err := query.Find(&tenantModels).Error; err != nil {
		return nil, err
	}
	return tenantModelsToDomain(tenantModels), nil
}

// FindActiveByFlat returns the current occupant of the flat
func (r *GormTenantRepository) FindActiveByFlat(ctx context.Context, flatID uuid.UUID) (*tenancy.Tenant, error) {
	var model models.TenantModel
	if err := r.db.WithContext(ctx).
		Where("flat_id = ? AND is_active = ?", flatID, true).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindActiveByFlatForUpdate locks the active occupant row for the duration
// of the surrounding transaction. Callers must run inside WithTx.
func (r *GormTenantRepository) FindActiveByFlatForUpdate(ctx context.Context, flatID uuid.UUID) (*tenancy.Tenant, error) {
	var model models.TenantModel
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("flat_id = ? AND is_active = ?", flatID, true).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindActive returns all tenants currently occupying a flat
func (r *GormTenantRepository) FindActive(ctx context.Context) ([]tenancy.Tenant, error) {
	var tenantModels []models.TenantModel
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("last_name ASC").
		Find(&tenantModels).Error; err != nil {
		return nil, err
	}
	return tenantModelsToDomain(tenantModels), nil
}

// FindUnassigned returns tenants without an active flat assignment
func (r *GormTenantRepository) FindUnassigned(ctx context.Context) ([]tenancy.Tenant, error) {
	var tenantModels []models.TenantModel
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", false).
		Order("last_name ASC").
		Find(&tenantModels).Error; err != nil {
		return nil, err
	}
	return tenantModelsToDomain(tenantModels), nil
}

// LastEndDateByFlat returns the latest end date among former occupants
func (r *GormTenantRepository) LastEndDateByFlat(ctx context.Context, flatID uuid.UUID) (*time.Time, error) {
	var result struct {
		Last *time.Time
	}
	if err := r.db.WithContext(ctx).Model(&models.TenantModel{}).
		Select("MAX(end_date) as last").
		Where("flat_id = ? AND end_date IS NOT NULL", flatID).
		Scan(&result).Error; err != nil {
		return nil, err
	}
	return result.Last, nil
}

// Save creates or updates a tenant
func (r *GormTenantRepository) Save(ctx context.Context, tenant *tenancy.Tenant) error {
	model := models.TenantModelFromDomain(tenant)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes a tenant
func (r *GormTenantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.TenantModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts tenants matching the filter
func (r *GormTenantRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.TenantModel{})
	query = applyTenantFilter(query, filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// WithTx returns a repository bound to the given transaction
func (r *GormTenantRepository) WithTx(tx *gorm.DB) *GormTenantRepository {
	return &GormTenantRepository{db: tx}
}

func applyTenantFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("(first_name LIKE ? OR last_name LIKE ? OR email LIKE ?)", pattern, pattern, pattern)
	}
	if active, ok := filter.Filters["is_active"]; ok {
		query = query.Where("is_active = ?", active)
	}
	if flatID, ok := filter.Filters["flat_id"]; ok {
		query = query.Where("flat_id = ?", flatID)
	}
	if status, ok := filter.Filters["status"]; ok {
		switch tenancy.TenantStatus(fmt.Sprint(status)) {
		case tenancy.TenantStatusActive:
			query = query.Where("is_active = ?", true)
		case tenancy.TenantStatusFormer:
			query = query.Where("is_active = ? AND end_date IS NOT NULL", false)
		case tenancy.TenantStatusProspective:
			query = query.Where("is_active = ? AND end_date IS NULL", false)
		}
	}
	return query
}

func applyPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.PageSize > 0 {
		query = query.Limit(filter.PageSize)
		offset := (filter.Page - 1) * filter.PageSize
		if offset > 0 {
			query = query.Offset(offset)
		}
	}
	return query
}

func tenantModelsToDomain(tenantModels []models.TenantModel) []tenancy.Tenant {
	tenants := make([]tenancy.Tenant, len(tenantModels))
	for i, model := range tenantModels {
		tenants[i] = *model.ToDomain()
	}
	return tenants
}
