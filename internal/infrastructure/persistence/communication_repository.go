package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mls/backend/internal/domain/shared"
	"github.com/mls/backend/internal/domain/shared/valueobject"
	"github.com/mls/backend/internal/domain/tenancy"
	"github.com/mls/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCommunicationRepository implements tenancy.CommunicationRepository using GORM
type GormCommunicationRepository struct {
	db *gorm.DB
}

// NewGormCommunicationRepository creates a new GormCommunicationRepository
func NewGormCommunicationRepository(db *gorm.DB) *GormCommunicationRepository {
	return &GormCommunicationRepository{db: db}
}

// FindByID finds a communication by its ID
func (r *GormCommunicationRepository) FindByID(ctx context.Context, id uuid.UUID) (*tenancy.Communication, error) {
	var model models.CommunicationModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all communications with filtering
func (r *GormCommunicationRepository) FindAll(ctx context.Context, filter shared.Filter) ([]tenancy.Communication, error) {
	var commModels []models.CommunicationModel
	query := r.db.WithContext(ctx).Model(&models.CommunicationModel{})
	query = applyCommunicationFilter(query, filter)

	sortField := ValidateSortField(filter.OrderBy, map[string]bool{
		"id": true, "created_at": true, "date_sent": true,
	}, "date_sent")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))
	query = applyPagination(query, filter)

	if err := query.Find(&commModels).Error; err != nil {
		return nil, err
	}
	return communicationModelsToDomain(commModels), nil
}

// FindByTenant finds communications sent to the given tenant, newest first
func (r *GormCommunicationRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID) ([]tenancy.Communication, error) {
	var commModels []models.CommunicationModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("date_sent DESC").
		Find(&commModels).Error; err != nil {
		return nil, err
	}
	return communicationModelsToDomain(commModels), nil
}

// FindByTenantAndMonth finds communications referencing the given month
func (r *GormCommunicationRepository) FindByTenantAndMonth(ctx context.Context, tenantID uuid.UUID, month valueobject.Month) ([]tenancy.Communication, error) {
	var commModels []models.CommunicationModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND reference_month = ?", tenantID, month.Date()).
		Order("date_sent DESC").
		Find(&commModels).Error; err != nil {
		return nil, err
	}
	return communicationModelsToDomain(commModels), nil
}

// FindByTenantTypeAndMonth finds communications of one type for one month
func (r *GormCommunicationRepository) FindByTenantTypeAndMonth(ctx context.Context, tenantID uuid.UUID, commType tenancy.CommunicationType, month valueobject.Month) ([]tenancy.Communication, error) {
	var commModels []models.CommunicationModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND type = ? AND reference_month = ?", tenantID, commType.String(), month.Date()).
		Order("date_sent DESC").
		Find(&commModels).Error; err != nil {
		return nil, err
	}
	return communicationModelsToDomain(commModels), nil
}

// Save creates or updates a communication
func (r *GormCommunicationRepository) Save(ctx context.Context, comm *tenancy.Communication) error {
	model := models.CommunicationModelFromDomain(comm)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes a communication
func (r *GormCommunicationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.CommunicationModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts communications matching the filter
func (r *GormCommunicationRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.CommunicationModel{})
	query = applyCommunicationFilter(query, filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func applyCommunicationFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if tenantID, ok := filter.Filters["tenant_id"]; ok {
		query = query.Where("tenant_id = ?", tenantID)
	}
	if commType, ok := filter.Filters["type"]; ok {
		query = query.Where("type = ?", commType)
	}
	return query
}

func communicationModelsToDomain(commModels []models.CommunicationModel) []tenancy.Communication {
	comms := make([]tenancy.Communication, len(commModels))
	for i, model := range commModels {
		comms[i] = *model.ToDomain()
	}
	return comms
}
