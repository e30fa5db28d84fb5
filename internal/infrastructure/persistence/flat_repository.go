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

// GormFlatRepository implements property.FlatRepository using GORM
type GormFlatRepository struct {
	db *gorm.DB
}

// NewGormFlatRepository creates a new GormFlatRepository
func NewGormFlatRepository(db *gorm.DB) *GormFlatRepository {
	return &GormFlatRepository{db: db}
}

// FindByID finds a flat by its ID
func (r *GormFlatRepository) FindByID(ctx context.Context, id uuid.UUID) (*property.Flat, error) {
	var model models.FlatModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all flats with filtering
func (r *GormFlatRepository) FindAll(ctx context.Context, filter shared.Filter) ([]property.Flat, error) {
	var flatModels []models.FlatModel
	query := r.db.WithContext(ctx).Model(&models.FlatModel{})
	query = applyFlatFilter(query, filter)

	sortField := ValidateSortField(filter.OrderBy, FlatSortFields, "name")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))
	query = applyPagination(query, filter)

	if err := query.Find(&flatModels).Error; err != nil {
		return nil, err
	}
	return flatModelsToDomain(flatModels), nil
}

// FindByLandlord finds flats owned by the given landlord
func (r *GormFlatRepository) FindByLandlord(ctx context.Context, landlordID uuid.UUID) ([]property.Flat, error) {
	var flatModels []models.FlatModel
	if err := r.db.WithContext(ctx).
		Where("landlord_id = ?", landlordID).
		Order("name ASC").
		Find(&flatModels).Error; err != nil {
		return nil, err
	}
	return flatModelsToDomain(flatModels), nil
}

// CountByLandlord counts flats owned by the given landlord
func (r *GormFlatRepository) CountByLandlord(ctx context.Context, landlordID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.FlatModel{}).
		Where("landlord_id = ?", landlordID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindByCity finds flats in the given city
func (r *GormFlatRepository) FindByCity(ctx context.Context, city string) ([]property.Flat, error) {
	var flatModels []models.FlatModel
	if err := r.db.WithContext(ctx).
		Where("city = ?", city).
		Order("name ASC").
		Find(&flatModels).Error; err != nil {
		return nil, err
	}
	return flatModelsToDomain(flatModels), nil
}

// Save creates or updates a flat
func (r *GormFlatRepository) Save(ctx context.Context, flat *property.Flat) error {
	model := models.FlatModelFromDomain(flat)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes a flat
func (r *GormFlatRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.FlatModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts flats matching the filter
func (r *GormFlatRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.FlatModel{})
	query = applyFlatFilter(query, filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func applyFlatFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("(name LIKE ? OR address LIKE ? OR city LIKE ?)", pattern, pattern, pattern)
	}
	if landlordID, ok := filter.Filters["landlord_id"]; ok {
		query = query.Where("landlord_id = ?", landlordID)
	}
	if city, ok := filter.Filters["city"]; ok {
		query = query.Where("city = ?", city)
	}
	return query
}

func flatModelsToDomain(flatModels []models.FlatModel) []property.Flat {
	flats := make([]property.Flat, len(flatModels))
	for i, model := range flatModels {
		flats[i] = *model.ToDomain()
	}
	return flats
}
