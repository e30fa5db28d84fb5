package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/mls/backend/internal/domain/property"
	"github.com/mls/backend/internal/domain/shared"
	"github.com/mls/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormLandlordRepository implements property.LandlordRepository using GORM
type GormLandlordRepository struct {
	db *gorm.DB
}

// NewGormLandlordRepository creates a new GormLandlordRepository
func NewGormLandlordRepository(db *gorm.DB) *GormLandlordRepository {
	return &GormLandlordRepository{db: db}
}

// FindByID finds a landlord by its ID
func (r *GormLandlordRepository) FindByID(ctx context.Context, id uuid.UUID) (*property.Landlord, error) {
	var model models.LandlordModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByEmail finds a landlord by email
func (r *GormLandlordRepository) FindByEmail(ctx context.Context, email string) (*property.Landlord, error) {
	var model models.LandlordModel
	if err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCity finds landlords in the given city
func (r *GormLandlordRepository) FindByCity(ctx context.Context, city string) ([]property.Landlord, error) {
	var landlordModels []models.LandlordModel
	if err := r.db.WithContext(ctx).
		Where("city = ?", city).
		Order("last_name ASC").
		Find(&landlordModels).Error; err != nil {
		return nil, err
	}
	return landlordModelsToDomain(landlordModels), nil
}

// FindAll finds all landlords with filtering
func (r *GormLandlordRepository) FindAll(ctx context.Context, filter shared.Filter) ([]property.Landlord, error) {
	var landlordModels []models.LandlordModel
	query := r.db.WithContext(ctx).Model(&models.LandlordModel{})
	query = applyLandlordFilter(query, filter)

	sortField := ValidateSortField(filter.OrderBy, CommonSortFields, "created_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))
	query = applyPagination(query, filter)

	if err := query.Find(&landlordModels).Error; err != nil {
		return nil, err
	}
	return landlordModelsToDomain(landlordModels), nil
}

// Save creates or updates a landlord
func (r *GormLandlordRepository) Save(ctx context.Context, landlord *property.Landlord) error {
	model := models.LandlordModelFromDomain(landlord)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes a landlord
func (r *GormLandlordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.LandlordModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts landlords matching the filter
func (r *GormLandlordRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.LandlordModel{})
	query = applyLandlordFilter(query, filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func applyLandlordFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("(first_name LIKE ? OR last_name LIKE ? OR email LIKE ?)", pattern, pattern, pattern)
	}
	if city, ok := filter.Filters["city"]; ok {
		query = query.Where("city = ?", city)
	}
	return query
}

func landlordModelsToDomain(landlordModels []models.LandlordModel) []property.Landlord {
	landlords := make([]property.Landlord, len(landlordModels))
	for i, model := range landlordModels {
		landlords[i] = *model.ToDomain()
	}
	return landlords
}
