package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mls/backend/internal/domain/ledger"
	"github.com/mls/backend/internal/domain/shared"
	"github.com/mls/backend/internal/domain/shared/valueobject"
	"github.com/mls/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormPaymentRepository implements ledger.PaymentRepository using GORM
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// FindByID finds a payment by its ID
func (r *GormPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Payment, error) {
	var model models.PaymentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all payments with filtering
func (r *GormPaymentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ledger.Payment, error) {
	var paymentModels []models.PaymentModel
	query := r.db.WithContext(ctx).Model(&models.PaymentModel{})
	query = applyPaymentFilter(query, filter)

	sortField := ValidateSortField(filter.OrderBy, PaymentSortFields, "payment_date")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))
	query = applyPagination(query, filter)

	if err := query.Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	return paymentModelsToDomain(paymentModels), nil
}

// FindByTenant finds payments made by the given tenant, newest first
func (r *GormPaymentRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID) ([]ledger.Payment, error) {
	var paymentModels []models.PaymentModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("payment_date DESC").
		Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	return paymentModelsToDomain(paymentModels), nil
}

// FindByFlat finds payments received for the given flat, newest first
func (r *GormPaymentRepository) FindByFlat(ctx context.Context, flatID uuid.UUID) ([]ledger.Payment, error) {
	var paymentModels []models.PaymentModel
	if err := r.db.WithContext(ctx).
		Where("flat_id = ?", flatID).
		Order("payment_date DESC").
		Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	return paymentModelsToDomain(paymentModels), nil
}

// FindByTenantAndFlat finds payments for one tenancy, newest first
func (r *GormPaymentRepository) FindByTenantAndFlat(ctx context.Context, tenantID, flatID uuid.UUID) ([]ledger.Payment, error) {
	var paymentModels []models.PaymentModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND flat_id = ?", tenantID, flatID).
		Order("payment_date DESC").
		Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	return paymentModelsToDomain(paymentModels), nil
}

// FindByTenantAndMonth finds the tenant's payments settling the given month
func (r *GormPaymentRepository) FindByTenantAndMonth(ctx context.Context, tenantID uuid.UUID, month valueobject.Month) ([]ledger.Payment, error) {
	var paymentModels []models.PaymentModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND payment_month = ?", tenantID, month.Date()).
		Order("payment_date DESC").
		Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	return paymentModelsToDomain(paymentModels), nil
}

// SumUtilitiesForYear totals the utilities part of payments whose payment
// month falls in the given year. Returns zero when nothing matches.
func (r *GormPaymentRepository) SumUtilitiesForYear(ctx context.Context, flatID uuid.UUID, year int, tenantID *uuid.UUID) (decimal.Decimal, error) {
	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := time.Date(year+1, time.January, 1, 0, 0, 0, 0, time.UTC)

	var result struct {
		Total decimal.Decimal
	}
	query := r.db.WithContext(ctx).Model(&models.PaymentModel{}).
		Select("COALESCE(SUM(utilities_amount), 0) as total").
		Where("flat_id = ? AND payment_month >= ? AND payment_month < ?", flatID, yearStart, yearEnd)
	if tenantID != nil {
		query = query.Where("tenant_id = ?", *tenantID)
	}
	if err := query.Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// Save creates or updates a payment
func (r *GormPaymentRepository) Save(ctx context.Context, payment *ledger.Payment) error {
	model := models.PaymentModelFromDomain(payment)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes a payment
func (r *GormPaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.PaymentModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts payments matching the filter
func (r *GormPaymentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.PaymentModel{})
	query = applyPaymentFilter(query, filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func applyPaymentFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if tenantID, ok := filter.Filters["tenant_id"]; ok {
		query = query.Where("tenant_id = ?", tenantID)
	}
	if flatID, ok := filter.Filters["flat_id"]; ok {
		query = query.Where("flat_id = ?", flatID)
	}
	if paymentType, ok := filter.Filters["type"]; ok {
		query = query.Where("type = ?", paymentType)
	}
	return query
}

func paymentModelsToDomain(paymentModels []models.PaymentModel) []ledger.Payment {
	payments := make([]ledger.Payment, len(paymentModels))
	for i, model := range paymentModels {
		payments[i] = *model.ToDomain()
	}
	return payments
}
