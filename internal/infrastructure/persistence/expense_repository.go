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

// GormExpenseRepository implements ledger.ExpenseRepository using GORM
type GormExpenseRepository struct {
	db *gorm.DB
}

// NewGormExpenseRepository creates a new GormExpenseRepository
func NewGormExpenseRepository(db *gorm.DB) *GormExpenseRepository {
	return &GormExpenseRepository{db: db}
}

// FindByID finds a landlord expense by its ID
func (r *GormExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.LandlordExpense, error) {
	var model models.ExpenseModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all landlord expenses with filtering
func (r *GormExpenseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ledger.LandlordExpense, error) {
	var expenseModels []models.ExpenseModel
	query := r.db.WithContext(ctx).Model(&models.ExpenseModel{})
	query = applyExpenseFilter(query, filter)

	sortField := ValidateSortField(filter.OrderBy, map[string]bool{
		"id": true, "created_at": true, "payment_date": true, "reference_year": true,
	}, "payment_date")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))
	query = applyPagination(query, filter)

	if err := query.Find(&expenseModels).Error; err != nil {
		return nil, err
	}
	return expenseModelsToDomain(expenseModels), nil
}

// FindByFlat finds expenses paid for the given flat, newest first
func (r *GormExpenseRepository) FindByFlat(ctx context.Context, flatID uuid.UUID) ([]ledger.LandlordExpense, error) {
	var expenseModels []models.ExpenseModel
	if err := r.db.WithContext(ctx).
		Where("flat_id = ?", flatID).
		Order("payment_date DESC").
		Find(&expenseModels).Error; err != nil {
		return nil, err
	}
	return expenseModelsToDomain(expenseModels), nil
}

// FindByFlatAndYear finds expenses for one flat and reference year
func (r *GormExpenseRepository) FindByFlatAndYear(ctx context.Context, flatID uuid.UUID, year int) ([]ledger.LandlordExpense, error) {
	var expenseModels []models.ExpenseModel
	if err := r.db.WithContext(ctx).
		Where("flat_id = ? AND reference_year = ?", flatID, year).
		Order("payment_date DESC").
		Find(&expenseModels).Error; err != nil {
		return nil, err
	}
	return expenseModelsToDomain(expenseModels), nil
}

// Save creates or updates a landlord expense
func (r *GormExpenseRepository) Save(ctx context.Context, expense *ledger.LandlordExpense) error {
	model := models.ExpenseModelFromDomain(expense)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes a landlord expense
func (r *GormExpenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ExpenseModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts landlord expenses matching the filter
func (r *GormExpenseRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.ExpenseModel{})
	query = applyExpenseFilter(query, filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func applyExpenseFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if flatID, ok := filter.Filters["flat_id"]; ok {
		query = query.Where("flat_id = ?", flatID)
	}
	if year, ok := filter.Filters["reference_year"]; ok {
		query = query.Where("reference_year = ?", year)
	}
	if expenseType, ok := filter.Filters["type"]; ok {
		query = query.Where("type = ?", expenseType)
	}
	return query
}

func expenseModelsToDomain(expenseModels []models.ExpenseModel) []ledger.LandlordExpense {
	expenses := make([]ledger.LandlordExpense, len(expenseModels))
	for i, model := range expenseModels {
		expenses[i] = *model.ToDomain()
	}
	return expenses
}
