package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/mls/backend/internal/domain/shared"
	"github.com/mls/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// PaymentRepository provides access to payment aggregates
type PaymentRepository interface {
	shared.Repository[Payment]
	FindByTenant(ctx context.Context, tenantID uuid.UUID) ([]Payment, error)
	FindByFlat(ctx context.Context, flatID uuid.UUID) ([]Payment, error)
	FindByTenantAndFlat(ctx context.Context, tenantID, flatID uuid.UUID) ([]Payment, error)
	FindByTenantAndMonth(ctx context.Context, tenantID uuid.UUID, month valueobject.Month) ([]Payment, error)
	// SumUtilitiesForYear totals the utilities part of all payments for
	// the flat whose payment month falls in the given year. A nil
	// tenantID sums across all tenants of the flat. Returns zero when
	// no payments match.
	SumUtilitiesForYear(ctx context.Context, flatID uuid.UUID, year int, tenantID *uuid.UUID) (decimal.Decimal, error)
}

// AdjustmentRepository provides access to utilities adjustments
type AdjustmentRepository interface {
	shared.Repository[UtilitiesAdjustment]
	FindByFlat(ctx context.Context, flatID uuid.UUID) ([]UtilitiesAdjustment, error)
	FindByFlatAndTenant(ctx context.Context, flatID, tenantID uuid.UUID) ([]UtilitiesAdjustment, error)
	FindByFlatYearAndTenant(ctx context.Context, flatID uuid.UUID, year int, tenantID uuid.UUID) (*UtilitiesAdjustment, error)
	FindByYear(ctx context.Context, year int) ([]UtilitiesAdjustment, error)
	// FindLatestByFlat returns the most recent adjustment by reference
	// year, or shared.ErrNotFound when the flat has none.
	FindLatestByFlat(ctx context.Context, flatID uuid.UUID) (*UtilitiesAdjustment, error)
}

// ExtraChargeRepository provides access to extra charges
type ExtraChargeRepository interface {
	shared.Repository[ExtraCharge]
	FindByTenant(ctx context.Context, tenantID uuid.UUID) ([]ExtraCharge, error)
	FindByFlat(ctx context.Context, flatID uuid.UUID) ([]ExtraCharge, error)
	FindByTenantAndMonth(ctx context.Context, tenantID uuid.UUID, month valueobject.Month) ([]ExtraCharge, error)
}

// ExpenseRepository provides access to landlord expenses
type ExpenseRepository interface {
	shared.Repository[LandlordExpense]
	FindByFlat(ctx context.Context, flatID uuid.UUID) ([]LandlordExpense, error)
	FindByFlatAndYear(ctx context.Context, flatID uuid.UUID, year int) ([]LandlordExpense, error)
}
