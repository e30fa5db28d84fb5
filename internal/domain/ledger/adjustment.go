package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/mls/backend/internal/domain/shared"
	"github.com/mls/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// UtilitiesAdjustment reconciles a year of utilities provisions against
// the real charges billed by the building. At most one adjustment exists
// per flat, reference year and tenant; the total is always derived from
// the three charge lines, never stored.
type UtilitiesAdjustment struct {
	shared.BaseAggregateRoot
	FlatID         uuid.UUID          `json:"flat_id"`
	TenantID       uuid.UUID          `json:"tenant_id"`
	ReferenceYear  int                `json:"reference_year"`
	ReferenceMonth *valueobject.Month `json:"reference_month"`
	LiftAmount     decimal.Decimal    `json:"lift_amount"`
	HeatingAmount  decimal.Decimal    `json:"heating_amount"`
	OtherAmount    decimal.Decimal    `json:"other_amount"`
	IsPaid         bool               `json:"is_paid"`
	PaymentDate    *time.Time         `json:"payment_date"`
	Notes          string             `json:"notes"`
}

// NewUtilitiesAdjustment creates a new adjustment for a flat and year
func NewUtilitiesAdjustment(flatID, tenantID uuid.UUID, referenceYear int, lift, heating, other valueobject.Money) (*UtilitiesAdjustment, error) {
	if flatID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_FLAT", "Flat ID cannot be empty")
	}
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	if referenceYear < 1900 || referenceYear > time.Now().Year()+1 {
		return nil, shared.NewDomainError("INVALID_YEAR", "Reference year is out of range")
	}
	if lift.IsNegative() || heating.IsNegative() || other.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Charge amounts cannot be negative")
	}

	return &UtilitiesAdjustment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		FlatID:            flatID,
		TenantID:          tenantID,
		ReferenceYear:     referenceYear,
		LiftAmount:        lift.Amount(),
		HeatingAmount:     heating.Amount(),
		OtherAmount:       other.Amount(),
	}, nil
}

// TotalCharges returns the sum of the three charge lines
func (a *UtilitiesAdjustment) TotalCharges() decimal.Decimal {
	return a.LiftAmount.Add(a.HeatingAmount).Add(a.OtherAmount)
}

// GetTotalChargesMoney returns the total charges as Money
func (a *UtilitiesAdjustment) GetTotalChargesMoney() valueobject.Money {
	return valueobject.NewMoneyEUR(a.TotalCharges())
}

// Balance computes the utilities balance for this adjustment given the
// utilities actually paid over the reference year. Positive means the
// tenant overpaid and is owed money back.
func (a *UtilitiesAdjustment) Balance(yearlyUtilitiesPaid decimal.Decimal) decimal.Decimal {
	return UtilitiesBalance(yearlyUtilitiesPaid, a.TotalCharges())
}

// UpdateCharges replaces the three charge lines
func (a *UtilitiesAdjustment) UpdateCharges(lift, heating, other valueobject.Money) error {
	if lift.IsNegative() || heating.IsNegative() || other.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Charge amounts cannot be negative")
	}
	a.LiftAmount = lift.Amount()
	a.HeatingAmount = heating.Amount()
	a.OtherAmount = other.Amount()
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
	return nil
}

// SetReferenceMonth records the month the adjustment was billed in
func (a *UtilitiesAdjustment) SetReferenceMonth(month valueobject.Month) {
	a.ReferenceMonth = &month
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
}

// MarkPaid records settlement of the adjustment
func (a *UtilitiesAdjustment) MarkPaid(paymentDate time.Time) error {
	if a.IsPaid {
		return shared.NewDomainError("INVALID_STATE", "Adjustment is already settled")
	}
	if paymentDate.IsZero() {
		paymentDate = time.Now()
	}
	a.IsPaid = true
	a.PaymentDate = &paymentDate
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
	return nil
}

// CoversMonth reports whether the adjustment belongs to the given
// ledger month (same year and billed month).
func (a *UtilitiesAdjustment) CoversMonth(month valueobject.Month) bool {
	if a.ReferenceYear != month.Year() {
		return false
	}
	return a.ReferenceMonth != nil && a.ReferenceMonth.Month() == month.Month()
}
