package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/mls/backend/internal/domain/shared"
	"github.com/mls/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// ExtraChargeType represents the kind of one-off charge billed to a tenant
type ExtraChargeType string

const (
	ExtraChargeTypeHouseholdWaste ExtraChargeType = "HOUSEHOLD_WASTE"
	ExtraChargeTypeMaintenance    ExtraChargeType = "MAINTENANCE"
	ExtraChargeTypeOther          ExtraChargeType = "OTHER"
)

// IsValid checks if the type is a valid ExtraChargeType
func (e ExtraChargeType) IsValid() bool {
	switch e {
	case ExtraChargeTypeHouseholdWaste, ExtraChargeTypeMaintenance, ExtraChargeTypeOther:
		return true
	}
	return false
}

// String returns the string representation of ExtraChargeType
func (e ExtraChargeType) String() string {
	return string(e)
}

// ExtraCharge is a one-off amount billed to a tenant on top of the rent,
// keyed to the ledger month it appears in.
type ExtraCharge struct {
	shared.BaseAggregateRoot
	TenantID       uuid.UUID         `json:"tenant_id"`
	FlatID         uuid.UUID         `json:"flat_id"`
	Type           ExtraChargeType   `json:"type"`
	ChargeAmount   decimal.Decimal   `json:"charge_amount"`
	ReferenceMonth valueobject.Month `json:"reference_month"`
	Description    string            `json:"description"`
}

// NewExtraCharge creates a new extra charge
func NewExtraCharge(tenantID, flatID uuid.UUID, chargeType ExtraChargeType, amount valueobject.Money, referenceMonth valueobject.Month) (*ExtraCharge, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	if flatID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_FLAT", "Flat ID cannot be empty")
	}
	if !chargeType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TYPE", "Extra charge type is not valid")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Charge amount must be positive")
	}
	if referenceMonth.IsZero() {
		return nil, shared.NewDomainError("INVALID_MONTH", "Reference month cannot be empty")
	}

	return &ExtraCharge{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		TenantID:          tenantID,
		FlatID:            flatID,
		Type:              chargeType,
		ChargeAmount:      amount.Amount(),
		ReferenceMonth:    referenceMonth,
	}, nil
}

// GetChargeMoney returns the charge amount as Money
func (e *ExtraCharge) GetChargeMoney() valueobject.Money {
	return valueobject.NewMoneyEUR(e.ChargeAmount)
}

// UpdateAmount replaces the charge amount
func (e *ExtraCharge) UpdateAmount(amount valueobject.Money) error {
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Charge amount must be positive")
	}
	e.ChargeAmount = amount.Amount()
	e.UpdatedAt = time.Now()
	e.IncrementVersion()
	return nil
}

// SumExtraCharges returns the total of the given charges
func SumExtraCharges(charges []ExtraCharge) decimal.Decimal {
	total := decimal.Zero
	for _, c := range charges {
		total = total.Add(c.ChargeAmount)
	}
	return total
}
