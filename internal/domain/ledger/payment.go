package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/mls/backend/internal/domain/shared"
	"github.com/mls/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// PaymentType represents what a payment covers
type PaymentType string

const (
	PaymentTypeRent             PaymentType = "RENT"
	PaymentTypeChargeAdjustment PaymentType = "CHARGE_ADJUSTMENT"
	PaymentTypeOther            PaymentType = "OTHER"
)

// IsValid checks if the type is a valid PaymentType
func (p PaymentType) IsValid() bool {
	switch p {
	case PaymentTypeRent, PaymentTypeChargeAdjustment, PaymentTypeOther:
		return true
	}
	return false
}

// String returns the string representation of PaymentType
func (p PaymentType) String() string {
	return string(p)
}

// Payment records money received from a tenant for a flat.
// Amount is the rent part, UtilitiesAmount the provision part and
// AmountPaid what was actually transferred. PaymentMonth is the ledger
// month the payment settles; several payments may share one month, so
// aggregations always sum rather than assume a single row.
type Payment struct {
	shared.BaseAggregateRoot
	TenantID        uuid.UUID          `json:"tenant_id"`
	FlatID          uuid.UUID          `json:"flat_id"`
	Type            PaymentType        `json:"type"`
	Amount          decimal.Decimal    `json:"amount"`
	UtilitiesAmount decimal.Decimal    `json:"utilities_amount"`
	AmountPaid      decimal.Decimal    `json:"amount_paid"`
	PaymentDate     time.Time          `json:"payment_date"`
	PaymentMonth    *valueobject.Month `json:"payment_month"`
	Notes           string             `json:"notes"`
}

// NewPayment records a payment received from a tenant
func NewPayment(tenantID, flatID uuid.UUID, paymentType PaymentType, amountPaid valueobject.Money, paymentDate time.Time) (*Payment, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	if flatID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_FLAT", "Flat ID cannot be empty")
	}
	if !paymentType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TYPE", "Payment type is not valid")
	}
	if amountPaid.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount paid cannot be negative")
	}
	if paymentDate.IsZero() {
		paymentDate = time.Now()
	}

	return &Payment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		TenantID:          tenantID,
		FlatID:            flatID,
		Type:              paymentType,
		Amount:            decimal.Zero,
		UtilitiesAmount:   decimal.Zero,
		AmountPaid:        amountPaid.Amount(),
		PaymentDate:       paymentDate,
	}, nil
}

// SetBreakdown splits the payment into its rent and utilities parts
func (p *Payment) SetBreakdown(rent, utilities valueobject.Money) error {
	if rent.IsNegative() || utilities.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Breakdown amounts cannot be negative")
	}
	p.Amount = rent.Amount()
	p.UtilitiesAmount = utilities.Amount()
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// SetPaymentMonth ties the payment to the ledger month it settles
func (p *Payment) SetPaymentMonth(month valueobject.Month) {
	p.PaymentMonth = &month
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// GetAmountPaidMoney returns the transferred amount as Money
func (p *Payment) GetAmountPaidMoney() valueobject.Money {
	return valueobject.NewMoneyEUR(p.AmountPaid)
}

// GetUtilitiesMoney returns the utilities part as Money
func (p *Payment) GetUtilitiesMoney() valueobject.Money {
	return valueobject.NewMoneyEUR(p.UtilitiesAmount)
}

// CoversMonth reports whether this payment settles the given month
func (p *Payment) CoversMonth(month valueobject.Month) bool {
	return p.PaymentMonth != nil && p.PaymentMonth.Equals(month)
}
