package tenancy

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mls/backend/internal/domain/shared"
	"github.com/mls/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// TenantStatus represents where a tenant stands in their tenancy lifecycle
type TenantStatus string

const (
	TenantStatusProspective TenantStatus = "PROSPECTIVE" // Registered, never assigned a flat
	TenantStatusActive      TenantStatus = "ACTIVE"      // Currently occupying a flat
	TenantStatusFormer      TenantStatus = "FORMER"      // Tenancy ended
)

// IsValid checks if the status is a valid TenantStatus
func (s TenantStatus) IsValid() bool {
	switch s {
	case TenantStatusProspective, TenantStatusActive, TenantStatusFormer:
		return true
	}
	return false
}

// String returns the string representation of TenantStatus
func (s TenantStatus) String() string {
	return string(s)
}

// Tenant represents a renter aggregate root.
// A tenant occupies at most one flat at a time; former tenants keep their
// historical flat reference cleared but their payments remain on record.
type Tenant struct {
	shared.BaseAggregateRoot
	FirstName     string          `json:"first_name"`
	LastName      string          `json:"last_name"`
	Email         string          `json:"email"`
	Phone         *string         `json:"phone"`
	Address       string          `json:"address"`
	PostCode      string          `json:"post_code"`
	City          string          `json:"city"`
	DepositAmount decimal.Decimal `json:"deposit_amount"`
	FlatID        *uuid.UUID      `json:"flat_id"`
	StartDate     *time.Time      `json:"start_date"`
	EndDate       *time.Time      `json:"end_date"`
	IsActive      bool            `json:"is_active"`
}

// NewTenant creates a new prospective tenant
func NewTenant(firstName, lastName, email string) (*Tenant, error) {
	if strings.TrimSpace(firstName) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "First name cannot be empty")
	}
	if strings.TrimSpace(lastName) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Last name cannot be empty")
	}
	if strings.TrimSpace(email) == "" {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}

	return &Tenant{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		FirstName:         strings.TrimSpace(firstName),
		LastName:          strings.TrimSpace(lastName),
		Email:             strings.ToLower(strings.TrimSpace(email)),
		DepositAmount:     decimal.Zero,
		IsActive:          false,
	}, nil
}

// FullName returns the display name of the tenant
func (t *Tenant) FullName() string {
	return t.FirstName + " " + t.LastName
}

// Status derives the lifecycle status from the assignment fields
func (t *Tenant) Status() TenantStatus {
	switch {
	case t.IsActive && t.FlatID != nil:
		return TenantStatusActive
	case t.EndDate != nil:
		return TenantStatusFormer
	default:
		return TenantStatusProspective
	}
}

// AssignFlat moves the tenant into a flat starting at the given date.
// Re-assignment from another flat is allowed; the previous occupancy is
// closed by the application service before this is called.
func (t *Tenant) AssignFlat(flatID uuid.UUID, startDate time.Time) error {
	if flatID == uuid.Nil {
		return shared.NewDomainError("INVALID_FLAT", "Flat ID cannot be empty")
	}
	if startDate.IsZero() {
		return shared.NewDomainError("INVALID_DATE", "Start date cannot be empty")
	}

	t.FlatID = &flatID
	t.StartDate = &startDate
	t.EndDate = nil
	t.IsActive = true
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	t.AddDomainEvent(NewFlatAssignedEvent(t, flatID, startDate))

	return nil
}

// EndTenancy closes the tenancy at the given date. The flat reference is
// cleared so the flat shows as vacant; ledger rows keep their flat keys.
func (t *Tenant) EndTenancy(endDate time.Time) error {
	if !t.IsActive || t.FlatID == nil {
		return shared.NewDomainError("INVALID_STATE", "Tenant has no active tenancy to end")
	}
	if endDate.IsZero() {
		return shared.NewDomainError("INVALID_DATE", "End date cannot be empty")
	}
	if t.StartDate != nil && endDate.Before(*t.StartDate) {
		return shared.NewDomainError("INVALID_DATE", "End date cannot precede start date")
	}

	flatID := *t.FlatID
	t.FlatID = nil
	t.EndDate = &endDate
	t.IsActive = false
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	t.AddDomainEvent(NewTenancyEndedEvent(t, flatID, endDate))

	return nil
}

// Displace closes the current occupancy because another tenant moved in.
// Unlike EndTenancy it keeps the flat reference for the payment history.
func (t *Tenant) Displace(endDate time.Time) {
	t.EndDate = &endDate
	t.IsActive = false
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
}

// SetDeposit records the security deposit held for this tenant
func (t *Tenant) SetDeposit(deposit valueobject.Money) error {
	if deposit.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Deposit cannot be negative")
	}
	t.DepositAmount = deposit.Amount()
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
	return nil
}

// GetDepositMoney returns the deposit as Money
func (t *Tenant) GetDepositMoney() valueobject.Money {
	return valueobject.NewMoneyEUR(t.DepositAmount)
}

// StartMonth returns the month the tenancy began, or zero when unassigned
func (t *Tenant) StartMonth() valueobject.Month {
	if t.StartDate == nil {
		return valueobject.Month{}
	}
	return valueobject.MonthOf(*t.StartDate)
}
