package property

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mls/backend/internal/domain/shared"
	"github.com/mls/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Flat represents a rentable unit aggregate root.
// RentAmount is the base rent; UtilitiesAmount is the monthly utilities
// provision paid on top of it and later reconciled against real charges.
type Flat struct {
	shared.BaseAggregateRoot
	Name            string          `json:"name"`
	Address         string          `json:"address"`
	PostCode        string          `json:"post_code"`
	City            string          `json:"city"`
	Rooms           int             `json:"rooms"`
	FloorArea       decimal.Decimal `json:"floor_area"`
	RentAmount      decimal.Decimal `json:"rent_amount"`
	UtilitiesAmount decimal.Decimal `json:"utilities_amount"`
	LandlordID      uuid.UUID       `json:"landlord_id"`
	ManagerID       *uuid.UUID      `json:"manager_id"`
}

// NewFlat creates a new flat owned by the given landlord
func NewFlat(name string, landlordID uuid.UUID, rent, utilities valueobject.Money) (*Flat, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Flat name cannot be empty")
	}
	if landlordID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_LANDLORD", "Landlord ID cannot be empty")
	}
	if rent.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Rent amount cannot be negative")
	}
	if utilities.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Utilities amount cannot be negative")
	}

	return &Flat{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		LandlordID:        landlordID,
		RentAmount:        rent.Amount(),
		UtilitiesAmount:   utilities.Amount(),
	}, nil
}

// TotalMonthlyAmount returns rent plus the utilities provision
func (f *Flat) TotalMonthlyAmount() valueobject.Money {
	return valueobject.NewMoneyEUR(f.RentAmount.Add(f.UtilitiesAmount))
}

// GetRentMoney returns the rent as Money
func (f *Flat) GetRentMoney() valueobject.Money {
	return valueobject.NewMoneyEUR(f.RentAmount)
}

// GetUtilitiesMoney returns the utilities provision as Money
func (f *Flat) GetUtilitiesMoney() valueobject.Money {
	return valueobject.NewMoneyEUR(f.UtilitiesAmount)
}

// UpdateRent changes the rent and utilities provision
func (f *Flat) UpdateRent(rent, utilities valueobject.Money) error {
	if rent.IsNegative() || utilities.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Amounts cannot be negative")
	}
	f.RentAmount = rent.Amount()
	f.UtilitiesAmount = utilities.Amount()
	f.UpdatedAt = time.Now()
	f.IncrementVersion()
	return nil
}

// UpdateAddress updates the postal address
func (f *Flat) UpdateAddress(address, postCode, city string) {
	f.Address = address
	f.PostCode = postCode
	f.City = city
	f.UpdatedAt = time.Now()
	f.IncrementVersion()
}

// AssignManager sets the managing agency; nil detaches it
func (f *Flat) AssignManager(managerID *uuid.UUID) {
	f.ManagerID = managerID
	f.UpdatedAt = time.Now()
	f.IncrementVersion()
}
