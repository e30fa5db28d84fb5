package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/mls/backend/internal/domain/shared"
	"github.com/mls/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// LandlordExpenseType represents the kind of cost borne by the landlord
type LandlordExpenseType string

const (
	LandlordExpenseTypePropertyTax LandlordExpenseType = "PROPERTY_TAX"
	LandlordExpenseTypeWorks       LandlordExpenseType = "WORKS"
	LandlordExpenseTypePlumbing    LandlordExpenseType = "PLUMBING"
	LandlordExpenseTypeCondoFees   LandlordExpenseType = "CONDO_FEES"
	LandlordExpenseTypeInsurance   LandlordExpenseType = "INSURANCE"
	LandlordExpenseTypeOther       LandlordExpenseType = "OTHER"
)

// IsValid checks if the type is a valid LandlordExpenseType
func (t LandlordExpenseType) IsValid() bool {
	switch t {
	case LandlordExpenseTypePropertyTax, LandlordExpenseTypeWorks,
		LandlordExpenseTypePlumbing, LandlordExpenseTypeCondoFees,
		LandlordExpenseTypeInsurance, LandlordExpenseTypeOther:
		return true
	}
	return false
}

// String returns the string representation of LandlordExpenseType
func (t LandlordExpenseType) String() string {
	return string(t)
}

// LandlordExpense records a cost paid by the landlord for a flat,
// kept for the yearly tax declaration.
type LandlordExpense struct {
	shared.BaseAggregateRoot
	FlatID         uuid.UUID           `json:"flat_id"`
	Type           LandlordExpenseType `json:"type"`
	Amount         decimal.Decimal     `json:"amount"`
	PaymentDate    time.Time           `json:"payment_date"`
	ReferenceYear  int                 `json:"reference_year"`
	ReferenceMonth *valueobject.Month  `json:"reference_month"`
	Description    string              `json:"description"`
	ReceiptKey     string              `json:"receipt_key"`
}

// NewLandlordExpense creates a new landlord expense
func NewLandlordExpense(flatID uuid.UUID, expenseType LandlordExpenseType, amount valueobject.Money, paymentDate time.Time, referenceYear int) (*LandlordExpense, error) {
	if flatID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_FLAT", "Flat ID cannot be empty")
	}
	if !expenseType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TYPE", "Expense type is not valid")
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Expense amount cannot be negative")
	}
	if paymentDate.After(time.Now()) {
		return nil, shared.NewDomainError("INVALID_DATE", "Payment date cannot be in the future")
	}
	if referenceYear < 1900 || referenceYear > time.Now().Year()+1 {
		return nil, shared.NewDomainError("INVALID_YEAR", "Reference year is out of range")
	}

	return &LandlordExpense{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		FlatID:            flatID,
		Type:              expenseType,
		Amount:            amount.Amount(),
		PaymentDate:       paymentDate,
		ReferenceYear:     referenceYear,
	}, nil
}

// GetAmountMoney returns the expense amount as Money
func (e *LandlordExpense) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyEUR(e.Amount)
}

// AttachReceipt stores the object key of the scanned receipt
func (e *LandlordExpense) AttachReceipt(key string) {
	e.ReceiptKey = key
	e.UpdatedAt = time.Now()
	e.IncrementVersion()
}

// SumExpenses returns the total of the given expenses
func SumExpenses(expenses []LandlordExpense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}
