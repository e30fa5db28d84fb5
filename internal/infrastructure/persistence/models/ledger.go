package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/mls/backend/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

// PaymentModel is the persistence model for payments
type PaymentModel struct {
	AggregateModel
	TenantID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	FlatID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type            string          `gorm:"size:50;not null"`
	Amount          decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	UtilitiesAmount decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	AmountPaid      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	PaymentDate     time.Time       `gorm:"not null;index"`
	PaymentMonth    *time.Time      `gorm:"type:date;index"`
	Notes           string          `gorm:"type:text"`
}

// TableName returns the table name for PaymentModel
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts PaymentModel to domain Payment
func (m *PaymentModel) ToDomain() *ledger.Payment {
	return &ledger.Payment{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		TenantID:          m.TenantID,
		FlatID:            m.FlatID,
		Type:              ledger.PaymentType(m.Type),
		Amount:            m.Amount,
		UtilitiesAmount:   m.UtilitiesAmount,
		AmountPaid:        m.AmountPaid,
		PaymentDate:       m.PaymentDate,
		PaymentMonth:      dateToMonth(m.PaymentMonth),
		Notes:             m.Notes,
	}
}

// PaymentModelFromDomain creates a PaymentModel from domain Payment
func PaymentModelFromDomain(p *ledger.Payment) *PaymentModel {
	m := &PaymentModel{
		TenantID:        p.TenantID,
		FlatID:          p.FlatID,
		Type:            p.Type.String(),
		Amount:          p.Amount,
		UtilitiesAmount: p.UtilitiesAmount,
		AmountPaid:      p.AmountPaid,
		PaymentDate:     p.PaymentDate,
		PaymentMonth:    monthToDate(p.PaymentMonth),
		Notes:           p.Notes,
	}
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	return m
}

// AdjustmentModel is the persistence model for utilities adjustments
type AdjustmentModel struct {
	AggregateModel
	FlatID         uuid.UUID       `gorm:"type:uuid;not null;index:idx_adjustments_flat_year"`
	TenantID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	ReferenceYear  int             `gorm:"not null;index:idx_adjustments_flat_year"`
	ReferenceMonth *time.Time      `gorm:"type:date"`
	LiftAmount     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	HeatingAmount  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	OtherAmount    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	IsPaid         bool            `gorm:"not null;default:false"`
	PaymentDate    *time.Time      `gorm:"type:date"`
	Notes          string          `gorm:"type:text"`
}

// TableName returns the table name for AdjustmentModel
func (AdjustmentModel) TableName() string {
	return "utilities_adjustments"
}

// ToDomain converts AdjustmentModel to domain UtilitiesAdjustment
func (m *AdjustmentModel) ToDomain() *ledger.UtilitiesAdjustment {
	return &ledger.UtilitiesAdjustment{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		FlatID:            m.FlatID,
		TenantID:          m.TenantID,
		ReferenceYear:     m.ReferenceYear,
		ReferenceMonth:    dateToMonth(m.ReferenceMonth),
		LiftAmount:        m.LiftAmount,
		HeatingAmount:     m.HeatingAmount,
		OtherAmount:       m.OtherAmount,
		IsPaid:            m.IsPaid,
		PaymentDate:       m.PaymentDate,
		Notes:             m.Notes,
	}
}

// AdjustmentModelFromDomain creates an AdjustmentModel from domain UtilitiesAdjustment
func AdjustmentModelFromDomain(a *ledger.UtilitiesAdjustment) *AdjustmentModel {
	m := &AdjustmentModel{
		FlatID:         a.FlatID,
		TenantID:       a.TenantID,
		ReferenceYear:  a.ReferenceYear,
		ReferenceMonth: monthToDate(a.ReferenceMonth),
		LiftAmount:     a.LiftAmount,
		HeatingAmount:  a.HeatingAmount,
		OtherAmount:    a.OtherAmount,
		IsPaid:         a.IsPaid,
		PaymentDate:    a.PaymentDate,
		Notes:          a.Notes,
	}
	m.FromDomainAggregateRoot(a.BaseAggregateRoot)
	return m
}

// ExtraChargeModel is the persistence model for extra charges
type ExtraChargeModel struct {
	AggregateModel
	TenantID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	FlatID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type           string          `gorm:"size:50;not null"`
	ChargeAmount   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	ReferenceMonth time.Time       `gorm:"type:date;not null;index"`
	Description    string          `gorm:"type:text"`
}

// TableName returns the table name for ExtraChargeModel
func (ExtraChargeModel) TableName() string {
	return "extra_charges"
}

// ToDomain converts ExtraChargeModel to domain ExtraCharge
func (m *ExtraChargeModel) ToDomain() *ledger.ExtraCharge {
	refMonth := dateToMonth(&m.ReferenceMonth)
	return &ledger.ExtraCharge{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		TenantID:          m.TenantID,
		FlatID:            m.FlatID,
		Type:              ledger.ExtraChargeType(m.Type),
		ChargeAmount:      m.ChargeAmount,
		ReferenceMonth:    *refMonth,
		Description:       m.Description,
	}
}

// ExtraChargeModelFromDomain creates an ExtraChargeModel from domain ExtraCharge
func ExtraChargeModelFromDomain(e *ledger.ExtraCharge) *ExtraChargeModel {
	m := &ExtraChargeModel{
		TenantID:       e.TenantID,
		FlatID:         e.FlatID,
		Type:           e.Type.String(),
		ChargeAmount:   e.ChargeAmount,
		ReferenceMonth: e.ReferenceMonth.Date(),
		Description:    e.Description,
	}
	m.FromDomainAggregateRoot(e.BaseAggregateRoot)
	return m
}

// ExpenseModel is the persistence model for landlord expenses
type ExpenseModel struct {
	AggregateModel
	FlatID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type           string          `gorm:"size:50;not null"`
	Amount         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PaymentDate    time.Time       `gorm:"type:date;not null"`
	ReferenceYear  int             `gorm:"not null;index"`
	ReferenceMonth *time.Time      `gorm:"type:date"`
	Description    string          `gorm:"type:text"`
	ReceiptKey     string          `gorm:"size:512"`
}

// TableName returns the table name for ExpenseModel
func (ExpenseModel) TableName() string {
	return "landlord_expenses"
}

// ToDomain converts ExpenseModel to domain LandlordExpense
func (m *ExpenseModel) ToDomain() *ledger.LandlordExpense {
	return &ledger.LandlordExpense{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		FlatID:            m.FlatID,
		Type:              ledger.LandlordExpenseType(m.Type),
		Amount:            m.Amount,
		PaymentDate:       m.PaymentDate,
		ReferenceYear:     m.ReferenceYear,
		ReferenceMonth:    dateToMonth(m.ReferenceMonth),
		Description:       m.Description,
		ReceiptKey:        m.ReceiptKey,
	}
}

// ExpenseModelFromDomain creates an ExpenseModel from domain LandlordExpense
func ExpenseModelFromDomain(e *ledger.LandlordExpense) *ExpenseModel {
	m := &ExpenseModel{
		FlatID:         e.FlatID,
		Type:           e.Type.String(),
		Amount:         e.Amount,
		PaymentDate:    e.PaymentDate,
		ReferenceYear:  e.ReferenceYear,
		ReferenceMonth: monthToDate(e.ReferenceMonth),
		Description:    e.Description,
		ReceiptKey:     e.ReceiptKey,
	}
	m.FromDomainAggregateRoot(e.BaseAggregateRoot)
	return m
}
