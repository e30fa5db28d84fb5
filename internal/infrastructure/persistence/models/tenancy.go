package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/mls/backend/internal/domain/shared/valueobject"
	"github.com/mls/backend/internal/domain/tenancy"
	"github.com/shopspring/decimal"
)

// monthToDate converts an optional Month to its first-of-month date column
func monthToDate(m *valueobject.Month) *time.Time {
	if m == nil || m.IsZero() {
		return nil
	}
	d := m.Date()
	return &d
}

// dateToMonth converts an optional date column back to a Month
func dateToMonth(t *time.Time) *valueobject.Month {
	if t == nil {
		return nil
	}
	m := valueobject.MonthOf(*t)
	return &m
}

// TenantModel is the persistence model for tenants
type TenantModel struct {
	AggregateModel
	FirstName     string          `gorm:"size:100;not null"`
	LastName      string          `gorm:"size:100;not null"`
	Email         string          `gorm:"size:255;not null"`
	Phone         *string         `gorm:"size:50"`
	Address       string          `gorm:"size:255"`
	PostCode      string          `gorm:"size:20"`
	City          string          `gorm:"size:100"`
	DepositAmount decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	FlatID        *uuid.UUID      `gorm:"type:uuid;index"`
	StartDate     *time.Time      `gorm:"type:date"`
	EndDate       *time.Time      `gorm:"type:date"`
	IsActive      bool            `gorm:"not null;default:false;index"`
}

// TableName returns the table name for TenantModel
func (TenantModel) TableName() string {
	return "tenants"
}

// ToDomain converts TenantModel to domain Tenant
func (m *TenantModel) ToDomain() *tenancy.Tenant {
	return &tenancy.Tenant{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		FirstName:         m.FirstName,
		LastName:          m.LastName,
		Email:             m.Email,
		Phone:             m.Phone,
		Address:           m.Address,
		PostCode:          m.PostCode,
		City:              m.City,
		DepositAmount:     m.DepositAmount,
		FlatID:            m.FlatID,
		StartDate:         m.StartDate,
		EndDate:           m.EndDate,
		IsActive:          m.IsActive,
	}
}

// TenantModelFromDomain creates a TenantModel from domain Tenant
func TenantModelFromDomain(t *tenancy.Tenant) *TenantModel {
	m := &TenantModel{
		FirstName:     t.FirstName,
		LastName:      t.LastName,
		Email:         t.Email,
		Phone:         t.Phone,
		Address:       t.Address,
		PostCode:      t.PostCode,
		City:          t.City,
		DepositAmount: t.DepositAmount,
		FlatID:        t.FlatID,
		StartDate:     t.StartDate,
		EndDate:       t.EndDate,
		IsActive:      t.IsActive,
	}
	m.FromDomainAggregateRoot(t.BaseAggregateRoot)
	return m
}

// CommunicationModel is the persistence model for communications
type CommunicationModel struct {
	BaseModel
	TenantID       uuid.UUID  `gorm:"type:uuid;not null;index"`
	Type           string     `gorm:"size:50;not null"`
	DateSent       time.Time  `gorm:"not null;index"`
	ReferenceMonth *time.Time `gorm:"type:date;index"`
	Subject        string     `gorm:"size:255"`
	Notes          string     `gorm:"type:text"`
	PaymentID      *uuid.UUID `gorm:"type:uuid"`
	AdjustmentID   *uuid.UUID `gorm:"type:uuid"`
}

// TableName returns the table name for CommunicationModel
func (CommunicationModel) TableName() string {
	return "communications"
}

// ToDomain converts CommunicationModel to domain Communication
func (m *CommunicationModel) ToDomain() *tenancy.Communication {
	return &tenancy.Communication{
		BaseEntity:     m.BaseModel.ToDomain(),
		TenantID:       m.TenantID,
		Type:           tenancy.CommunicationType(m.Type),
		DateSent:       m.DateSent,
		ReferenceMonth: dateToMonth(m.ReferenceMonth),
		Subject:        m.Subject,
		Notes:          m.Notes,
		PaymentID:      m.PaymentID,
		AdjustmentID:   m.AdjustmentID,
	}
}

// CommunicationModelFromDomain creates a CommunicationModel from domain Communication
func CommunicationModelFromDomain(c *tenancy.Communication) *CommunicationModel {
	m := &CommunicationModel{
		TenantID:       c.TenantID,
		Type:           c.Type.String(),
		DateSent:       c.DateSent,
		ReferenceMonth: monthToDate(c.ReferenceMonth),
		Subject:        c.Subject,
		Notes:          c.Notes,
		PaymentID:      c.PaymentID,
		AdjustmentID:   c.AdjustmentID,
	}
	m.FromDomainBaseEntity(c.BaseEntity)
	return m
}
