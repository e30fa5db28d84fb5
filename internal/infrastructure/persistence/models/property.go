package models

import (
	"github.com/google/uuid"
	"github.com/mls/backend/internal/domain/property"
	"github.com/shopspring/decimal"
)

// LandlordModel is the persistence model for landlords
type LandlordModel struct {
	AggregateModel
	FirstName string `gorm:"size:100;not null"`
	LastName  string `gorm:"size:100;not null"`
	Email     string `gorm:"size:255;not null;uniqueIndex"`
	Phone     string `gorm:"size:50"`
	Address   string `gorm:"size:255"`
	PostCode  string `gorm:"size:20"`
	City      string `gorm:"size:100;index"`
	IBAN      string `gorm:"size:50"`
}

// TableName returns the table name for LandlordModel
func (LandlordModel) TableName() string {
	return "landlords"
}

// ToDomain converts LandlordModel to domain Landlord
func (m *LandlordModel) ToDomain() *property.Landlord {
	return &property.Landlord{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		FirstName:         m.FirstName,
		LastName:          m.LastName,
		Email:             m.Email,
		Phone:             m.Phone,
		Address:           m.Address,
		PostCode:          m.PostCode,
		City:              m.City,
		IBAN:              m.IBAN,
	}
}

// LandlordModelFromDomain creates a LandlordModel from domain Landlord
func LandlordModelFromDomain(l *property.Landlord) *LandlordModel {
	m := &LandlordModel{
		FirstName: l.FirstName,
		LastName:  l.LastName,
		Email:     l.Email,
		Phone:     l.Phone,
		Address:   l.Address,
		PostCode:  l.PostCode,
		City:      l.City,
		IBAN:      l.IBAN,
	}
	m.FromDomainAggregateRoot(l.BaseAggregateRoot)
	return m
}

// ManagerModel is the persistence model for building managers
type ManagerModel struct {
	AggregateModel
	Name     string `gorm:"size:255;not null"`
	Email    string `gorm:"size:255"`
	Phone    string `gorm:"size:50"`
	Address  string `gorm:"size:255"`
	PostCode string `gorm:"size:20"`
	City     string `gorm:"size:100"`
}

// TableName returns the table name for ManagerModel
func (ManagerModel) TableName() string {
	return "building_managers"
}

// ToDomain converts ManagerModel to domain BuildingManager
func (m *ManagerModel) ToDomain() *property.BuildingManager {
	return &property.BuildingManager{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Email:             m.Email,
		Phone:             m.Phone,
		Address:           m.Address,
		PostCode:          m.PostCode,
		City:              m.City,
	}
}

// ManagerModelFromDomain creates a ManagerModel from domain BuildingManager
func ManagerModelFromDomain(b *property.BuildingManager) *ManagerModel {
	m := &ManagerModel{
		Name:     b.Name,
		Email:    b.Email,
		Phone:    b.Phone,
		Address:  b.Address,
		PostCode: b.PostCode,
		City:     b.City,
	}
	m.FromDomainAggregateRoot(b.BaseAggregateRoot)
	return m
}

// FlatModel is the persistence model for flats
type FlatModel struct {
	AggregateModel
	Name            string          `gorm:"size:255;not null"`
	Address         string          `gorm:"size:255"`
	PostCode        string          `gorm:"size:20"`
	City            string          `gorm:"size:100;index"`
	Rooms           int             `gorm:"not null;default:0"`
	FloorArea       decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	RentAmount      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	UtilitiesAmount decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	LandlordID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	ManagerID       *uuid.UUID      `gorm:"type:uuid;index"`
}

// TableName returns the table name for FlatModel
func (FlatModel) TableName() string {
	return "flats"
}

// ToDomain converts FlatModel to domain Flat
func (m *FlatModel) ToDomain() *property.Flat {
	return &property.Flat{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Address:           m.Address,
		PostCode:          m.PostCode,
		City:              m.City,
		Rooms:             m.Rooms,
		FloorArea:         m.FloorArea,
		RentAmount:        m.RentAmount,
		UtilitiesAmount:   m.UtilitiesAmount,
		LandlordID:        m.LandlordID,
		ManagerID:         m.ManagerID,
	}
}

// FlatModelFromDomain creates a FlatModel from domain Flat
func FlatModelFromDomain(f *property.Flat) *FlatModel {
	m := &FlatModel{
		Name:            f.Name,
		Address:         f.Address,
		PostCode:        f.PostCode,
		City:            f.City,
		Rooms:           f.Rooms,
		FloorArea:       f.FloorArea,
		RentAmount:      f.RentAmount,
		UtilitiesAmount: f.UtilitiesAmount,
		LandlordID:      f.LandlordID,
		ManagerID:       f.ManagerID,
	}
	m.FromDomainAggregateRoot(f.BaseAggregateRoot)
	return m
}
