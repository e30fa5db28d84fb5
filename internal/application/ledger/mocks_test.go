package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mls/backend/internal/domain/ledger"
	"github.com/mls/backend/internal/domain/property"
	"github.com/mls/backend/internal/domain/shared"
	"github.com/mls/backend/internal/domain/shared/valueobject"
	"github.com/mls/backend/internal/domain/tenancy"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockPaymentRepository is a mock implementation of ledger.PaymentRepository
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ledger.Payment, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.Payment), args.Error(1)
}

func (m *MockPaymentRepository) Save(ctx context.Context, payment *ledger.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPaymentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPaymentRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID) ([]ledger.Payment, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindByFlat(ctx context.Context, flatID uuid.UUID) ([]ledger.Payment, error) {
	args := m.Called(ctx, flatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindByTenantAndFlat(ctx context.Context, tenantID, flatID uuid.UUID) ([]ledger.Payment, error) {
	args := m.Called(ctx, tenantID, flatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindByTenantAndMonth(ctx context.Context, tenantID uuid.UUID, month valueobject.Month) ([]ledger.Payment, error) {
	args := m.Called(ctx, tenantID, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.Payment), args.Error(1)
}

func (m *MockPaymentRepository) SumUtilitiesForYear(ctx context.Context, flatID uuid.UUID, year int, tenantID *uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, flatID, year, tenantID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockAdjustmentRepository is a mock implementation of ledger.AdjustmentRepository
type MockAdjustmentRepository struct {
	mock.Mock
}

func (m *MockAdjustmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.UtilitiesAdjustment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.UtilitiesAdjustment), args.Error(1)
}

func (m *MockAdjustmentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ledger.UtilitiesAdjustment, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.UtilitiesAdjustment), args.Error(1)
}

func (m *MockAdjustmentRepository) Save(ctx context.Context, adjustment *ledger.UtilitiesAdjustment) error {
	args := m.Called(ctx, adjustment)
	return args.Error(0)
}

func (m *MockAdjustmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAdjustmentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAdjustmentRepository) FindByFlat(ctx context.Context, flatID uuid.UUID) ([]ledger.UtilitiesAdjustment, error) {
	args := m.Called(ctx, flatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.UtilitiesAdjustment), args.Error(1)
}

func (m *MockAdjustmentRepository) FindByFlatAndTenant(ctx context.Context, flatID, tenantID uuid.UUID) ([]ledger.UtilitiesAdjustment, error) {
	args := m.Called(ctx, flatID, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.UtilitiesAdjustment), args.Error(1)
}

func (m *MockAdjustmentRepository) FindByFlatYearAndTenant(ctx context.Context, flatID uuid.UUID, year int, tenantID uuid.UUID) (*ledger.UtilitiesAdjustment, error) {
	args := m.Called(ctx, flatID, year, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.UtilitiesAdjustment), args.Error(1)
}

func (m *MockAdjustmentRepository) FindByYear(ctx context.Context, year int) ([]ledger.UtilitiesAdjustment, error) {
	args := m.Called(ctx, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.UtilitiesAdjustment), args.Error(1)
}

func (m *MockAdjustmentRepository) FindLatestByFlat(ctx context.Context, flatID uuid.UUID) (*ledger.UtilitiesAdjustment, error) {
	args := m.Called(ctx, flatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.UtilitiesAdjustment), args.Error(1)
}

// MockExtraChargeRepository is a mock implementation of ledger.ExtraChargeRepository
type MockExtraChargeRepository struct {
	mock.Mock
}

func (m *MockExtraChargeRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.ExtraCharge, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.ExtraCharge), args.Error(1)
}

func (m *MockExtraChargeRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ledger.ExtraCharge, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.ExtraCharge), args.Error(1)
}

func (m *MockExtraChargeRepository) Save(ctx context.Context, charge *ledger.ExtraCharge) error {
	args := m.Called(ctx, charge)
	return args.Error(0)
}

func (m *MockExtraChargeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockExtraChargeRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockExtraChargeRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID) ([]ledger.ExtraCharge, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.ExtraCharge), args.Error(1)
}

func (m *MockExtraChargeRepository) FindByFlat(ctx context.Context, flatID uuid.UUID) ([]ledger.ExtraCharge, error) {
	args := m.Called(ctx, flatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.ExtraCharge), args.Error(1)
}

func (m *MockExtraChargeRepository) FindByTenantAndMonth(ctx context.Context, tenantID uuid.UUID, month valueobject.Month) ([]ledger.ExtraCharge, error) {
	args := m.Called(ctx, tenantID, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.ExtraCharge), args.Error(1)
}

// MockExpenseRepository is a mock implementation of ledger.ExpenseRepository
type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.LandlordExpense, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.LandlordExpense), args.Error(1)
}

func (m *MockExpenseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ledger.LandlordExpense, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.LandlordExpense), args.Error(1)
}

func (m *MockExpenseRepository) Save(ctx context.Context, expense *ledger.LandlordExpense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockExpenseRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockExpenseRepository) FindByFlat(ctx context.Context, flatID uuid.UUID) ([]ledger.LandlordExpense, error) {
	args := m.Called(ctx, flatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.LandlordExpense), args.Error(1)
}

func (m *MockExpenseRepository) FindByFlatAndYear(ctx context.Context, flatID uuid.UUID, year int) ([]ledger.LandlordExpense, error) {
	args := m.Called(ctx, flatID, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.LandlordExpense), args.Error(1)
}

// MockTenantRepository is a mock implementation of tenancy.TenantRepository
type MockTenantRepository struct {
	mock.Mock
}

func (m *MockTenantRepository) FindByID(ctx context.Context, id uuid.UUID) (*tenancy.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tenancy.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindAll(ctx context.Context, filter shared.Filter) ([]tenancy.Tenant, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]tenancy.Tenant), args.Error(1)
}

func (m *MockTenantRepository) Save(ctx context.Context, tenant *tenancy.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

func (m *MockTenantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTenantRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTenantRepository) FindActiveByFlat(ctx context.Context, flatID uuid.UUID) (*tenancy.Tenant, error) {
	args := m.Called(ctx, flatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tenancy.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindActiveByFlatForUpdate(ctx context.Context, flatID uuid.UUID) (*tenancy.Tenant, error) {
	args := m.Called(ctx, flatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tenancy.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindActive(ctx context.Context) ([]tenancy.Tenant, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]tenancy.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindUnassigned(ctx context.Context) ([]tenancy.Tenant, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]tenancy.Tenant), args.Error(1)
}

func (m *MockTenantRepository) LastEndDateByFlat(ctx context.Context, flatID uuid.UUID) (*time.Time, error) {
	args := m.Called(ctx, flatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*time.Time), args.Error(1)
}

// MockCommunicationRepository is a mock implementation of tenancy.CommunicationRepository
type MockCommunicationRepository struct {
	mock.Mock
}

func (m *MockCommunicationRepository) FindByID(ctx context.Context, id uuid.UUID) (*tenancy.Communication, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tenancy.Communication), args.Error(1)
}

func (m *MockCommunicationRepository) FindAll(ctx context.Context, filter shared.Filter) ([]tenancy.Communication, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]tenancy.Communication), args.Error(1)
}

func (m *MockCommunicationRepository) Save(ctx context.Context, comm *tenancy.Communication) error {
	args := m.Called(ctx, comm)
	return args.Error(0)
}

func (m *MockCommunicationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCommunicationRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCommunicationRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID) ([]tenancy.Communication, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]tenancy.Communication), args.Error(1)
}

func (m *MockCommunicationRepository) FindByTenantAndMonth(ctx context.Context, tenantID uuid.UUID, month valueobject.Month) ([]tenancy.Communication, error) {
	args := m.Called(ctx, tenantID, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]tenancy.Communication), args.Error(1)
}

func (m *MockCommunicationRepository) FindByTenantTypeAndMonth(ctx context.Context, tenantID uuid.UUID, commType tenancy.CommunicationType, month valueobject.Month) ([]tenancy.Communication, error) {
	args := m.Called(ctx, tenantID, commType, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]tenancy.Communication), args.Error(1)
}

// MockFlatRepository is a mock implementation of property.FlatRepository
type MockFlatRepository struct {
	mock.Mock
}

func (m *MockFlatRepository) FindByID(ctx context.Context, id uuid.UUID) (*property.Flat, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*property.Flat), args.Error(1)
}

func (m *MockFlatRepository) FindAll(ctx context.Context, filter shared.Filter) ([]property.Flat, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]property.Flat), args.Error(1)
}

func (m *MockFlatRepository) Save(ctx context.Context, flat *property.Flat) error {
	args := m.Called(ctx, flat)
	return args.Error(0)
}

func (m *MockFlatRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockFlatRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFlatRepository) FindByLandlord(ctx context.Context, landlordID uuid.UUID) ([]property.Flat, error) {
	args := m.Called(ctx, landlordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]property.Flat), args.Error(1)
}

func (m *MockFlatRepository) CountByLandlord(ctx context.Context, landlordID uuid.UUID) (int64, error) {
	args := m.Called(ctx, landlordID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFlatRepository) FindByCity(ctx context.Context, city string) ([]property.Flat, error) {
	args := m.Called(ctx, city)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]property.Flat), args.Error(1)
}

// MockLandlordRepository is a mock implementation of property.LandlordRepository
type MockLandlordRepository struct {
	mock.Mock
}

func (m *MockLandlordRepository) FindByID(ctx context.Context, id uuid.UUID) (*property.Landlord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*property.Landlord), args.Error(1)
}

func (m *MockLandlordRepository) FindAll(ctx context.Context, filter shared.Filter) ([]property.Landlord, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]property.Landlord), args.Error(1)
}

func (m *MockLandlordRepository) Save(ctx context.Context, landlord *property.Landlord) error {
	args := m.Called(ctx, landlord)
	return args.Error(0)
}

func (m *MockLandlordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLandlordRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLandlordRepository) FindByEmail(ctx context.Context, email string) (*property.Landlord, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*property.Landlord), args.Error(1)
}

func (m *MockLandlordRepository) FindByCity(ctx context.Context, city string) ([]property.Landlord, error) {
	args := m.Called(ctx, city)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]property.Landlord), args.Error(1)
}

// MockManagerRepository is a mock implementation of property.ManagerRepository
type MockManagerRepository struct {
	mock.Mock
}

func (m *MockManagerRepository) FindByID(ctx context.Context, id uuid.UUID) (*property.BuildingManager, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*property.BuildingManager), args.Error(1)
}

func (m *MockManagerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]property.BuildingManager, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]property.BuildingManager), args.Error(1)
}

func (m *MockManagerRepository) Save(ctx context.Context, manager *property.BuildingManager) error {
	args := m.Called(ctx, manager)
	return args.Error(0)
}

func (m *MockManagerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockManagerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}
