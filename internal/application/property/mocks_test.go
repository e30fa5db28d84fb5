package property

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mls/backend/internal/domain/property"
	"github.com/mls/backend/internal/domain/shared"
	"github.com/mls/backend/internal/domain/tenancy"
	"github.com/stretchr/testify/mock"
)

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
