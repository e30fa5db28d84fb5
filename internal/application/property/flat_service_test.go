package property

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mls/backend/internal/domain/property"
	"github.com/mls/backend/internal/domain/shared"
	"github.com/mls/backend/internal/domain/shared/valueobject"
	"github.com/mls/backend/internal/domain/tenancy"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestFlat(t *testing.T, name string) *property.Flat {
	t.Helper()
	flat, err := property.NewFlat(name, uuid.New(),
		valueobject.NewMoneyEURFromFloat(850),
		valueobject.NewMoneyEURFromFloat(120),
	)
	require.NoError(t, err)
	return flat
}

func newActiveTenant(t *testing.T, flatID uuid.UUID) *tenancy.Tenant {
	t.Helper()
	tenant, err := tenancy.NewTenant("Claire", "Bernard", "claire.bernard@example.com")
	require.NoError(t, err)
	require.NoError(t, tenant.AssignFlat(flatID, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))
	return tenant
}

func TestFlatService_CreateFlat(t *testing.T) {
	t.Run("creates flat for existing landlord", func(t *testing.T) {
		flatRepo := new(MockFlatRepository)
		landlordRepo := new(MockLandlordRepository)
		managerRepo := new(MockManagerRepository)
		tenantRepo := new(MockTenantRepository)
		service := NewFlatService(flatRepo, landlordRepo, managerRepo, tenantRepo)

		landlord := newTestLandlord(t)
		landlordRepo.On("FindByID", mock.Anything, landlord.ID).Return(landlord, nil)
		flatRepo.On("Save", mock.Anything, mock.AnythingOfType("*property.Flat")).Return(nil)

		resp, err := service.CreateFlat(context.Background(), CreateFlatRequest{
			Name:            "Apt 3B",
			LandlordID:      landlord.ID,
			RentAmount:      decimal.NewFromInt(850),
			UtilitiesAmount: decimal.NewFromInt(120),
			City:            "Lyon",
		})

		assert.NoError(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, "Apt 3B", resp.Name)
		assert.True(t, resp.RentAmount.Equal(decimal.NewFromInt(850)))
		flatRepo.AssertExpectations(t)
	})

	t.Run("rejects unknown landlord", func(t *testing.T) {
		flatRepo := new(MockFlatRepository)
		landlordRepo := new(MockLandlordRepository)
		managerRepo := new(MockManagerRepository)
		tenantRepo := new(MockTenantRepository)
		service := NewFlatService(flatRepo, landlordRepo, managerRepo, tenantRepo)

		landlordID := uuid.New()
		landlordRepo.On("FindByID", mock.Anything, landlordID).Return(nil, shared.ErrNotFound)

		resp, err := service.CreateFlat(context.Background(), CreateFlatRequest{
			Name:       "Apt 3B",
			LandlordID: landlordID,
			RentAmount: decimal.NewFromInt(850),
		})

		assert.Nil(t, resp)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_LANDLORD", domainErr.Code)
	})
}

func TestFlatService_ListAvailableFlats(t *testing.T) {
	flatRepo := new(MockFlatRepository)
	landlordRepo := new(MockLandlordRepository)
	managerRepo := new(MockManagerRepository)
	tenantRepo := new(MockTenantRepository)
	service := NewFlatService(flatRepo, landlordRepo, managerRepo, tenantRepo)

	occupied := newTestFlat(t, "Apt 1A")
	vacated := newTestFlat(t, "Apt 2C")
	neverLet := newTestFlat(t, "Apt 4D")
	occupant := newActiveTenant(t, occupied.ID)
	movedOut := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)

	flatRepo.On("FindAll", mock.Anything, mock.AnythingOfType("shared.Filter")).
		Return([]property.Flat{*occupied, *vacated, *neverLet}, nil)
	tenantRepo.On("FindActive", mock.Anything).Return([]tenancy.Tenant{*occupant}, nil)
	tenantRepo.On("LastEndDateByFlat", mock.Anything, vacated.ID).Return(&movedOut, nil)
	tenantRepo.On("LastEndDateByFlat", mock.Anything, neverLet.ID).Return(nil, nil)

	flats, err := service.ListAvailableFlats(context.Background())

	assert.NoError(t, err)
	require.Len(t, flats, 2)
	assert.Equal(t, vacated.ID, flats[0].ID)
	require.NotNil(t, flats[0].LastTenancyEnd)
	assert.True(t, movedOut.Equal(*flats[0].LastTenancyEnd))
	assert.Equal(t, neverLet.ID, flats[1].ID)
	assert.Nil(t, flats[1].LastTenancyEnd)
	tenantRepo.AssertExpectations(t)
}

func TestFlatService_DeleteFlat(t *testing.T) {
	t.Run("deletes vacant flat", func(t *testing.T) {
		flatRepo := new(MockFlatRepository)
		landlordRepo := new(MockLandlordRepository)
		managerRepo := new(MockManagerRepository)
		tenantRepo := new(MockTenantRepository)
		service := NewFlatService(flatRepo, landlordRepo, managerRepo, tenantRepo)

		flat := newTestFlat(t, "Apt 2C")
		flatRepo.On("FindByID", mock.Anything, flat.ID).Return(flat, nil)
		tenantRepo.On("FindActiveByFlat", mock.Anything, flat.ID).Return(nil, shared.ErrNotFound)
		flatRepo.On("Delete", mock.Anything, flat.ID).Return(nil)

		err := service.DeleteFlat(context.Background(), flat.ID)

		assert.NoError(t, err)
		flatRepo.AssertExpectations(t)
	})

	t.Run("refuses to delete occupied flat", func(t *testing.T) {
		flatRepo := new(MockFlatRepository)
		landlordRepo := new(MockLandlordRepository)
		managerRepo := new(MockManagerRepository)
		tenantRepo := new(MockTenantRepository)
		service := NewFlatService(flatRepo, landlordRepo, managerRepo, tenantRepo)

		flat := newTestFlat(t, "Apt 1A")
		occupant := newActiveTenant(t, flat.ID)
		flatRepo.On("FindByID", mock.Anything, flat.ID).Return(flat, nil)
		tenantRepo.On("FindActiveByFlat", mock.Anything, flat.ID).Return(occupant, nil)

		err := service.DeleteFlat(context.Background(), flat.ID)

		assert.ErrorIs(t, err, shared.ErrFlatOccupied)
		flatRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestFlatService_UpdateFlat(t *testing.T) {
	t.Run("rejects unknown manager", func(t *testing.T) {
		flatRepo := new(MockFlatRepository)
		landlordRepo := new(MockLandlordRepository)
		managerRepo := new(MockManagerRepository)
		tenantRepo := new(MockTenantRepository)
		service := NewFlatService(flatRepo, landlordRepo, managerRepo, tenantRepo)

		flat := newTestFlat(t, "Apt 1A")
		managerID := uuid.New()
		flatRepo.On("FindByID", mock.Anything, flat.ID).Return(flat, nil)
		managerRepo.On("FindByID", mock.Anything, managerID).Return(nil, shared.ErrNotFound)

		resp, err := service.UpdateFlat(context.Background(), flat.ID, UpdateFlatRequest{
			ManagerID:       &managerID,
			RentAmount:      decimal.NewFromInt(900),
			UtilitiesAmount: decimal.NewFromInt(130),
		})

		assert.Nil(t, resp)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_MANAGER", domainErr.Code)
	})
}
