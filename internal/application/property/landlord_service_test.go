package property

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/mls/backend/internal/domain/property"
	"github.com/mls/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestLandlord(t *testing.T) *property.Landlord {
	t.Helper()
	landlord, err := property.NewLandlord("Marie", "Dupont", "marie.dupont@example.com")
	require.NoError(t, err)
	return landlord
}

func TestLandlordService_CreateLandlord(t *testing.T) {
	t.Run("creates landlord with unique email", func(t *testing.T) {
		landlordRepo := new(MockLandlordRepository)
		flatRepo := new(MockFlatRepository)
		service := NewLandlordService(landlordRepo, flatRepo)

		landlordRepo.On("FindByEmail", mock.Anything, "marie.dupont@example.com").
			Return(nil, shared.ErrNotFound)
		landlordRepo.On("Save", mock.Anything, mock.AnythingOfType("*property.Landlord")).
			Return(nil)

		resp, err := service.CreateLandlord(context.Background(), CreateLandlordRequest{
			FirstName: "Marie",
			LastName:  "Dupont",
			Email:     "marie.dupont@example.com",
			City:      "Paris",
		})

		assert.NoError(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, "Marie Dupont", resp.FullName)
		assert.Equal(t, "Paris", resp.City)
		landlordRepo.AssertExpectations(t)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		landlordRepo := new(MockLandlordRepository)
		flatRepo := new(MockFlatRepository)
		service := NewLandlordService(landlordRepo, flatRepo)

		existing := newTestLandlord(t)
		landlordRepo.On("FindByEmail", mock.Anything, "marie.dupont@example.com").
			Return(existing, nil)

		resp, err := service.CreateLandlord(context.Background(), CreateLandlordRequest{
			FirstName: "Marie",
			LastName:  "Dupont",
			Email:     "marie.dupont@example.com",
		})

		assert.Nil(t, resp)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		landlordRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestLandlordService_DeleteLandlord(t *testing.T) {
	t.Run("deletes landlord without flats", func(t *testing.T) {
		landlordRepo := new(MockLandlordRepository)
		flatRepo := new(MockFlatRepository)
		service := NewLandlordService(landlordRepo, flatRepo)

		landlord := newTestLandlord(t)
		landlordRepo.On("FindByID", mock.Anything, landlord.ID).Return(landlord, nil)
		flatRepo.On("CountByLandlord", mock.Anything, landlord.ID).Return(int64(0), nil)
		landlordRepo.On("Delete", mock.Anything, landlord.ID).Return(nil)

		err := service.DeleteLandlord(context.Background(), landlord.ID)

		assert.NoError(t, err)
		landlordRepo.AssertExpectations(t)
	})

	t.Run("refuses to delete landlord owning flats", func(t *testing.T) {
		landlordRepo := new(MockLandlordRepository)
		flatRepo := new(MockFlatRepository)
		service := NewLandlordService(landlordRepo, flatRepo)

		landlord := newTestLandlord(t)
		landlordRepo.On("FindByID", mock.Anything, landlord.ID).Return(landlord, nil)
		flatRepo.On("CountByLandlord", mock.Anything, landlord.ID).Return(int64(2), nil)

		err := service.DeleteLandlord(context.Background(), landlord.ID)

		assert.ErrorIs(t, err, shared.ErrLandlordInUse)
		landlordRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("returns not found for unknown landlord", func(t *testing.T) {
		landlordRepo := new(MockLandlordRepository)
		flatRepo := new(MockFlatRepository)
		service := NewLandlordService(landlordRepo, flatRepo)

		id := uuid.New()
		landlordRepo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

		err := service.DeleteLandlord(context.Background(), id)

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestLandlordService_UpdateLandlord(t *testing.T) {
	t.Run("rejects email already used by another landlord", func(t *testing.T) {
		landlordRepo := new(MockLandlordRepository)
		flatRepo := new(MockFlatRepository)
		service := NewLandlordService(landlordRepo, flatRepo)

		landlord := newTestLandlord(t)
		other, err := property.NewLandlord("Jean", "Martin", "jean.martin@example.com")
		require.NoError(t, err)

		landlordRepo.On("FindByID", mock.Anything, landlord.ID).Return(landlord, nil)
		landlordRepo.On("FindByEmail", mock.Anything, "jean.martin@example.com").Return(other, nil)

		resp, err := service.UpdateLandlord(context.Background(), landlord.ID, UpdateLandlordRequest{
			Email: "jean.martin@example.com",
		})

		assert.Nil(t, resp)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	})
}
