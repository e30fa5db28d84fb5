package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mls/backend/internal/domain/ledger"
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

func newTestTenant(t *testing.T) *tenancy.Tenant {
	t.Helper()
	tenant, err := tenancy.NewTenant("Claire", "Bernard", "claire.bernard@example.com")
	require.NoError(t, err)
	return tenant
}

func newTestAdjustment(t *testing.T, flatID, tenantID uuid.UUID, year int) *ledger.UtilitiesAdjustment {
	t.Helper()
	adjustment, err := ledger.NewUtilitiesAdjustment(flatID, tenantID, year,
		valueobject.NewMoneyEURFromFloat(300),
		valueobject.NewMoneyEURFromFloat(700),
		valueobject.NewMoneyEURFromFloat(100),
	)
	require.NoError(t, err)
	return adjustment
}

func newAdjustmentServiceFixture() (*AdjustmentService, *MockAdjustmentRepository, *MockPaymentRepository, *MockTenantRepository, *MockFlatRepository) {
	adjustmentRepo := new(MockAdjustmentRepository)
	paymentRepo := new(MockPaymentRepository)
	tenantRepo := new(MockTenantRepository)
	flatRepo := new(MockFlatRepository)
	service := NewAdjustmentService(adjustmentRepo, paymentRepo, tenantRepo, flatRepo)
	return service, adjustmentRepo, paymentRepo, tenantRepo, flatRepo
}

func TestAdjustmentService_CreateAdjustment(t *testing.T) {
	t.Run("creates adjustment and computes balance", func(t *testing.T) {
		service, adjustmentRepo, paymentRepo, tenantRepo, flatRepo := newAdjustmentServiceFixture()

		flat := newTestFlat(t, "Apt 1A")
		tenant := newTestTenant(t)
		flatRepo.On("FindByID", mock.Anything, flat.ID).Return(flat, nil)
		tenantRepo.On("FindByID", mock.Anything, tenant.ID).Return(tenant, nil)
		adjustmentRepo.On("FindByFlatYearAndTenant", mock.Anything, flat.ID, 2024, tenant.ID).
			Return(nil, shared.ErrNotFound)
		adjustmentRepo.On("Save", mock.Anything, mock.AnythingOfType("*ledger.UtilitiesAdjustment")).
			Return(nil)
		// 1440 paid over the year against 1100 charged
		paymentRepo.On("SumUtilitiesForYear", mock.Anything, flat.ID, 2024, mock.Anything).
			Return(decimal.NewFromInt(1440), nil)

		resp, err := service.CreateAdjustment(context.Background(), CreateAdjustmentRequest{
			FlatID:        flat.ID,
			TenantID:      tenant.ID,
			ReferenceYear: 2024,
			LiftAmount:    decimal.NewFromInt(300),
			HeatingAmount: decimal.NewFromInt(700),
			OtherAmount:   decimal.NewFromInt(100),
		})

		assert.NoError(t, err)
		require.NotNil(t, resp)
		assert.True(t, resp.TotalCharges.Equal(decimal.NewFromInt(1100)))
		assert.True(t, resp.UtilitiesPaid.Equal(decimal.NewFromInt(1440)))
		assert.True(t, resp.Balance.Equal(decimal.NewFromInt(340)), "positive balance means the tenant overpaid")
		adjustmentRepo.AssertExpectations(t)
	})

	t.Run("rejects second adjustment for same flat, year and tenant", func(t *testing.T) {
		service, adjustmentRepo, _, tenantRepo, flatRepo := newAdjustmentServiceFixture()

		flat := newTestFlat(t, "Apt 1A")
		tenant := newTestTenant(t)
		existing := newTestAdjustment(t, flat.ID, tenant.ID, 2024)

		flatRepo.On("FindByID", mock.Anything, flat.ID).Return(flat, nil)
		tenantRepo.On("FindByID", mock.Anything, tenant.ID).Return(tenant, nil)
		adjustmentRepo.On("FindByFlatYearAndTenant", mock.Anything, flat.ID, 2024, tenant.ID).
			Return(existing, nil)

		resp, err := service.CreateAdjustment(context.Background(), CreateAdjustmentRequest{
			FlatID:        flat.ID,
			TenantID:      tenant.ID,
			ReferenceYear: 2024,
			LiftAmount:    decimal.NewFromInt(300),
		})

		assert.Nil(t, resp)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		adjustmentRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects malformed reference month", func(t *testing.T) {
		service, adjustmentRepo, _, tenantRepo, flatRepo := newAdjustmentServiceFixture()

		flat := newTestFlat(t, "Apt 1A")
		tenant := newTestTenant(t)
		flatRepo.On("FindByID", mock.Anything, flat.ID).Return(flat, nil)
		tenantRepo.On("FindByID", mock.Anything, tenant.ID).Return(tenant, nil)
		adjustmentRepo.On("FindByFlatYearAndTenant", mock.Anything, flat.ID, 2024, tenant.ID).
			Return(nil, shared.ErrNotFound)

		resp, err := service.CreateAdjustment(context.Background(), CreateAdjustmentRequest{
			FlatID:         flat.ID,
			TenantID:       tenant.ID,
			ReferenceYear:  2024,
			ReferenceMonth: "December 2024",
			LiftAmount:     decimal.NewFromInt(300),
		})

		assert.Nil(t, resp)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_MONTH", domainErr.Code)
	})
}

func TestAdjustmentService_MarkPaid(t *testing.T) {
	t.Run("settles an unpaid adjustment", func(t *testing.T) {
		service, adjustmentRepo, paymentRepo, _, _ := newAdjustmentServiceFixture()

		adjustment := newTestAdjustment(t, uuid.New(), uuid.New(), 2024)
		adjustmentRepo.On("FindByID", mock.Anything, adjustment.ID).Return(adjustment, nil)
		adjustmentRepo.On("Save", mock.Anything, adjustment).Return(nil)
		paymentRepo.On("SumUtilitiesForYear", mock.Anything, adjustment.FlatID, 2024, mock.Anything).
			Return(decimal.Zero, nil)

		resp, err := service.MarkPaid(context.Background(), adjustment.ID, MarkAdjustmentPaidRequest{
			PaymentDate: time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC),
		})

		assert.NoError(t, err)
		require.NotNil(t, resp)
		assert.True(t, resp.IsPaid)
	})

	t.Run("rejects settling twice", func(t *testing.T) {
		service, adjustmentRepo, _, _, _ := newAdjustmentServiceFixture()

		adjustment := newTestAdjustment(t, uuid.New(), uuid.New(), 2024)
		require.NoError(t, adjustment.MarkPaid(time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)))
		adjustmentRepo.On("FindByID", mock.Anything, adjustment.ID).Return(adjustment, nil)

		resp, err := service.MarkPaid(context.Background(), adjustment.ID, MarkAdjustmentPaidRequest{})

		assert.Nil(t, resp)
		assert.Error(t, err)
		adjustmentRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}
