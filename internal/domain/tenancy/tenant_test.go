package tenancy

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mls/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTenant(t *testing.T) *Tenant {
	t.Helper()
	tenant, err := NewTenant("Marie", "Dupont", "marie.dupont@example.com")
	require.NoError(t, err)
	return tenant
}

func TestNewTenant(t *testing.T) {
	t.Run("creates prospective tenant", func(t *testing.T) {
		tenant := newTestTenant(t)
		assert.Equal(t, TenantStatusProspective, tenant.Status())
		assert.False(t, tenant.IsActive)
		assert.Nil(t, tenant.FlatID)
		assert.Equal(t, "Marie Dupont", tenant.FullName())
		assert.Equal(t, "marie.dupont@example.com", tenant.Email)
	})

	t.Run("rejects empty names and email", func(t *testing.T) {
		_, err := NewTenant("", "Dupont", "a@b.c")
		assert.Error(t, err)
		_, err = NewTenant("Marie", "", "a@b.c")
		assert.Error(t, err)
		_, err = NewTenant("Marie", "Dupont", "  ")
		assert.Error(t, err)
	})
}

func TestAssignFlat(t *testing.T) {
	start := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

	t.Run("activates tenancy", func(t *testing.T) {
		tenant := newTestTenant(t)
		flatID := uuid.New()

		require.NoError(t, tenant.AssignFlat(flatID, start))
		assert.Equal(t, TenantStatusActive, tenant.Status())
		assert.Equal(t, flatID, *tenant.FlatID)
		assert.Equal(t, start, *tenant.StartDate)
		assert.Nil(t, tenant.EndDate)
		assert.Len(t, tenant.GetDomainEvents(), 1)
	})

	t.Run("re-assignment clears previous end date", func(t *testing.T) {
		tenant := newTestTenant(t)
		require.NoError(t, tenant.AssignFlat(uuid.New(), start))
		require.NoError(t, tenant.EndTenancy(start.AddDate(1, 0, 0)))

		newFlat := uuid.New()
		newStart := start.AddDate(2, 0, 0)
		require.NoError(t, tenant.AssignFlat(newFlat, newStart))
		assert.Equal(t, TenantStatusActive, tenant.Status())
		assert.Nil(t, tenant.EndDate)
		assert.Equal(t, newFlat, *tenant.FlatID)
	})

	t.Run("rejects nil flat and zero date", func(t *testing.T) {
		tenant := newTestTenant(t)
		assert.Error(t, tenant.AssignFlat(uuid.Nil, start))
		assert.Error(t, tenant.AssignFlat(uuid.New(), time.Time{}))
	})
}

func TestEndTenancy(t *testing.T) {
	start := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

	t.Run("closes active tenancy and clears flat", func(t *testing.T) {
		tenant := newTestTenant(t)
		require.NoError(t, tenant.AssignFlat(uuid.New(), start))

		end := start.AddDate(0, 6, 0)
		require.NoError(t, tenant.EndTenancy(end))
		assert.Equal(t, TenantStatusFormer, tenant.Status())
		assert.Nil(t, tenant.FlatID)
		assert.Equal(t, end, *tenant.EndDate)
		assert.False(t, tenant.IsActive)
	})

	t.Run("fails without active tenancy", func(t *testing.T) {
		tenant := newTestTenant(t)
		assert.Error(t, tenant.EndTenancy(time.Now()))
	})

	t.Run("rejects end before start", func(t *testing.T) {
		tenant := newTestTenant(t)
		require.NoError(t, tenant.AssignFlat(uuid.New(), start))
		assert.Error(t, tenant.EndTenancy(start.AddDate(0, -1, 0)))
	})
}

func TestDisplace(t *testing.T) {
	start := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	tenant := newTestTenant(t)
	flatID := uuid.New()
	require.NoError(t, tenant.AssignFlat(flatID, start))

	handover := start.AddDate(1, 0, 0)
	tenant.Displace(handover)

	assert.False(t, tenant.IsActive)
	assert.Equal(t, handover, *tenant.EndDate)
	// The flat reference survives so the payment history stays linked.
	assert.Equal(t, flatID, *tenant.FlatID)
}

func TestSetDeposit(t *testing.T) {
	tenant := newTestTenant(t)
	require.NoError(t, tenant.SetDeposit(valueobject.NewMoneyEURFromFloat(1200)))
	assert.True(t, tenant.GetDepositMoney().Equals(valueobject.NewMoneyEURFromFloat(1200)))

	assert.Error(t, tenant.SetDeposit(valueobject.NewMoneyEURFromFloat(-1)))
}

func TestStartMonth(t *testing.T) {
	tenant := newTestTenant(t)
	assert.True(t, tenant.StartMonth().IsZero())

	start := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	require.NoError(t, tenant.AssignFlat(uuid.New(), start))
	assert.Equal(t, "2024-03", tenant.StartMonth().String())
}
