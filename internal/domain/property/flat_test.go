package property

import (
	"testing"

	"github.com/google/uuid"
	"github.com/mls/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFlat(t *testing.T) {
	t.Run("creates flat with rent and utilities provision", func(t *testing.T) {
		flat, err := NewFlat("T2 rue des Lilas", uuid.New(),
			valueobject.NewMoneyEURFromFloat(650),
			valueobject.NewMoneyEURFromFloat(50))
		require.NoError(t, err)
		assert.Equal(t, "T2 rue des Lilas", flat.Name)
		assert.True(t, flat.TotalMonthlyAmount().Amount().Equal(decimal.NewFromInt(700)))
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewFlat("  ", uuid.New(), valueobject.ZeroEUR(), valueobject.ZeroEUR())
		assert.Error(t, err)
	})

	t.Run("rejects nil landlord", func(t *testing.T) {
		_, err := NewFlat("T2", uuid.Nil, valueobject.ZeroEUR(), valueobject.ZeroEUR())
		assert.Error(t, err)
	})

	t.Run("rejects negative amounts", func(t *testing.T) {
		_, err := NewFlat("T2", uuid.New(), valueobject.NewMoneyEURFromFloat(-1), valueobject.ZeroEUR())
		assert.Error(t, err)
	})
}

func TestFlatUpdateRent(t *testing.T) {
	flat, err := NewFlat("T3", uuid.New(),
		valueobject.NewMoneyEURFromFloat(800),
		valueobject.NewMoneyEURFromFloat(70))
	require.NoError(t, err)

	require.NoError(t, flat.UpdateRent(
		valueobject.NewMoneyEURFromFloat(820),
		valueobject.NewMoneyEURFromFloat(75)))
	assert.True(t, flat.GetRentMoney().Amount().Equal(decimal.NewFromInt(820)))
	assert.Equal(t, 2, flat.GetVersion())

	assert.Error(t, flat.UpdateRent(
		valueobject.NewMoneyEURFromFloat(-1),
		valueobject.ZeroEUR()))
}

func TestNewLandlord(t *testing.T) {
	t.Run("normalizes email", func(t *testing.T) {
		l, err := NewLandlord("Paul", "Martin", " Paul.Martin@Example.com ")
		require.NoError(t, err)
		assert.Equal(t, "paul.martin@example.com", l.Email)
		assert.Equal(t, "Paul Martin", l.FullName())
	})

	t.Run("rejects blank fields", func(t *testing.T) {
		_, err := NewLandlord("", "Martin", "a@b.c")
		assert.Error(t, err)
		_, err = NewLandlord("Paul", "Martin", "")
		assert.Error(t, err)
	})
}

func TestNewBuildingManager(t *testing.T) {
	m, err := NewBuildingManager("Cabinet Foncia")
	require.NoError(t, err)
	assert.Equal(t, "Cabinet Foncia", m.Name)

	_, err = NewBuildingManager("   ")
	assert.Error(t, err)
}
