package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/mls/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormPaymentRepository_FindByID(t *testing.T) {
	t.Run("maps a stored row to the domain payment", func(t *testing.T) {
		db, mock, mockDB := newMockDatabase(t)
		defer mockDB.Close()
		repo := NewGormPaymentRepository(db.DB)

		id := uuid.New()
		tenantID := uuid.New()
		flatID := uuid.New()
		paymentDate := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)
		paymentMonth := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

		mock.ExpectQuery(`SELECT \* FROM "payments" WHERE id = \$1 ORDER BY "payments"\."id" LIMIT \$2`).
			WithArgs(id, 1).
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "tenant_id", "flat_id", "type",
				"amount", "utilities_amount", "amount_paid",
				"payment_date", "payment_month",
			}).AddRow(
				id, tenantID, flatID, "RENT",
				"850", "120", "970",
				paymentDate, paymentMonth,
			))

		payment, err := repo.FindByID(context.Background(), id)

		assert.NoError(t, err)
		require.NotNil(t, payment)
		assert.Equal(t, id, payment.ID)
		assert.Equal(t, tenantID, payment.TenantID)
		assert.True(t, payment.AmountPaid.Equal(decimal.NewFromInt(970)))
		require.NotNil(t, payment.PaymentMonth)
		assert.Equal(t, "2025-03", payment.PaymentMonth.String())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("translates a missing row to ErrNotFound", func(t *testing.T) {
		db, mock, mockDB := newMockDatabase(t)
		defer mockDB.Close()
		repo := NewGormPaymentRepository(db.DB)

		id := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "payments" WHERE id = \$1`).
			WithArgs(id, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		payment, err := repo.FindByID(context.Background(), id)

		assert.Nil(t, payment)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormPaymentRepository_SumUtilitiesForYear(t *testing.T) {
	t.Run("totals the utilities part for the year", func(t *testing.T) {
		db, mock, mockDB := newMockDatabase(t)
		defer mockDB.Close()
		repo := NewGormPaymentRepository(db.DB)

		flatID := uuid.New()
		mock.ExpectQuery(`SELECT COALESCE\(SUM\(utilities_amount\), 0\) as total FROM "payments" WHERE flat_id = \$1 AND payment_month >= \$2 AND payment_month < \$3`).
			WithArgs(flatID,
				time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
				time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
			).
			WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow("1440"))

		total, err := repo.SumUtilitiesForYear(context.Background(), flatID, 2024, nil)

		assert.NoError(t, err)
		assert.True(t, total.Equal(decimal.NewFromInt(1440)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("restricts to one tenant when given", func(t *testing.T) {
		db, mock, mockDB := newMockDatabase(t)
		defer mockDB.Close()
		repo := NewGormPaymentRepository(db.DB)

		flatID := uuid.New()
		tenantID := uuid.New()
		mock.ExpectQuery(`SELECT COALESCE\(SUM\(utilities_amount\), 0\) as total FROM "payments" WHERE .* tenant_id = \$4`).
			WithArgs(flatID, sqlmock.AnyArg(), sqlmock.AnyArg(), tenantID).
			WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow("0"))

		total, err := repo.SumUtilitiesForYear(context.Background(), flatID, 2024, &tenantID)

		assert.NoError(t, err)
		assert.True(t, total.IsZero())
	})
}

func TestGormPaymentRepository_Delete(t *testing.T) {
	t.Run("reports ErrNotFound when nothing was deleted", func(t *testing.T) {
		db, mock, mockDB := newMockDatabase(t)
		defer mockDB.Close()
		repo := NewGormPaymentRepository(db.DB)

		id := uuid.New()
		mock.ExpectExec(`DELETE FROM "payments" WHERE id = \$1`).
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), id)

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("deletes an existing payment", func(t *testing.T) {
		db, mock, mockDB := newMockDatabase(t)
		defer mockDB.Close()
		repo := NewGormPaymentRepository(db.DB)

		id := uuid.New()
		mock.ExpectExec(`DELETE FROM "payments" WHERE id = \$1`).
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Delete(context.Background(), id)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
