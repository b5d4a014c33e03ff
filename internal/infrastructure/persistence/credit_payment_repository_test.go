package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/credito/backend/internal/domain/lending"
	"github.com/credito/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormCreditPaymentRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(t)
	client := mustCreateClient(t, db.DB, "Ana")
	in, schedule := weeklyCredit(client.ID)
	credit, _, err := NewGormCreditRepository(db.DB, db.Log).CreateWithSchedule(ctx, in, schedule)
	require.NoError(t, err)

	repo := NewGormCreditPaymentRepository(db.DB)

	t.Run("FindByCredit ordered by nro", func(t *testing.T) {
		payments, err := repo.FindByCredit(ctx, credit.ID)
		require.NoError(t, err)
		require.Len(t, payments, 4)
		for i, p := range payments {
			assert.Equal(t, i+1, p.Nro)
			assert.Equal(t, lending.PaymentPending, p.Status)
			assert.True(t, p.Amount().Equal(decimal.NewFromInt(300)))
		}
	})

	t.Run("duplicate nro is rejected", func(t *testing.T) {
		_, err := repo.Create(ctx, lending.CreditPaymentInsert{
			CreditID:    credit.ID,
			Nro:         2,
			PaymentDate: scheduleStart,
		})
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})

	t.Run("MarkPaid completes the installment", func(t *testing.T) {
		payments, err := repo.FindByCredit(ctx, credit.ID)
		require.NoError(t, err)
		paidAt := time.Date(2026, 1, 11, 15, 30, 0, 0, time.UTC)

		require.NoError(t, repo.MarkPaid(ctx, payments[0].ID, paidAt))

		paid, err := repo.FindByID(ctx, payments[0].ID)
		require.NoError(t, err)
		assert.Equal(t, lending.PaymentComplete, paid.Status)
		require.NotNil(t, paid.DatePaid)
		assert.True(t, paidAt.Equal(*paid.DatePaid))

		unpaid, err := repo.FindUnpaid(ctx, credit.ID)
		require.NoError(t, err)
		require.Len(t, unpaid, 3)
		assert.Equal(t, 2, unpaid[0].Nro)

		assert.ErrorIs(t, repo.MarkPaid(ctx, 9999, paidAt), shared.ErrNotFound)
	})

	t.Run("FindDueBefore skips paid installments", func(t *testing.T) {
		// installments fall due on Jan 12, 19, 26 and Feb 2; the first is paid
		due, err := repo.FindDueBefore(ctx, time.Date(2026, 1, 27, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		require.Len(t, due, 2)
		assert.Equal(t, 2, due[0].Nro)
		assert.Equal(t, 3, due[1].Nro)
	})

	t.Run("FindDueBefore with a cutoff outside UTC", func(t *testing.T) {
		// 22:00 at -05:00 on Jan 18 is 03:00 UTC on Jan 19, after nro 2 fell due
		bogota := time.FixedZone("-0500", -5*60*60)
		due, err := repo.FindDueBefore(ctx, time.Date(2026, 1, 18, 22, 0, 0, 0, bogota))
		require.NoError(t, err)
		require.Len(t, due, 1)
		assert.Equal(t, 2, due[0].Nro)
	})

	t.Run("installment without a credit is rejected", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			_, err := repo.Create(ctx, lending.CreditPaymentInsert{
				Nro:         1,
				PaymentDate: scheduleStart,
			})
			assert.ErrorIs(t, err, shared.ErrInvalidInput)
		}

		var orphans int64
		require.NoError(t, db.DB.Table("credit_payments").Where("credit_id IS NULL").Count(&orphans).Error)
		assert.Zero(t, orphans)
	})

	t.Run("broken credit reference", func(t *testing.T) {
		_, err := repo.Create(ctx, lending.CreditPaymentInsert{
			CreditID:    9999,
			Nro:         1,
			PaymentDate: scheduleStart,
		})
		assert.ErrorIs(t, err, shared.ErrBrokenRef)
	})
}
