package lending

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCheckInstallmentOrder(t *testing.T) {
	assert.NoError(t, CheckInstallmentOrder(nil))
	assert.NoError(t, CheckInstallmentOrder([]int{1, 2, 3}))
	assert.NoError(t, CheckInstallmentOrder([]int{3, 1, 2}), "order of input does not matter")

	assert.Error(t, CheckInstallmentOrder([]int{0, 1, 2}), "must start at 1")
	assert.Error(t, CheckInstallmentOrder([]int{1, 3}), "gaps are rejected")
	assert.Error(t, CheckInstallmentOrder([]int{1, 2, 2}), "repeats are rejected")
}

func TestValidateSchedule(t *testing.T) {
	due := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	installment := func(nro int) CreditPaymentInsert {
		return CreditPaymentInsert{
			Nro:            nro,
			PaymentDate:    due.AddDate(0, 0, 7*(nro-1)),
			BaseAmount:     decimal.NewFromInt(250),
			InterestAmount: decimal.NewFromInt(50),
			TotalInterest:  decimal.NewFromInt(200),
		}
	}

	assert.NoError(t, ValidateSchedule([]CreditPaymentInsert{installment(1), installment(2)}))
	assert.Error(t, ValidateSchedule([]CreditPaymentInsert{installment(1), installment(3)}))

	missingDate := installment(1)
	missingDate.PaymentDate = time.Time{}
	assert.Error(t, ValidateSchedule([]CreditPaymentInsert{missingDate}))
}

func TestCreditPayment_State(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	p := CreditPayment{
		PaymentDate:    now.AddDate(0, 0, -1),
		BaseAmount:     decimal.RequireFromString("250.10"),
		InterestAmount: decimal.RequireFromString("49.90"),
	}

	assert.False(t, p.IsPaid())
	assert.True(t, p.IsOverdue(now))
	assert.True(t, p.Amount().Equal(decimal.NewFromInt(300)))

	p.DatePaid = &now
	assert.True(t, p.IsPaid())
	assert.False(t, p.IsOverdue(now))
}
