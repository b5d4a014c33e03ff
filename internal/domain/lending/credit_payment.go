package lending

import (
	"fmt"
	"sort"
	"time"

	"github.com/credito/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CreditPayment is one scheduled installment of a credit, as stored in the
// credit_payments table. A nil DatePaid means the installment is unpaid.
type CreditPayment struct {
	ID             int64
	CreditID       *int64
	Status         PaymentStatus
	Nro            int
	PaymentDate    time.Time
	DatePaid       *time.Time
	BaseAmount     decimal.Decimal
	InterestAmount decimal.Decimal
	TotalInterest  decimal.Decimal
}

// IsPaid reports whether the installment has a paid date.
func (p *CreditPayment) IsPaid() bool {
	return p.DatePaid != nil
}

// IsOverdue reports whether the installment was due before now and is still unpaid.
func (p *CreditPayment) IsOverdue(now time.Time) bool {
	return !p.IsPaid() && p.PaymentDate.Before(now)
}

// Amount returns the installment amount (base plus interest).
func (p *CreditPayment) Amount() decimal.Decimal {
	return p.BaseAmount.Add(p.InterestAmount)
}

// CreditPaymentInsert is the write shape for credit_payments. CreditID may be
// left zero when the installment is created together with its credit.
type CreditPaymentInsert struct {
	CreditID       int64           `json:"credit_id" validate:"gte=0"`
	Status         *PaymentStatus  `json:"status" validate:"omitempty,oneof=pending in-progress complete"`
	Nro            int             `json:"nro" validate:"gt=0"`
	PaymentDate    time.Time       `json:"payment_date" validate:"required"`
	DatePaid       *time.Time      `json:"date_paid"`
	BaseAmount     decimal.Decimal `json:"base_amount"`
	InterestAmount decimal.Decimal `json:"interest_amount"`
	TotalInterest  decimal.Decimal `json:"total_interest"`
}

// Validate checks the insert at the system boundary.
func (in CreditPaymentInsert) Validate() error {
	verr := shared.ValidateStruct(in)
	if in.BaseAmount.IsNegative() {
		verr.Add("base_amount", "Must not be negative")
	}
	if in.InterestAmount.IsNegative() {
		verr.Add("interest_amount", "Must not be negative")
	}
	if in.TotalInterest.IsNegative() {
		verr.Add("total_interest", "Must not be negative")
	}
	return verr.ErrOrNil()
}

// CheckInstallmentOrder verifies that nros are unique and contiguous from 1,
// in any order.
func CheckInstallmentOrder(nros []int) error {
	sorted := append([]int(nil), nros...)
	sort.Ints(sorted)
	for i, n := range sorted {
		if n != i+1 {
			return shared.InvalidInput(fmt.Sprintf("installment numbers must run 1..%d without gaps or repeats, found %d at position %d", len(sorted), n, i+1))
		}
	}
	return nil
}

// ValidateSchedule validates every installment and the numbering of the set.
func ValidateSchedule(installments []CreditPaymentInsert) error {
	nros := make([]int, len(installments))
	for i, in := range installments {
		if err := in.Validate(); err != nil {
			return fmt.Errorf("installment %d: %w", i+1, err)
		}
		nros[i] = in.Nro
	}
	return CheckInstallmentOrder(nros)
}
