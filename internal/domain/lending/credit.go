package lending

import (
	"time"

	"github.com/credito/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Credit is a loan extended to a client, as stored in the credits table.
// Monetary columns are exact decimals.
type Credit struct {
	ID                  int64
	ClientID            *int64
	AdviserID           *int64
	Status              PaymentStatus
	StartDate           time.Time
	EndDate             time.Time
	CreditAmount        decimal.Decimal
	Percentage          decimal.Decimal
	Quotas              int
	BaseAmount          decimal.Decimal
	InterestAmount      decimal.Decimal
	FeeAmount           decimal.Decimal
	TotalInterest       decimal.Decimal
	Total               decimal.Decimal
	TimeBetweenPayments PaymentFrequency
}

// IsSettled reports whether every installment has been paid.
func (c *Credit) IsSettled() bool {
	return c.Status == PaymentComplete
}

// CreditInsert is the write shape for credits. ClientID is required here even
// though the column itself is nullable.
type CreditInsert struct {
	ClientID            int64             `json:"client_id" validate:"required,gt=0"`
	AdviserID           *int64            `json:"adviser_id" validate:"omitempty,gt=0"`
	Status              *PaymentStatus    `json:"status" validate:"omitempty,oneof=pending in-progress complete"`
	StartDate           time.Time         `json:"start_date" validate:"required"`
	EndDate             time.Time         `json:"end_date" validate:"required"`
	CreditAmount        decimal.Decimal   `json:"credit_amount"`
	Percentage          decimal.Decimal   `json:"percentage"`
	Quotas              int               `json:"quotas" validate:"gt=0"`
	BaseAmount          decimal.Decimal   `json:"base_amount"`
	InterestAmount      decimal.Decimal   `json:"interest_amount"`
	FeeAmount           decimal.Decimal   `json:"fee_amount"`
	TotalInterest       decimal.Decimal   `json:"total_interest"`
	Total               decimal.Decimal   `json:"total"`
	TimeBetweenPayments *PaymentFrequency `json:"time_between_payments" validate:"omitempty,oneof=every-day every-week every-two-weeks every-month"`
}

// Validate checks field constraints and the business invariants the storage
// layer does not enforce: the end date may not precede the start date, and the
// grand total must equal base amount plus total interest.
func (in CreditInsert) Validate() error {
	verr := shared.ValidateStruct(in)

	if !in.StartDate.IsZero() && !in.EndDate.IsZero() && in.EndDate.Before(in.StartDate) {
		verr.Add("end_date", "Must not be before start_date")
	}

	amounts := []struct {
		field string
		value decimal.Decimal
	}{
		{"credit_amount", in.CreditAmount},
		{"percentage", in.Percentage},
		{"base_amount", in.BaseAmount},
		{"interest_amount", in.InterestAmount},
		{"fee_amount", in.FeeAmount},
		{"total_interest", in.TotalInterest},
		{"total", in.Total},
	}
	for _, a := range amounts {
		if a.value.IsNegative() {
			verr.Add(a.field, "Must not be negative")
		}
	}

	if !in.Total.Equal(in.BaseAmount.Add(in.TotalInterest)) {
		verr.Add("total", "Must equal base_amount + total_interest")
	}

	return verr.ErrOrNil()
}
