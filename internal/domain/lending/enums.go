package lending

import (
	"fmt"

	"github.com/credito/backend/internal/domain/shared"
)

// Status is the lifecycle status of a client or adviser.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Statuses returns the legal Status values in declaration order.
func Statuses() []Status {
	return []Status{StatusActive, StatusInactive}
}

// IsValid reports whether s belongs to the closed set.
func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusInactive:
		return true
	}
	return false
}

// ParseStatus converts untyped input into a Status.
func ParseStatus(v string) (Status, error) {
	s := Status(v)
	if !s.IsValid() {
		return "", shared.InvalidInput(fmt.Sprintf("invalid status %q", v))
	}
	return s, nil
}

// PaymentStatus is the settlement state shared by credits and their installments.
type PaymentStatus string

const (
	PaymentPending    PaymentStatus = "pending"
	PaymentInProgress PaymentStatus = "in-progress"
	PaymentComplete   PaymentStatus = "complete"
)

// PaymentStatuses returns the legal PaymentStatus values in declaration order.
func PaymentStatuses() []PaymentStatus {
	return []PaymentStatus{PaymentPending, PaymentInProgress, PaymentComplete}
}

// IsValid reports whether s belongs to the closed set.
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentPending, PaymentInProgress, PaymentComplete:
		return true
	}
	return false
}

// ParsePaymentStatus converts untyped input into a PaymentStatus.
func ParsePaymentStatus(v string) (PaymentStatus, error) {
	s := PaymentStatus(v)
	if !s.IsValid() {
		return "", shared.InvalidInput(fmt.Sprintf("invalid payment status %q", v))
	}
	return s, nil
}

// PaymentFrequency is the time between two installments of a credit.
type PaymentFrequency string

const (
	EveryDay      PaymentFrequency = "every-day"
	EveryWeek     PaymentFrequency = "every-week"
	EveryTwoWeeks PaymentFrequency = "every-two-weeks"
	EveryMonth    PaymentFrequency = "every-month"
)

// PaymentFrequencies returns the legal PaymentFrequency values in declaration order.
func PaymentFrequencies() []PaymentFrequency {
	return []PaymentFrequency{EveryDay, EveryWeek, EveryTwoWeeks, EveryMonth}
}

// IsValid reports whether f belongs to the closed set.
func (f PaymentFrequency) IsValid() bool {
	switch f {
	case EveryDay, EveryWeek, EveryTwoWeeks, EveryMonth:
		return true
	}
	return false
}

// ParsePaymentFrequency converts untyped input into a PaymentFrequency.
func ParsePaymentFrequency(v string) (PaymentFrequency, error) {
	f := PaymentFrequency(v)
	if !f.IsValid() {
		return "", shared.InvalidInput(fmt.Sprintf("invalid time between payments %q", v))
	}
	return f, nil
}

func stringsOf[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

// StatusValues returns the Status set as plain strings.
func StatusValues() []string { return stringsOf(Statuses()) }

// PaymentStatusValues returns the PaymentStatus set as plain strings.
func PaymentStatusValues() []string { return stringsOf(PaymentStatuses()) }

// PaymentFrequencyValues returns the PaymentFrequency set as plain strings.
func PaymentFrequencyValues() []string { return stringsOf(PaymentFrequencies()) }
