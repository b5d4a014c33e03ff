package lending

import (
	"context"
	"time"

	"github.com/credito/backend/internal/domain/shared"
)

// ClientRepository defines persistence for clients.
type ClientRepository interface {
	Create(ctx context.Context, in ClientInsert) (*Client, error)
	FindByID(ctx context.Context, id int64) (*Client, error)
	FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[Client], error)
	FindByStatus(ctx context.Context, status Status, filter shared.Filter) (shared.Paginated[Client], error)
	FindByDNI(ctx context.Context, dniType, dni string) (*Client, error)
	SetStatus(ctx context.Context, id int64, status Status) error
	Count(ctx context.Context) (int64, error)
}

// AdviserRepository defines persistence for advisers.
type AdviserRepository interface {
	Create(ctx context.Context, in AdviserInsert) (*Adviser, error)
	FindByID(ctx context.Context, id int64) (*Adviser, error)
	FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[Adviser], error)
	FindByStatus(ctx context.Context, status Status, filter shared.Filter) (shared.Paginated[Adviser], error)
	SetStatus(ctx context.Context, id int64, status Status) error
}

// CreditRepository defines persistence for credits. Installment-level
// operations live on CreditPaymentRepository.
type CreditRepository interface {
	Create(ctx context.Context, in CreditInsert) (*Credit, error)
	// CreateWithSchedule stores a credit and its installments atomically.
	CreateWithSchedule(ctx context.Context, in CreditInsert, schedule []CreditPaymentInsert) (*Credit, []CreditPayment, error)
	FindByID(ctx context.Context, id int64) (*Credit, error)
	FindByClient(ctx context.Context, clientID int64) ([]Credit, error)
	FindByAdviser(ctx context.Context, adviserID int64) ([]Credit, error)
	FindByStatus(ctx context.Context, status PaymentStatus, filter shared.Filter) (shared.Paginated[Credit], error)
	UpdateStatus(ctx context.Context, id int64, status PaymentStatus) error
}

// CreditPaymentRepository defines persistence for installments.
type CreditPaymentRepository interface {
	Create(ctx context.Context, in CreditPaymentInsert) (*CreditPayment, error)
	FindByID(ctx context.Context, id int64) (*CreditPayment, error)
	// FindByCredit returns the installments of a credit ordered by nro.
	FindByCredit(ctx context.Context, creditID int64) ([]CreditPayment, error)
	FindUnpaid(ctx context.Context, creditID int64) ([]CreditPayment, error)
	FindDueBefore(ctx context.Context, before time.Time) ([]CreditPayment, error)
	// MarkPaid records the paid date and sets the installment status to complete.
	MarkPaid(ctx context.Context, id int64, paidAt time.Time) error
}
