package persistence

import (
	"context"
	"time"

	"github.com/credito/backend/internal/domain/lending"
	"github.com/credito/backend/internal/domain/shared"
	"github.com/credito/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCreditPaymentRepository implements lending.CreditPaymentRepository using GORM
type GormCreditPaymentRepository struct {
	db *gorm.DB
}

// NewGormCreditPaymentRepository creates a new GormCreditPaymentRepository
func NewGormCreditPaymentRepository(db *gorm.DB) *GormCreditPaymentRepository {
	return &GormCreditPaymentRepository{db: db}
}

// Create inserts a single installment of an existing credit. A repeated
// (credit_id, nro) pair is rejected by the unique index.
func (r *GormCreditPaymentRepository) Create(ctx context.Context, in lending.CreditPaymentInsert) (*lending.CreditPayment, error) {
	if in.CreditID <= 0 {
		return nil, shared.InvalidInput("credit_id is required for a standalone installment")
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	model := models.CreditPaymentModelFromInsert(in)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return nil, translateError(err, "credit payment")
	}
	return model.ToDomain(), nil
}

// FindByID finds an installment by its ID
func (r *GormCreditPaymentRepository) FindByID(ctx context.Context, id int64) (*lending.CreditPayment, error) {
	var model models.CreditPaymentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "credit payment")
	}
	return model.ToDomain(), nil
}

// FindByCredit returns the schedule of a credit ordered by installment number
func (r *GormCreditPaymentRepository) FindByCredit(ctx context.Context, creditID int64) ([]lending.CreditPayment, error) {
	return r.find(r.db.WithContext(ctx).
		Where("credit_id = ?", creditID).
		Order("nro ASC"))
}

// FindUnpaid returns the installments of a credit that have no payment date
func (r *GormCreditPaymentRepository) FindUnpaid(ctx context.Context, creditID int64) ([]lending.CreditPayment, error) {
	return r.find(r.db.WithContext(ctx).
		Where("credit_id = ? AND date_paid IS NULL", creditID).
		Order("nro ASC"))
}

// FindDueBefore returns unpaid installments of every credit due before the
// given instant, earliest first. Payment dates are stored in UTC.
func (r *GormCreditPaymentRepository) FindDueBefore(ctx context.Context, before time.Time) ([]lending.CreditPayment, error) {
	return r.find(r.db.WithContext(ctx).
		Where("date_paid IS NULL AND payment_date < ?", before.UTC()).
		Order("payment_date ASC, id ASC"))
}

// MarkPaid records the payment date and completes the installment
func (r *GormCreditPaymentRepository) MarkPaid(ctx context.Context, id int64, paidAt time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&models.CreditPaymentModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"date_paid": paidAt.UTC(),
			"status":    lending.PaymentComplete,
		})
	return requireAffected(res, "credit payment")
}

func (r *GormCreditPaymentRepository) find(query *gorm.DB) ([]lending.CreditPayment, error) {
	var rows []models.CreditPaymentModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, translateError(err, "credit payment")
	}
	payments := make([]lending.CreditPayment, len(rows))
	for i := range rows {
		payments[i] = *rows[i].ToDomain()
	}
	return payments, nil
}

var _ lending.CreditPaymentRepository = (*GormCreditPaymentRepository)(nil)
