package persistence

import (
	"context"
	"fmt"

	"github.com/credito/backend/internal/domain/lending"
	"github.com/credito/backend/internal/domain/shared"
	"github.com/credito/backend/internal/infrastructure/logger"
	"github.com/credito/backend/internal/infrastructure/persistence/models"
	"github.com/credito/backend/internal/infrastructure/schema"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// GormCreditRepository implements lending.CreditRepository using GORM
type GormCreditRepository struct {
	db         *gorm.DB
	log        *zap.Logger
	sortFields map[string]bool
}

// NewGormCreditRepository creates a new GormCreditRepository
func NewGormCreditRepository(db *gorm.DB, log *zap.Logger) *GormCreditRepository {
	return &GormCreditRepository{
		db:         db,
		log:        log,
		sortFields: SortFields(schema.Default(), schema.TableCredits),
	}
}

// Create inserts a credit without installments
func (r *GormCreditRepository) Create(ctx context.Context, in lending.CreditInsert) (*lending.Credit, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	model := models.CreditModelFromInsert(in)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return nil, translateError(err, "credit")
	}
	return model.ToDomain(), nil
}

// CreateWithSchedule inserts a credit and its installments in one transaction.
// The schedule must hold exactly in.Quotas installments numbered 1..n; each
// installment's credit id is set to the new credit.
func (r *GormCreditRepository) CreateWithSchedule(ctx context.Context, in lending.CreditInsert, schedule []lending.CreditPaymentInsert) (*lending.Credit, []lending.CreditPayment, error) {
	if err := in.Validate(); err != nil {
		return nil, nil, err
	}
	if len(schedule) != in.Quotas {
		return nil, nil, shared.InvalidInput(fmt.Sprintf("schedule has %d installments, credit has %d quotas", len(schedule), in.Quotas))
	}
	if err := lending.ValidateSchedule(schedule); err != nil {
		return nil, nil, err
	}

	credit := models.CreditModelFromInsert(in)
	installments := make([]models.CreditPaymentModel, len(schedule))

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(credit).Error; err != nil {
			return translateError(err, "credit")
		}
		for i, p := range schedule {
			p.CreditID = credit.ID
			installments[i] = *models.CreditPaymentModelFromInsert(p)
		}
		if err := tx.Create(&installments).Error; err != nil {
			return translateError(err, "credit payment")
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	payments := make([]lending.CreditPayment, len(installments))
	for i := range installments {
		payments[i] = *installments[i].ToDomain()
	}
	logger.LOr(ctx, r.log).Info("Credit created with schedule",
		zap.Int64("credit_id", credit.ID),
		zap.Int64("client_id", in.ClientID),
		zap.Int("quotas", in.Quotas),
		zap.String("total", in.Total.String()),
	)
	return credit.ToDomain(), payments, nil
}

// FindByID finds a credit by its ID
func (r *GormCreditRepository) FindByID(ctx context.Context, id int64) (*lending.Credit, error) {
	var model models.CreditModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "credit")
	}
	return model.ToDomain(), nil
}

// FindByClient returns the credits of a client, oldest first
func (r *GormCreditRepository) FindByClient(ctx context.Context, clientID int64) ([]lending.Credit, error) {
	return r.find(r.db.WithContext(ctx).Where("client_id = ?", clientID).Order("start_date ASC, id ASC"))
}

// FindByAdviser returns the credits handled by an adviser, oldest first
func (r *GormCreditRepository) FindByAdviser(ctx context.Context, adviserID int64) ([]lending.Credit, error) {
	return r.find(r.db.WithContext(ctx).Where("adviser_id = ?", adviserID).Order("start_date ASC, id ASC"))
}

// FindByStatus returns one page of credits with the given status
func (r *GormCreditRepository) FindByStatus(ctx context.Context, status lending.PaymentStatus, filter shared.Filter) (shared.Paginated[lending.Credit], error) {
	if !status.IsValid() {
		return shared.Paginated[lending.Credit]{}, shared.InvalidInput("invalid payment status " + string(status))
	}
	return paginate(r.db.WithContext(ctx).Where("status = ?", status), filter, r.sortFields, "credit",
		func(m *models.CreditModel) lending.Credit { return *m.ToDomain() })
}

// UpdateStatus sets the status of a credit
func (r *GormCreditRepository) UpdateStatus(ctx context.Context, id int64, status lending.PaymentStatus) error {
	if !status.IsValid() {
		return shared.InvalidInput("invalid payment status " + string(status))
	}
	res := r.db.WithContext(ctx).Model(&models.CreditModel{}).Where("id = ?", id).Update("status", status)
	return requireAffected(res, "credit")
}

func (r *GormCreditRepository) find(query *gorm.DB) ([]lending.Credit, error) {
	var rows []models.CreditModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, translateError(err, "credit")
	}
	credits := make([]lending.Credit, len(rows))
	for i := range rows {
		credits[i] = *rows[i].ToDomain()
	}
	return credits, nil
}

var _ lending.CreditRepository = (*GormCreditRepository)(nil)
