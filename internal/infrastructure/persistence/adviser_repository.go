package persistence

import (
	"context"

	"github.com/credito/backend/internal/domain/lending"
	"github.com/credito/backend/internal/domain/shared"
	"github.com/credito/backend/internal/infrastructure/persistence/models"
	"github.com/credito/backend/internal/infrastructure/schema"
	"gorm.io/gorm"
)

// GormAdviserRepository implements lending.AdviserRepository using GORM
type GormAdviserRepository struct {
	db         *gorm.DB
	sortFields map[string]bool
}

// NewGormAdviserRepository creates a new GormAdviserRepository
func NewGormAdviserRepository(db *gorm.DB) *GormAdviserRepository {
	return &GormAdviserRepository{
		db:         db,
		sortFields: SortFields(schema.Default(), schema.TableAdvisers),
	}
}

// Create inserts an adviser
func (r *GormAdviserRepository) Create(ctx context.Context, in lending.AdviserInsert) (*lending.Adviser, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	model := models.AdviserModelFromInsert(in)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return nil, translateError(err, "adviser")
	}
	return model.ToDomain(), nil
}

// FindByID finds an adviser by its ID
func (r *GormAdviserRepository) FindByID(ctx context.Context, id int64) (*lending.Adviser, error) {
	var model models.AdviserModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "adviser")
	}
	return model.ToDomain(), nil
}

// FindAll returns one page of advisers and the total count
func (r *GormAdviserRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[lending.Adviser], error) {
	return paginate(r.db.WithContext(ctx), filter, r.sortFields, "adviser", adviserFromModel)
}

// FindByStatus returns one page of advisers with the given status
func (r *GormAdviserRepository) FindByStatus(ctx context.Context, status lending.Status, filter shared.Filter) (shared.Paginated[lending.Adviser], error) {
	if !status.IsValid() {
		return shared.Paginated[lending.Adviser]{}, shared.InvalidInput("invalid status " + string(status))
	}
	return paginate(r.db.WithContext(ctx).Where("status = ?", status), filter, r.sortFields, "adviser", adviserFromModel)
}

// SetStatus activates or deactivates an adviser
func (r *GormAdviserRepository) SetStatus(ctx context.Context, id int64, status lending.Status) error {
	if !status.IsValid() {
		return shared.InvalidInput("invalid status " + string(status))
	}
	res := r.db.WithContext(ctx).Model(&models.AdviserModel{}).Where("id = ?", id).Update("status", status)
	return requireAffected(res, "adviser")
}

func adviserFromModel(m *models.AdviserModel) lending.Adviser {
	return *m.ToDomain()
}

var _ lending.AdviserRepository = (*GormAdviserRepository)(nil)
