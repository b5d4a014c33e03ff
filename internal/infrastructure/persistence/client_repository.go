package persistence

import (
	"context"

	"github.com/credito/backend/internal/domain/lending"
	"github.com/credito/backend/internal/domain/shared"
	"github.com/credito/backend/internal/infrastructure/persistence/models"
	"github.com/credito/backend/internal/infrastructure/schema"
	"gorm.io/gorm"
)

// GormClientRepository implements lending.ClientRepository using GORM
type GormClientRepository struct {
	db         *gorm.DB
	sortFields map[string]bool
}

// NewGormClientRepository creates a new GormClientRepository
func NewGormClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{
		db:         db,
		sortFields: SortFields(schema.Default(), schema.TableClients),
	}
}

// Create inserts a client. An omitted status is filled by the column default.
func (r *GormClientRepository) Create(ctx context.Context, in lending.ClientInsert) (*lending.Client, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	model := models.ClientModelFromInsert(in)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return nil, translateError(err, "client")
	}
	return model.ToDomain(), nil
}

// FindByID finds a client by its ID
func (r *GormClientRepository) FindByID(ctx context.Context, id int64) (*lending.Client, error) {
	var model models.ClientModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "client")
	}
	return model.ToDomain(), nil
}

// FindAll returns one page of clients and the total count
func (r *GormClientRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[lending.Client], error) {
	return paginate(r.db.WithContext(ctx), filter, r.sortFields, "client", clientFromModel)
}

// FindByStatus returns one page of clients with the given status
func (r *GormClientRepository) FindByStatus(ctx context.Context, status lending.Status, filter shared.Filter) (shared.Paginated[lending.Client], error) {
	if !status.IsValid() {
		return shared.Paginated[lending.Client]{}, shared.InvalidInput("invalid status " + string(status))
	}
	return paginate(r.db.WithContext(ctx).Where("status = ?", status), filter, r.sortFields, "client", clientFromModel)
}

// FindByDNI finds a client by identity document
func (r *GormClientRepository) FindByDNI(ctx context.Context, dniType, dni string) (*lending.Client, error) {
	if dni == "" {
		return nil, shared.InvalidInput("DNI cannot be empty")
	}
	var model models.ClientModel
	if err := r.db.WithContext(ctx).
		Where("dni_type = ? AND dni = ?", dniType, dni).
		First(&model).Error; err != nil {
		return nil, translateError(err, "client")
	}
	return model.ToDomain(), nil
}

// SetStatus activates or deactivates a client. Clients are never deleted.
func (r *GormClientRepository) SetStatus(ctx context.Context, id int64, status lending.Status) error {
	if !status.IsValid() {
		return shared.InvalidInput("invalid status " + string(status))
	}
	res := r.db.WithContext(ctx).Model(&models.ClientModel{}).Where("id = ?", id).Update("status", status)
	return requireAffected(res, "client")
}

// Count returns the number of clients
func (r *GormClientRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.ClientModel{}).Count(&count).Error; err != nil {
		return 0, translateError(err, "client")
	}
	return count, nil
}

func clientFromModel(m *models.ClientModel) lending.Client {
	return *m.ToDomain()
}

var _ lending.ClientRepository = (*GormClientRepository)(nil)
