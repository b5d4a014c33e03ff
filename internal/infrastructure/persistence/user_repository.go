package persistence

import (
	"context"
	"time"

	"github.com/credito/backend/internal/domain/identity"
	"github.com/credito/backend/internal/domain/shared"
	"github.com/credito/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormUserRepository implements identity.UserRepository using GORM.
// Soft-deleted users are invisible to every lookup except
// FindByIDIncludingDeleted.
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Create inserts a user. The email is stored normalized and must be unique
// across all users, deleted ones included.
func (r *GormUserRepository) Create(ctx context.Context, in identity.UserInsert) (*identity.User, error) {
	in.Email = identity.NormalizeEmail(in.Email)
	if err := in.Validate(); err != nil {
		return nil, err
	}
	model := models.UserModelFromInsert(in)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return nil, translateError(err, "user")
	}
	return model.ToDomain(), nil
}

// FindByID finds an active user by ID
func (r *GormUserRepository) FindByID(ctx context.Context, id int64) (*identity.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "user")
	}
	return model.ToDomain(), nil
}

// FindByEmail finds an active user by email, case-insensitively
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	email = identity.NormalizeEmail(email)
	if email == "" {
		return nil, shared.InvalidInput("Email cannot be empty")
	}
	var model models.UserModel
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error; err != nil {
		return nil, translateError(err, "user")
	}
	return model.ToDomain(), nil
}

// FindByIDIncludingDeleted finds a user by ID whether or not it was deleted
func (r *GormUserRepository) FindByIDIncludingDeleted(ctx context.Context, id int64) (*identity.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).Unscoped().First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "user")
	}
	return model.ToDomain(), nil
}

// UpdatePasswordHash replaces the stored password hash of an active user
func (r *GormUserRepository) UpdatePasswordHash(ctx context.Context, id int64, hash string) error {
	if hash == "" {
		return shared.InvalidInput("Password hash cannot be empty")
	}
	res := r.db.WithContext(ctx).Model(&models.UserModel{}).Where("id = ?", id).Update("password_hash", hash)
	return requireAffected(res, "user")
}

// SoftDelete sets deleted_at. Repeating it only moves deleted_at; the row is
// never removed and updated_at is left alone.
func (r *GormUserRepository) SoftDelete(ctx context.Context, id int64, at time.Time) error {
	res := r.db.WithContext(ctx).
		Unscoped().
		Model(&models.UserModel{}).
		Where("id = ?", id).
		UpdateColumn("deleted_at", at)
	return requireAffected(res, "user")
}

// Memberships returns the team memberships of a user
func (r *GormUserRepository) Memberships(ctx context.Context, userID int64) ([]identity.TeamMember, error) {
	var rows []models.TeamMemberModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("joined_at ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, translateError(err, "team member")
	}
	return toTeamMembers(rows), nil
}

// InvitationsSent returns the invitations a user issued
func (r *GormUserRepository) InvitationsSent(ctx context.Context, userID int64) ([]identity.Invitation, error) {
	return findInvitations(r.db.WithContext(ctx).Where("invited_by = ?", userID))
}

var _ identity.UserRepository = (*GormUserRepository)(nil)
