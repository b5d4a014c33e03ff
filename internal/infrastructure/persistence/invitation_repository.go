package persistence

import (
	"context"

	"github.com/credito/backend/internal/domain/identity"
	"github.com/credito/backend/internal/domain/shared"
	"github.com/credito/backend/internal/infrastructure/logger"
	"github.com/credito/backend/internal/infrastructure/persistence/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// GormInvitationRepository implements identity.InvitationRepository using GORM
type GormInvitationRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewGormInvitationRepository creates a new GormInvitationRepository
func NewGormInvitationRepository(db *gorm.DB, log *zap.Logger) *GormInvitationRepository {
	return &GormInvitationRepository{db: db, log: log}
}

// Create inserts an invitation, pending unless a status is given
func (r *GormInvitationRepository) Create(ctx context.Context, in identity.InvitationInsert) (*identity.Invitation, error) {
	in.Email = identity.NormalizeEmail(in.Email)
	if err := in.Validate(); err != nil {
		return nil, err
	}
	model := models.InvitationModelFromInsert(in)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return nil, translateError(err, "invitation")
	}
	return model.ToDomain(), nil
}

// FindByID finds an invitation by its ID
func (r *GormInvitationRepository) FindByID(ctx context.Context, id int64) (*identity.Invitation, error) {
	var model models.InvitationModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "invitation")
	}
	return model.ToDomain(), nil
}

// PendingForEmail returns the pending invitations addressed to an email
func (r *GormInvitationRepository) PendingForEmail(ctx context.Context, email string) ([]identity.Invitation, error) {
	return findInvitations(r.db.WithContext(ctx).
		Where("email = ? AND status = ?", identity.NormalizeEmail(email), identity.InvitationPending))
}

// ForTeam returns every invitation issued for a team
func (r *GormInvitationRepository) ForTeam(ctx context.Context, teamID int64) ([]identity.Invitation, error) {
	return findInvitations(r.db.WithContext(ctx).Where("team_id = ?", teamID))
}

// SentBy returns the invitations issued by a user
func (r *GormInvitationRepository) SentBy(ctx context.Context, userID int64) ([]identity.Invitation, error) {
	return findInvitations(r.db.WithContext(ctx).Where("invited_by = ?", userID))
}

// SetStatus moves a pending invitation to accepted or revoked. The update is
// conditional on the row still being pending, so concurrent callers cannot
// both succeed.
func (r *GormInvitationRepository) SetStatus(ctx context.Context, id int64, status identity.InvitationStatus) error {
	var teamID int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model models.InvitationModel
		if err := tx.First(&model, "id = ?", id).Error; err != nil {
			return translateError(err, "invitation")
		}
		if err := model.ToDomain().CanTransitionTo(status); err != nil {
			return err
		}
		res := tx.Model(&models.InvitationModel{}).
			Where("id = ? AND status = ?", id, identity.InvitationPending).
			Update("status", status)
		if res.Error != nil {
			return translateError(res.Error, "invitation")
		}
		if res.RowsAffected == 0 {
			return shared.NewDomainError(shared.ErrInvalidState.Code, "invitation is no longer pending")
		}
		teamID = model.TeamID
		return nil
	})
	if err != nil {
		return err
	}
	logger.LOr(logger.WithTeamID(ctx, teamID), r.log).Info("Invitation status changed",
		zap.Int64("invitation_id", id),
		zap.String("status", string(status)),
	)
	return nil
}

func findInvitations(query *gorm.DB) ([]identity.Invitation, error) {
	var rows []models.InvitationModel
	if err := query.Order("invited_at DESC, id DESC").Find(&rows).Error; err != nil {
		return nil, translateError(err, "invitation")
	}
	invitations := make([]identity.Invitation, len(rows))
	for i := range rows {
		invitations[i] = *rows[i].ToDomain()
	}
	return invitations, nil
}

var _ identity.InvitationRepository = (*GormInvitationRepository)(nil)
