package persistence

import (
	"context"

	"github.com/credito/backend/internal/domain/identity"
	"github.com/credito/backend/internal/domain/shared"
	"github.com/credito/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTeamRepository implements identity.TeamRepository using GORM
type GormTeamRepository struct {
	db *gorm.DB
}

// NewGormTeamRepository creates a new GormTeamRepository
func NewGormTeamRepository(db *gorm.DB) *GormTeamRepository {
	return &GormTeamRepository{db: db}
}

// Create inserts a team
func (r *GormTeamRepository) Create(ctx context.Context, in identity.TeamInsert) (*identity.Team, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	model := models.TeamModelFromInsert(in)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return nil, translateError(err, "team")
	}
	return model.ToDomain(), nil
}

// FindByID finds a team by its ID
func (r *GormTeamRepository) FindByID(ctx context.Context, id int64) (*identity.Team, error) {
	var model models.TeamModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "team")
	}
	return model.ToDomain(), nil
}

// FindByStripeCustomerID finds the team billed to a Stripe customer
func (r *GormTeamRepository) FindByStripeCustomerID(ctx context.Context, customerID string) (*identity.Team, error) {
	if customerID == "" {
		return nil, shared.InvalidInput("Stripe customer ID cannot be empty")
	}
	var model models.TeamModel
	if err := r.db.WithContext(ctx).Where("stripe_customer_id = ?", customerID).First(&model).Error; err != nil {
		return nil, translateError(err, "team")
	}
	return model.ToDomain(), nil
}

// UpdateSubscription overwrites the billing columns of a team. Nil fields
// clear the stored value.
func (r *GormTeamRepository) UpdateSubscription(ctx context.Context, id int64, sub identity.Subscription) error {
	if err := sub.Validate(); err != nil {
		return err
	}
	res := r.db.WithContext(ctx).
		Model(&models.TeamModel{}).
		Where("id = ?", id).
		Updates(models.SubscriptionColumns(sub))
	return requireAffected(res, "team")
}

// AddMember inserts a membership. When the user already belongs to the team
// the stored role is replaced and the original joined_at kept.
func (r *GormTeamRepository) AddMember(ctx context.Context, in identity.TeamMemberInsert) (*identity.TeamMember, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	model := models.TeamMemberModelFromInsert(in)
	db := r.db.WithContext(ctx)
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "team_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"role"}),
	}).Create(model).Error
	if err != nil {
		return nil, translateError(err, "team member")
	}

	var stored models.TeamMemberModel
	if err := db.Where("user_id = ? AND team_id = ?", in.UserID, in.TeamID).First(&stored).Error; err != nil {
		return nil, translateError(err, "team member")
	}
	return stored.ToDomain(), nil
}

// RemoveMember deletes a membership
func (r *GormTeamRepository) RemoveMember(ctx context.Context, teamID, userID int64) error {
	res := r.db.WithContext(ctx).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Delete(&models.TeamMemberModel{})
	return requireAffected(res, "team member")
}

// Members returns the memberships of a team in join order
func (r *GormTeamRepository) Members(ctx context.Context, teamID int64) ([]identity.TeamMember, error) {
	var rows []models.TeamMemberModel
	if err := r.db.WithContext(ctx).
		Where("team_id = ?", teamID).
		Order("joined_at ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, translateError(err, "team member")
	}
	return toTeamMembers(rows), nil
}

// WithMembers loads a team with its members and their user summaries.
// Members whose user was soft-deleted are left out.
func (r *GormTeamRepository) WithMembers(ctx context.Context, teamID int64) (*identity.TeamDataWithMembers, error) {
	team, err := r.FindByID(ctx, teamID)
	if err != nil {
		return nil, err
	}

	var rows []models.MemberWithUserRow
	if err := r.db.WithContext(ctx).
		Table("team_members").
		Select("team_members.*, users.name AS user_name, users.email AS user_email").
		Joins("JOIN users ON users.id = team_members.user_id").
		Where("team_members.team_id = ? AND users.deleted_at IS NULL", teamID).
		Order("team_members.joined_at ASC, team_members.id ASC").
		Scan(&rows).Error; err != nil {
		return nil, translateError(err, "team member")
	}

	members := make([]identity.MemberWithUser, len(rows))
	for i := range rows {
		members[i] = rows[i].ToDomain()
	}
	return &identity.TeamDataWithMembers{Team: *team, Members: members}, nil
}

// TeamsForUser returns the teams a user belongs to
func (r *GormTeamRepository) TeamsForUser(ctx context.Context, userID int64) ([]identity.Team, error) {
	var rows []models.TeamModel
	if err := r.db.WithContext(ctx).
		Joins("JOIN team_members ON team_members.team_id = teams.id").
		Where("team_members.user_id = ?", userID).
		Order("teams.id ASC").
		Find(&rows).Error; err != nil {
		return nil, translateError(err, "team")
	}
	teams := make([]identity.Team, len(rows))
	for i := range rows {
		teams[i] = *rows[i].ToDomain()
	}
	return teams, nil
}

func toTeamMembers(rows []models.TeamMemberModel) []identity.TeamMember {
	members := make([]identity.TeamMember, len(rows))
	for i := range rows {
		members[i] = *rows[i].ToDomain()
	}
	return members
}

var _ identity.TeamRepository = (*GormTeamRepository)(nil)
