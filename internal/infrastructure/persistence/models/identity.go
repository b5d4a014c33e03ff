package models

import (
	"time"

	"github.com/credito/backend/internal/domain/identity"
	"gorm.io/gorm"
)

// UserModel is the persistence model for users. DeletedAt turns on GORM's
// soft-delete scoping: default queries skip rows where it is set.
type UserModel struct {
	ID           int64         `gorm:"column:id;primaryKey;autoIncrement"`
	Name         string        `gorm:"column:name;type:varchar(100)"`
	Email        string        `gorm:"column:email;type:varchar(255);not null;uniqueIndex"`
	PasswordHash string        `gorm:"column:password_hash;type:text;not null"`
	Role         identity.Role `gorm:"column:role;type:varchar(20);not null;default:member"`
	TimestampModel
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User.
func (m *UserModel) ToDomain() *identity.User {
	u := &identity.User{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Role:         m.Role,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if m.DeletedAt.Valid {
		at := m.DeletedAt.Time
		u.DeletedAt = &at
	}
	return u
}

// UserModelFromInsert builds a model for a new user.
func UserModelFromInsert(in identity.UserInsert) *UserModel {
	m := &UserModel{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: in.PasswordHash,
	}
	if in.Role != nil {
		m.Role = *in.Role
	}
	return m
}

// TeamModel is the persistence model for teams.
type TeamModel struct {
	ID   int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Name string `gorm:"column:name;type:varchar(100);not null"`
	TimestampModel
	StripeCustomerID     *string `gorm:"column:stripe_customer_id;type:text;uniqueIndex"`
	StripeSubscriptionID *string `gorm:"column:stripe_subscription_id;type:text;uniqueIndex"`
	StripeProductID      *string `gorm:"column:stripe_product_id;type:text"`
	PlanName             *string `gorm:"column:plan_name;type:varchar(50)"`
	SubscriptionStatus   *string `gorm:"column:subscription_status;type:varchar(20)"`
}

// TableName returns the table name for GORM
func (TeamModel) TableName() string {
	return "teams"
}

// ToDomain converts the persistence model to a domain Team.
func (m *TeamModel) ToDomain() *identity.Team {
	return &identity.Team{
		ID:                   m.ID,
		Name:                 m.Name,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
		StripeCustomerID:     m.StripeCustomerID,
		StripeSubscriptionID: m.StripeSubscriptionID,
		StripeProductID:      m.StripeProductID,
		PlanName:             m.PlanName,
		SubscriptionStatus:   m.SubscriptionStatus,
	}
}

// TeamModelFromInsert builds a model for a new team.
func TeamModelFromInsert(in identity.TeamInsert) *TeamModel {
	return &TeamModel{
		Name:                 in.Name,
		StripeCustomerID:     in.StripeCustomerID,
		StripeSubscriptionID: in.StripeSubscriptionID,
		StripeProductID:      in.StripeProductID,
		PlanName:             in.PlanName,
		SubscriptionStatus:   in.SubscriptionStatus,
	}
}

// SubscriptionColumns returns the billing columns for an update. Nil fields
// are written as NULL.
func SubscriptionColumns(s identity.Subscription) map[string]any {
	return map[string]any{
		"stripe_customer_id":     s.StripeCustomerID,
		"stripe_subscription_id": s.StripeSubscriptionID,
		"stripe_product_id":      s.StripeProductID,
		"plan_name":              s.PlanName,
		"subscription_status":    s.SubscriptionStatus,
	}
}

// TeamMemberModel is the persistence model for team_members.
type TeamMemberModel struct {
	ID       int64         `gorm:"column:id;primaryKey;autoIncrement"`
	UserID   int64         `gorm:"column:user_id;not null;uniqueIndex:team_members_user_id_team_id_key,priority:1"`
	TeamID   int64         `gorm:"column:team_id;not null;uniqueIndex:team_members_user_id_team_id_key,priority:2"`
	Role     identity.Role `gorm:"column:role;type:varchar(50);not null"`
	JoinedAt time.Time     `gorm:"column:joined_at;not null;autoCreateTime"`
}

// TableName returns the table name for GORM
func (TeamMemberModel) TableName() string {
	return "team_members"
}

// ToDomain converts the persistence model to a domain TeamMember.
func (m *TeamMemberModel) ToDomain() *identity.TeamMember {
	return &identity.TeamMember{
		ID:       m.ID,
		UserID:   m.UserID,
		TeamID:   m.TeamID,
		Role:     m.Role,
		JoinedAt: m.JoinedAt,
	}
}

// TeamMemberModelFromInsert builds a model for a new membership.
func TeamMemberModelFromInsert(in identity.TeamMemberInsert) *TeamMemberModel {
	return &TeamMemberModel{
		UserID: in.UserID,
		TeamID: in.TeamID,
		Role:   in.Role,
	}
}

// MemberWithUserRow is the scan target of the team_members/users join.
type MemberWithUserRow struct {
	TeamMemberModel
	UserName  string `gorm:"column:user_name"`
	UserEmail string `gorm:"column:user_email"`
}

// ToDomain converts the joined row to a domain MemberWithUser.
func (r *MemberWithUserRow) ToDomain() identity.MemberWithUser {
	return identity.MemberWithUser{
		TeamMember: *r.TeamMemberModel.ToDomain(),
		User: identity.UserSummary{
			ID:    r.UserID,
			Name:  r.UserName,
			Email: r.UserEmail,
		},
	}
}

// ActivityLogModel is the persistence model for activity_logs.
type ActivityLogModel struct {
	ID        int64                 `gorm:"column:id;primaryKey;autoIncrement"`
	TeamID    int64                 `gorm:"column:team_id;not null;index"`
	UserID    *int64                `gorm:"column:user_id;index"`
	Action    identity.ActivityType `gorm:"column:action;type:text;not null"`
	Timestamp time.Time             `gorm:"column:timestamp;not null;autoCreateTime"`
	IPAddress string                `gorm:"column:ip_address;type:varchar(45)"`
}

// TableName returns the table name for GORM
func (ActivityLogModel) TableName() string {
	return "activity_logs"
}

// ToDomain converts the persistence model to a domain ActivityLog.
func (m *ActivityLogModel) ToDomain() *identity.ActivityLog {
	return &identity.ActivityLog{
		ID:        m.ID,
		TeamID:    m.TeamID,
		UserID:    m.UserID,
		Action:    m.Action,
		Timestamp: m.Timestamp,
		IPAddress: m.IPAddress,
	}
}

// ActivityLogModelFromInsert builds a model for a new log entry.
func ActivityLogModelFromInsert(in identity.ActivityLogInsert) *ActivityLogModel {
	return &ActivityLogModel{
		TeamID:    in.TeamID,
		UserID:    in.UserID,
		Action:    in.Action,
		IPAddress: in.IPAddress,
	}
}

// InvitationModel is the persistence model for invitations.
type InvitationModel struct {
	ID        int64                     `gorm:"column:id;primaryKey;autoIncrement"`
	TeamID    int64                     `gorm:"column:team_id;not null;index"`
	Email     string                    `gorm:"column:email;type:varchar(255);not null;index"`
	Role      identity.Role             `gorm:"column:role;type:varchar(50);not null"`
	InvitedBy int64                     `gorm:"column:invited_by;not null;index"`
	InvitedAt time.Time                 `gorm:"column:invited_at;not null;autoCreateTime"`
	Status    identity.InvitationStatus `gorm:"column:status;type:varchar(20);not null;default:pending"`
}

// TableName returns the table name for GORM
func (InvitationModel) TableName() string {
	return "invitations"
}

// ToDomain converts the persistence model to a domain Invitation.
func (m *InvitationModel) ToDomain() *identity.Invitation {
	return &identity.Invitation{
		ID:        m.ID,
		TeamID:    m.TeamID,
		Email:     m.Email,
		Role:      m.Role,
		InvitedBy: m.InvitedBy,
		InvitedAt: m.InvitedAt,
		Status:    m.Status,
	}
}

// InvitationModelFromInsert builds a model for a new invitation.
func InvitationModelFromInsert(in identity.InvitationInsert) *InvitationModel {
	m := &InvitationModel{
		TeamID:    in.TeamID,
		Email:     in.Email,
		Role:      in.Role,
		InvitedBy: in.InvitedBy,
	}
	if in.Status != nil {
		m.Status = *in.Status
	}
	return m
}

// All returns one zero value of every model, in table dependency order.
func All() []any {
	return []any{
		&ClientModel{},
		&AdviserModel{},
		&CreditModel{},
		&CreditPaymentModel{},
		&UserModel{},
		&TeamModel{},
		&TeamMemberModel{},
		&ActivityLogModel{},
		&InvitationModel{},
	}
}
