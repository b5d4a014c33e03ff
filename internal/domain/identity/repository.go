package identity

import (
	"context"
	"time"
)

// UserRepository defines persistence for users. Lookups skip soft-deleted
// users unless stated otherwise.
type UserRepository interface {
	Create(ctx context.Context, in UserInsert) (*User, error)
	FindByID(ctx context.Context, id int64) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	// FindByIDIncludingDeleted also returns soft-deleted users.
	FindByIDIncludingDeleted(ctx context.Context, id int64) (*User, error)
	UpdatePasswordHash(ctx context.Context, id int64, hash string) error
	// SoftDelete sets deleted_at to at. Calling it again only moves the timestamp.
	SoftDelete(ctx context.Context, id int64, at time.Time) error
	// Memberships returns the team memberships of a user.
	Memberships(ctx context.Context, userID int64) ([]TeamMember, error)
	// InvitationsSent returns the invitations a user has issued.
	InvitationsSent(ctx context.Context, userID int64) ([]Invitation, error)
}

// TeamRepository defines persistence for teams and their memberships.
type TeamRepository interface {
	Create(ctx context.Context, in TeamInsert) (*Team, error)
	FindByID(ctx context.Context, id int64) (*Team, error)
	FindByStripeCustomerID(ctx context.Context, customerID string) (*Team, error)
	UpdateSubscription(ctx context.Context, id int64, sub Subscription) error
	// AddMember inserts a membership, or updates its role when the user is
	// already a member of the team.
	AddMember(ctx context.Context, in TeamMemberInsert) (*TeamMember, error)
	RemoveMember(ctx context.Context, teamID, userID int64) error
	Members(ctx context.Context, teamID int64) ([]TeamMember, error)
	WithMembers(ctx context.Context, teamID int64) (*TeamDataWithMembers, error)
	TeamsForUser(ctx context.Context, userID int64) ([]Team, error)
}

// ActivityLogRepository defines persistence for the append-only audit log.
type ActivityLogRepository interface {
	Append(ctx context.Context, in ActivityLogInsert) (*ActivityLog, error)
	// ForTeam returns the newest entries first.
	ForTeam(ctx context.Context, teamID int64, limit int) ([]ActivityLog, error)
	ForUser(ctx context.Context, userID int64, limit int) ([]ActivityLog, error)
}

// InvitationRepository defines persistence for invitations.
type InvitationRepository interface {
	Create(ctx context.Context, in InvitationInsert) (*Invitation, error)
	FindByID(ctx context.Context, id int64) (*Invitation, error)
	PendingForEmail(ctx context.Context, email string) ([]Invitation, error)
	ForTeam(ctx context.Context, teamID int64) ([]Invitation, error)
	SentBy(ctx context.Context, userID int64) ([]Invitation, error)
	SetStatus(ctx context.Context, id int64, status InvitationStatus) error
}
