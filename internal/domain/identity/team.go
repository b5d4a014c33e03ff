package identity

import (
	"time"

	"github.com/credito/backend/internal/domain/shared"
)

// Team is a billing and tenancy grouping of users, as stored in the teams
// table. The Stripe columns are nil until the team subscribes.
type Team struct {
	ID                   int64
	Name                 string
	CreatedAt            time.Time
	UpdatedAt            time.Time
	StripeCustomerID     *string
	StripeSubscriptionID *string
	StripeProductID      *string
	PlanName             *string
	SubscriptionStatus   *string
}

// HasSubscription reports whether the team is linked to a billing subscription.
func (t *Team) HasSubscription() bool {
	return t.StripeSubscriptionID != nil && *t.StripeSubscriptionID != ""
}

// TeamInsert is the write shape for teams.
type TeamInsert struct {
	Name                 string  `json:"name" validate:"required,max=100"`
	StripeCustomerID     *string `json:"stripe_customer_id" validate:"omitempty,min=1"`
	StripeSubscriptionID *string `json:"stripe_subscription_id" validate:"omitempty,min=1"`
	StripeProductID      *string `json:"stripe_product_id"`
	PlanName             *string `json:"plan_name" validate:"omitempty,max=50"`
	SubscriptionStatus   *string `json:"subscription_status" validate:"omitempty,max=20"`
}

// Validate checks the insert at the system boundary.
func (in TeamInsert) Validate() error {
	return shared.ValidateStruct(in).ErrOrNil()
}

// Subscription carries the billing columns of a team. A nil field clears the
// column.
type Subscription struct {
	StripeCustomerID     *string `json:"stripe_customer_id" validate:"omitempty,min=1"`
	StripeSubscriptionID *string `json:"stripe_subscription_id" validate:"omitempty,min=1"`
	StripeProductID      *string `json:"stripe_product_id"`
	PlanName             *string `json:"plan_name" validate:"omitempty,max=50"`
	SubscriptionStatus   *string `json:"subscription_status" validate:"omitempty,max=20"`
}

// Validate checks the subscription fields.
func (s Subscription) Validate() error {
	return shared.ValidateStruct(s).ErrOrNil()
}

// TeamMember links one user to one team with a per-membership role, as stored
// in the team_members table.
type TeamMember struct {
	ID       int64
	UserID   int64
	TeamID   int64
	Role     Role
	JoinedAt time.Time
}

// TeamMemberInsert is the write shape for team_members. JoinedAt is assigned
// on insert.
type TeamMemberInsert struct {
	UserID int64 `json:"user_id" validate:"required,gt=0"`
	TeamID int64 `json:"team_id" validate:"required,gt=0"`
	Role   Role  `json:"role" validate:"required,max=50"`
}

// Validate checks the insert at the system boundary.
func (in TeamMemberInsert) Validate() error {
	return shared.ValidateStruct(in).ErrOrNil()
}

// MemberWithUser is a membership together with the member's public user fields.
type MemberWithUser struct {
	TeamMember
	User UserSummary
}

// TeamDataWithMembers is a team with every membership and its user.
type TeamDataWithMembers struct {
	Team
	Members []MemberWithUser
}

// Owners returns the members holding the owner role.
func (t *TeamDataWithMembers) Owners() []MemberWithUser {
	var owners []MemberWithUser
	for _, m := range t.Members {
		if m.Role == RoleOwner {
			owners = append(owners, m)
		}
	}
	return owners
}
