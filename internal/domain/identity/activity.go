package identity

import (
	"time"

	"github.com/credito/backend/internal/domain/shared"
)

// ActivityType names an audited action. It is stored in activity_logs.action.
type ActivityType string

const (
	ActivitySignUp           ActivityType = "SIGN_UP"
	ActivitySignIn           ActivityType = "SIGN_IN"
	ActivitySignOut          ActivityType = "SIGN_OUT"
	ActivityUpdatePassword   ActivityType = "UPDATE_PASSWORD"
	ActivityDeleteAccount    ActivityType = "DELETE_ACCOUNT"
	ActivityUpdateAccount    ActivityType = "UPDATE_ACCOUNT"
	ActivityCreateTeam       ActivityType = "CREATE_TEAM"
	ActivityRemoveTeamMember ActivityType = "REMOVE_TEAM_MEMBER"
	ActivityInviteTeamMember ActivityType = "INVITE_TEAM_MEMBER"
	ActivityAcceptInvitation ActivityType = "ACCEPT_INVITATION"
)

// ActivityTypes returns every known activity type.
func ActivityTypes() []ActivityType {
	return []ActivityType{
		ActivitySignUp,
		ActivitySignIn,
		ActivitySignOut,
		ActivityUpdatePassword,
		ActivityDeleteAccount,
		ActivityUpdateAccount,
		ActivityCreateTeam,
		ActivityRemoveTeamMember,
		ActivityInviteTeamMember,
		ActivityAcceptInvitation,
	}
}

// IsValid reports whether a is a known activity type.
func (a ActivityType) IsValid() bool {
	for _, known := range ActivityTypes() {
		if a == known {
			return true
		}
	}
	return false
}

// ActivityLog is an append-only audit record, as stored in activity_logs.
type ActivityLog struct {
	ID        int64
	TeamID    int64
	UserID    *int64
	Action    ActivityType
	Timestamp time.Time
	IPAddress string
}

// ActivityLogInsert is the write shape for activity_logs. Timestamp is
// assigned on insert.
type ActivityLogInsert struct {
	TeamID    int64        `json:"team_id" validate:"required,gt=0"`
	UserID    *int64       `json:"user_id" validate:"omitempty,gt=0"`
	Action    ActivityType `json:"action" validate:"required"`
	IPAddress string       `json:"ip_address" validate:"omitempty,max=45,ip"`
}

// Validate checks the insert at the system boundary.
func (in ActivityLogInsert) Validate() error {
	verr := shared.ValidateStruct(in)
	if in.Action != "" && !in.Action.IsValid() {
		verr.Add("action", "Unknown activity type")
	}
	return verr.ErrOrNil()
}
