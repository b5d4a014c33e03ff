package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestTeamInsert_Validate(t *testing.T) {
	assert.NoError(t, TeamInsert{Name: "Acme"}.Validate())
	assert.Error(t, TeamInsert{}.Validate(), "name is required")
	assert.Error(t, TeamInsert{Name: "Acme", StripeCustomerID: strPtr("")}.Validate(),
		"empty billing ids would collide on the unique column")
	assert.Error(t, TeamInsert{Name: "Acme", SubscriptionStatus: strPtr("past_due_and_then_some")}.Validate())
}

func TestTeam_HasSubscription(t *testing.T) {
	team := Team{Name: "Acme"}
	assert.False(t, team.HasSubscription())

	team.StripeSubscriptionID = strPtr("sub_123")
	assert.True(t, team.HasSubscription())
}

func TestTeamMemberInsert_Validate(t *testing.T) {
	assert.NoError(t, TeamMemberInsert{UserID: 1, TeamID: 2, Role: RoleOwner}.Validate())
	assert.Error(t, TeamMemberInsert{UserID: 1, TeamID: 2}.Validate(), "role is required")
	assert.Error(t, TeamMemberInsert{TeamID: 2, Role: RoleMember}.Validate(), "user is required")
}

func TestTeamDataWithMembers_Owners(t *testing.T) {
	data := TeamDataWithMembers{
		Team: Team{ID: 1, Name: "Acme"},
		Members: []MemberWithUser{
			{TeamMember: TeamMember{UserID: 1, Role: RoleOwner}},
			{TeamMember: TeamMember{UserID: 2, Role: RoleMember}},
		},
	}

	owners := data.Owners()
	if assert.Len(t, owners, 1) {
		assert.Equal(t, int64(1), owners[0].UserID)
	}
}
