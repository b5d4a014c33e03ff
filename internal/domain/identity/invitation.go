package identity

import (
	"fmt"
	"time"

	"github.com/credito/backend/internal/domain/shared"
)

// InvitationStatus is the state of an invitation. The column is a varchar;
// the application only writes these values.
type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationRevoked  InvitationStatus = "revoked"
)

// IsValid reports whether s is a known invitation status.
func (s InvitationStatus) IsValid() bool {
	switch s {
	case InvitationPending, InvitationAccepted, InvitationRevoked:
		return true
	}
	return false
}

// Invitation is a pending grant of team membership to an email address, as
// stored in the invitations table.
type Invitation struct {
	ID        int64
	TeamID    int64
	Email     string
	Role      Role
	InvitedBy int64
	InvitedAt time.Time
	Status    InvitationStatus
}

// IsPending reports whether the invitation can still be accepted.
func (i *Invitation) IsPending() bool {
	return i.Status == InvitationPending
}

// CanTransitionTo reports whether the invitation may move to next.
// Only pending invitations change state, and only to accepted or revoked.
func (i *Invitation) CanTransitionTo(next InvitationStatus) error {
	if !next.IsValid() {
		return shared.InvalidInput(fmt.Sprintf("invalid invitation status %q", next))
	}
	if next == InvitationPending {
		return shared.InvalidInput("an invitation cannot move back to pending")
	}
	if !i.IsPending() {
		return shared.NewDomainError(shared.ErrInvalidState.Code,
			fmt.Sprintf("invitation is %s, only pending invitations can change", i.Status))
	}
	return nil
}

// InvitationInsert is the write shape for invitations. A nil Status takes the
// column default (pending).
type InvitationInsert struct {
	TeamID    int64             `json:"team_id" validate:"required,gt=0"`
	Email     string            `json:"email" validate:"required,email,max=255"`
	Role      Role              `json:"role" validate:"required,max=50"`
	InvitedBy int64             `json:"invited_by" validate:"required,gt=0"`
	Status    *InvitationStatus `json:"status" validate:"omitempty,oneof=pending accepted revoked"`
}

// Validate checks the insert at the system boundary.
func (in InvitationInsert) Validate() error {
	return shared.ValidateStruct(in).ErrOrNil()
}
