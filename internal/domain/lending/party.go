package lending

import (
	"strings"

	"github.com/credito/backend/internal/domain/shared"
)

// Profile holds the identity and contact columns shared by clients and advisers.
// Empty strings are stored as empty, not NULL.
type Profile struct {
	Name     string `json:"name" validate:"max=100"`
	LastName string `json:"last_name" validate:"max=100"`
	Address  string `json:"address" validate:"max=250"`
	Phone    string `json:"phone" validate:"max=20"`
	DNIType  string `json:"dni_type" validate:"max=20"`
	DNI      string `json:"dni" validate:"max=20"`
}

// FullName joins name and last name.
func (p Profile) FullName() string {
	return strings.TrimSpace(p.Name + " " + p.LastName)
}

// Client is a borrower, as stored in the clients table.
type Client struct {
	ID int64
	Profile
	Status  Status
	Comment string
}

// IsActive reports whether the client can take new credits.
func (c *Client) IsActive() bool {
	return c.Status == StatusActive
}

// ClientInsert is the write shape for clients. A nil Status takes the
// column default (active).
type ClientInsert struct {
	Profile
	Status  *Status `json:"status" validate:"omitempty,oneof=active inactive"`
	Comment string  `json:"comment"`
}

// Validate checks the insert at the system boundary.
func (in ClientInsert) Validate() error {
	return shared.ValidateStruct(in).ErrOrNil()
}

// Adviser is a staff member originating or servicing credits, as stored in the
// advisers table.
type Adviser struct {
	ID int64
	Profile
	Status  Status
	Comment string
}

// IsActive reports whether the adviser can be assigned to new credits.
func (a *Adviser) IsActive() bool {
	return a.Status == StatusActive
}

// AdviserInsert is the write shape for advisers.
type AdviserInsert struct {
	Profile
	Status  *Status `json:"status" validate:"omitempty,oneof=active inactive"`
	Comment string  `json:"comment"`
}

// Validate checks the insert at the system boundary.
func (in AdviserInsert) Validate() error {
	return shared.ValidateStruct(in).ErrOrNil()
}
