package identity

import (
	"strings"
	"time"

	"github.com/credito/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Role is a user or membership role. The column is a free string; these are
// the values the application itself assigns.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleMember Role = "member"
)

// DefaultUserRole is the users.role column default.
const DefaultUserRole = RoleMember

const (
	bcryptCost        = 12
	minPasswordLength = 8
)

// User is an account, as stored in the users table. A non-nil DeletedAt marks
// the user as logically deleted; the row is kept.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}

// IsDeleted reports whether the user has been soft deleted.
func (u *User) IsDeleted() bool {
	return u.DeletedAt != nil
}

// CheckPassword compares a plaintext password with the stored hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// Summary returns the public subset of the user.
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
}

// UserSummary is the part of a user embedded in team listings.
type UserSummary struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserInsert is the write shape for users. A nil Role takes the column
// default (member). Timestamps are assigned on insert.
type UserInsert struct {
	Name         string `json:"name" validate:"max=100"`
	Email        string `json:"email" validate:"required,email,max=255"`
	PasswordHash string `json:"-" validate:"required"`
	Role         *Role  `json:"role" validate:"omitempty,max=20"`
}

// NewUserInsert builds a UserInsert from a plaintext password.
func NewUserInsert(email, password, name string) (UserInsert, error) {
	if len(password) < minPasswordLength {
		return UserInsert{}, shared.InvalidInput("Password must be at least 8 characters")
	}
	hash, err := HashPassword(password)
	if err != nil {
		return UserInsert{}, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}
	return UserInsert{
		Name:         strings.TrimSpace(name),
		Email:        NormalizeEmail(email),
		PasswordHash: hash,
	}, nil
}

// Validate checks the insert at the system boundary.
func (in UserInsert) Validate() error {
	return shared.ValidateStruct(in).ErrOrNil()
}

// HashPassword hashes a plaintext password with bcrypt.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// NormalizeEmail lowercases and trims an address before it is stored or looked up.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
