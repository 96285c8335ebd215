package domain

import "time"

type Role string

const (
	RoleStudent Role = "student"
	RoleWriter  Role = "writer"
	RoleAdmin   Role = "admin"
)

// ParseRole maps a stored role string onto the closed Role set.
// Unknown values fail closed instead of passing a gate by accident.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleStudent, RoleWriter, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

// HomePath is where a user of this role lands after a refused or
// completed action: role-aware redirection, not a flat 403.
func (r Role) HomePath() string {
	switch r {
	case RoleAdmin:
		return "/admin/dashboard"
	case RoleWriter:
		return "/writer/dashboard"
	default:
		return "/profile"
	}
}

type AuthProvider string

const (
	ProviderEmail  AuthProvider = "email"
	ProviderGoogle AuthProvider = "google"
)

type User struct {
	ID            int64        `json:"id"`
	Name          string       `json:"name" validate:"required"`
	Email         string       `json:"email" validate:"required,email" gorm:"uniqueIndex"`
	Phone         string       `json:"phone,omitempty"`
	PasswordHash  string       `json:"-"`
	Role          Role         `json:"role"`
	WalletBalance float64      `json:"wallet_balance"`
	AuthProvider  AuthProvider `json:"auth_provider"`

	// Password reset side channel: token + 1h expiry.
	ResetToken        string     `json:"-"`
	ResetTokenExpires *time.Time `json:"-"`

	// External identity (Google SSO). Empty for local accounts.
	GoogleID    string `json:"-"`
	GoogleEmail string `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
