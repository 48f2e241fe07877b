package models

import "time"

// Role classifies an account. The set is closed: anything other than a
// recognized admin assignment is a plain user.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// ParseRole maps a stored role string onto the closed set; unknown or empty
// values default to RoleUser.
func ParseRole(s string) Role {
	if s == string(RoleAdmin) {
		return RoleAdmin
	}
	return RoleUser
}

// Profile is one account record, created externally on signup.
// Read-only here except for deletion.
type Profile struct {
	ID        string    `db:"id" json:"id"`
	Email     *string   `db:"email" json:"email"`
	FullName  *string   `db:"full_name" json:"full_name"`
	AvatarURL *string   `db:"avatar_url" json:"avatar_url"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// RoleAssignment maps an account to a role string. An account with no row
// is a RoleUser.
type RoleAssignment struct {
	UserID string `db:"user_id" json:"user_id"`
	Role   string `db:"role" json:"role"`
}

// UserAccount is the joined view served to the admin dashboard.
type UserAccount struct {
	Profile
	Role Role `json:"role"`
}
