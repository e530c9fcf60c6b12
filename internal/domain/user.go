package domain

import "time"

// RoleValueReviewer is the named role whose members may submit
// value-change requests. Staff and superuser are flags on the user row;
// reviewer membership lives in the roles join table.
const RoleValueReviewer = "value_reviewer"

// User is a registered account
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"is_active"`
	IsStaff      bool      `json:"is_staff"`
	IsSuperuser  bool      `json:"is_superuser"`
	Roles        []string  `json:"roles,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasRole reports membership in a named role
func (u User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if r == name {
			return true
		}
	}
	return false
}

// IsValueReviewer reports whether the user may submit value-change
// requests. Independent of IsStaff and IsSuperuser.
func (u User) IsValueReviewer() bool {
	return u.HasRole(RoleValueReviewer)
}

// Profile is the one-to-one public profile created with every user
type Profile struct {
	ID          int       `json:"id"`
	UserID      string    `json:"user_id"`
	DisplayName string    `json:"display_name"`
	Bio         string    `json:"bio"`
	IsVerified  bool      `json:"is_verified"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
