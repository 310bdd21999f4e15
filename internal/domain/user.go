package domain

import "time"

// User is the persistent account a principal is resolved from. SchoolID is
// nil for platform-level accounts that belong to no tenant.
type User struct {
	ID            string
	Name          string
	Email         string
	PasswordHash  string
	Role          Role
	SchoolID      *string
	EmailVerified bool
	IsActive      bool
	LastSeenAt    *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// SchoolIDValue returns the school id or "" when the user has no tenant.
func (u *User) SchoolIDValue() string {
	if u.SchoolID == nil {
		return ""
	}
	return *u.SchoolID
}
