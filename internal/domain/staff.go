package domain

import "time"

// Teacher is a school-scoped teacher profile.
type Teacher struct {
	ID        string
	UserID    string
	SchoolID  string
	FirstName string
	LastName  string
	Subject   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SetSchoolID implements TenantTagged.
func (t *Teacher) SetSchoolID(id string) { t.SchoolID = id }

// StaffMember is a school-scoped profile for non-teaching staff
// (cashier, librarian, counselor, nurse, receptionist).
type StaffMember struct {
	ID        string
	UserID    string
	SchoolID  string
	FirstName string
	LastName  string
	Position  Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SetSchoolID implements TenantTagged.
func (m *StaffMember) SetSchoolID(id string) { m.SchoolID = id }
