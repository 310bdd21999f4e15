package domain

import "time"

// Student is a school-scoped enrollment record. UserID references the
// account that owns the record for owner-based authorization.
type Student struct {
	ID              string
	UserID          string
	SchoolID        string
	FirstName       string
	LastName        string
	AdmissionNumber string
	ClassName       string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// SetSchoolID implements TenantTagged.
func (s *Student) SetSchoolID(id string) { s.SchoolID = id }

// StudentFilter narrows student list queries. SchoolID is stamped by the
// read-scoping filter, not by callers.
type StudentFilter struct {
	SchoolID  string
	ClassName string
	Search    string
	Limit     int
	Offset    int
}

// SetSchoolID implements TenantTagged.
func (f *StudentFilter) SetSchoolID(id string) { f.SchoolID = id }
