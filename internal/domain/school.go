package domain

import "time"

// SchoolStatus represents lifecycle states for a school tenant.
type SchoolStatus string

const (
	SchoolStatusActive    SchoolStatus = "ACTIVE"
	SchoolStatusPending   SchoolStatus = "PENDING"
	SchoolStatusSuspended SchoolStatus = "SUSPENDED"
)

// School is the tenant: the unit of data isolation.
type School struct {
	ID        string
	Name      string
	Subdomain string
	Status    SchoolStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Operable reports whether the school may serve tenant-scoped traffic at all.
// Suspended and unknown statuses are excluded from subdomain resolution.
func (s SchoolStatus) Operable() bool {
	return s == SchoolStatusActive || s == SchoolStatusPending
}

// TenantTagged is implemented by payloads and query filters that carry a
// school id, so scoping can stamp the resolved tenant onto them.
type TenantTagged interface {
	SetSchoolID(id string)
}
