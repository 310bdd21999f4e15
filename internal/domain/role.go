package domain

import "strings"

// Role is a flat string tag on a user. There is no hierarchy; composite
// checks are expressed as the policy tables below.
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleTeacher      Role = "teacher"
	RoleStudent      Role = "student"
	RoleParent       Role = "parent"
	RoleCashier      Role = "cashier"
	RoleLibrarian    Role = "librarian"
	RoleCounselor    Role = "counselor"
	RoleNurse        Role = "nurse"
	RoleReceptionist Role = "receptionist"
)

// Matches compares roles case-insensitively without normalizing stored data.
func (r Role) Matches(other Role) bool {
	return strings.EqualFold(string(r), string(other))
}

// Policy names a reviewable role set in the authorization matrix.
type Policy string

const (
	PolicyAdmin             Policy = "admin"
	PolicyTeacher           Policy = "teacher"
	PolicyStudent           Policy = "student"
	PolicyAdminOrTeacher    Policy = "adminOrTeacher"
	PolicyFinancialAccess   Policy = "financialAccess"
	PolicyStudentManagement Policy = "studentManagementAccess"
	PolicyStaffManagement   Policy = "staffManagementAccess"
	PolicyStaff             Policy = "staff"
)

// StaffRoles is the fixed set of staff-type roles. New staff subtypes are
// added here and nowhere else.
var StaffRoles = []Role{
	RoleTeacher,
	RoleCashier,
	RoleLibrarian,
	RoleCounselor,
	RoleNurse,
	RoleReceptionist,
}

// Policies is the authorization matrix. Gates are bound against these sets
// so the whole matrix is auditable in one place.
var Policies = map[Policy][]Role{
	PolicyAdmin:             {RoleAdmin},
	PolicyTeacher:           {RoleTeacher},
	PolicyStudent:           {RoleStudent},
	PolicyAdminOrTeacher:    {RoleAdmin, RoleTeacher},
	PolicyFinancialAccess:   {RoleAdmin, RoleCashier},
	PolicyStudentManagement: {RoleAdmin, RoleTeacher, RoleCounselor},
	PolicyStaffManagement:   {RoleAdmin},
	PolicyStaff:             StaffRoles,
}
