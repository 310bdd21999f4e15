package dto

// TeacherResponse is the API view of a teacher profile.
type TeacherResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	SchoolID  string `json:"schoolId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Subject   string `json:"subject"`
}

// StaffResponse is the API view of a staff profile.
type StaffResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	SchoolID  string `json:"schoolId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Position  string `json:"position"`
}

// UserResponse is the API view of an account in the directory.
type UserResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Role          string `json:"role"`
	SchoolID      string `json:"schoolId,omitempty"`
	EmailVerified bool   `json:"emailVerified"`
	IsActive      bool   `json:"isActive"`
}
