package dto

import "time"

// StudentCreateRequest is the create payload. Any schoolId supplied by the
// caller is discarded by the write-scoping filter.
type StudentCreateRequest struct {
	UserID          string `json:"userId"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	AdmissionNumber string `json:"admissionNumber"`
	ClassName       string `json:"className"`
	SchoolID        string `json:"schoolId"`
}

// StudentListQuery narrows list requests.
type StudentListQuery struct {
	ClassName string `query:"className"`
	Search    string `query:"search"`
	Limit     int    `query:"limit"`
	Offset    int    `query:"offset"`
}

// StudentResponse is the API view of a student record.
type StudentResponse struct {
	ID              string    `json:"id"`
	UserID          string    `json:"userId"`
	SchoolID        string    `json:"schoolId"`
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	AdmissionNumber string    `json:"admissionNumber"`
	ClassName       string    `json:"className"`
	CreatedAt       time.Time `json:"createdAt"`
}
