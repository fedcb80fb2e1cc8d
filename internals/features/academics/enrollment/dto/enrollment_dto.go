package dto

import (
	"github.com/google/uuid"
)

type BulkEnrollRequest struct {
	StudentIDs []uuid.UUID `json:"student_ids" validate:"required,min=1,dive,required"`
}

type EnrolledStudent struct {
	EnrollmentID  uuid.UUID `json:"enrollment_id"`
	UserID        uuid.UUID `json:"user_id"`
	UserName      string    `json:"user_name"`
	FullName      string    `json:"full_name"`
	Email         string    `json:"email"`
	StudentNumber *string   `json:"student_number,omitempty"`
}

type AvailableStudent struct {
	UserID        uuid.UUID `json:"user_id"`
	UserName      string    `json:"user_name"`
	FullName      string    `json:"full_name"`
	Email         string    `json:"email"`
	StudentNumber *string   `json:"student_number,omitempty"`
}
