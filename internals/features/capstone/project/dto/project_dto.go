package dto

import (
	"github.com/google/uuid"
)

type CreateProjectRequest struct {
	TeamID   uuid.UUID `json:"team_id" validate:"required"`
	Title    string    `json:"title" validate:"required,max=200"`
	Abstract string    `json:"abstract" validate:"omitempty"`
}

type UpdateProjectRequest struct {
	Title    *string `json:"title" validate:"omitempty,max=200"`
	Abstract *string `json:"abstract"`
}

type DecideProjectRequest struct {
	Status string `json:"status" validate:"required,oneof=APPROVED REJECTED"`
}

type AssignAdvisorRequest struct {
	AdvisorID uuid.UUID `json:"advisor_id" validate:"required"`
}

type AdvisorOption struct {
	UserID     uuid.UUID `json:"user_id"`
	FullName   string    `json:"full_name"`
	Email      string    `json:"email"`
	Load       int       `json:"load"`
	AtCapacity bool      `json:"at_capacity"`
}
