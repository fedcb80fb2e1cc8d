package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateTaskRequest struct {
	TeamID      uuid.UUID  `json:"team_id" validate:"required"`
	Title       string     `json:"title" validate:"required,max=200"`
	Description string     `json:"description" validate:"omitempty"`
	DueDate     *time.Time `json:"due_date"`
}

type UpdateTaskRequest struct {
	Title       *string    `json:"title" validate:"omitempty,max=200"`
	Description *string    `json:"description"`
	Status      *string    `json:"status" validate:"omitempty,oneof=TODO IN_PROGRESS DONE"`
	DueDate     *time.Time `json:"due_date"`
}

type AssignTaskRequest struct {
	UserID uuid.UUID `json:"user_id" validate:"required"`
}

type CreateCommentRequest struct {
	Text string `json:"text" validate:"required"`
}

type CreateAttachmentRequest struct {
	Name string `json:"name" validate:"required,max=200"`
	Link string `json:"link" validate:"required,max=500,url"`
}
