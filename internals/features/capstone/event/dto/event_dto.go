package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateEventRequest struct {
	SectionID   uuid.UUID `json:"section_id" validate:"required"`
	Title       string    `json:"title" validate:"required,max=200"`
	Description string    `json:"description" validate:"omitempty"`
	DueDate     time.Time `json:"due_date" validate:"required"`
	Weight      int       `json:"weight" validate:"omitempty,min=0,max=100"`
}

type UpdateEventRequest struct {
	Title       *string    `json:"title" validate:"omitempty,max=200"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Weight      *int       `json:"weight" validate:"omitempty,min=0,max=100"`
}

type SubmitWorkRequest struct {
	FileLink *string `json:"file_link" validate:"omitempty,max=500,url"`
}

type ReviewSubmissionRequest struct {
	Status   string  `json:"status" validate:"required,oneof=APPROVED NEEDS_REVISION"`
	Feedback *string `json:"feedback" validate:"omitempty"`
}

// TeamProgress summarizes a team's milestone completion.
type TeamProgress struct {
	TeamID      uuid.UUID `json:"team_id"`
	TeamName    string    `json:"team_name"`
	TotalEvents int       `json:"total_events"`
	Approved    int       `json:"approved"`
	Percent     float64   `json:"percent"`
}

// UpcomingDeadline is an event still awaiting an approved submission,
// due within the lookahead window.
type UpcomingDeadline struct {
	EventID       uuid.UUID  `json:"event_id"`
	EventTitle    string     `json:"event_title"`
	EventDueDate  time.Time  `json:"event_due_date"`
	DaysRemaining int        `json:"days_remaining"`
	TeamID        uuid.UUID  `json:"team_id"`
	Status        string     `json:"status"`
	SubmissionID  *uuid.UUID `json:"submission_id,omitempty"`
}
