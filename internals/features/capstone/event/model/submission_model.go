package model

import (
	"time"

	"github.com/google/uuid"
)

// Submission statuses. PENDING -> SUBMITTED -> APPROVED | NEEDS_REVISION,
// with NEEDS_REVISION looping back to SUBMITTED on resubmission. APPROVED
// is terminal.
const (
	SubmissionStatusPending       = "PENDING"
	SubmissionStatusSubmitted     = "SUBMITTED"
	SubmissionStatusApproved      = "APPROVED"
	SubmissionStatusNeedsRevision = "NEEDS_REVISION"
)

// SubmissionModel is one team's attempt at one event; one row per pair
type SubmissionModel struct {
	SubmissionID          uuid.UUID  `gorm:"column:submission_id;type:uuid;primaryKey" json:"submission_id"`
	SubmissionTeamID      uuid.UUID  `gorm:"column:submission_team_id;type:uuid;not null;index:idx_submission_pair,unique" json:"submission_team_id"`
	SubmissionEventID     uuid.UUID  `gorm:"column:submission_event_id;type:uuid;not null;index:idx_submission_pair,unique" json:"submission_event_id"`
	SubmissionStatus      string     `gorm:"column:submission_status;type:varchar(20);not null;default:'PENDING'" json:"submission_status"`
	SubmissionFileLink    *string    `gorm:"column:submission_file_link;size:500" json:"submission_file_link,omitempty"`
	SubmissionFeedback    *string    `gorm:"column:submission_feedback;type:text" json:"submission_feedback,omitempty"`
	SubmissionSubmittedAt *time.Time `gorm:"column:submission_submitted_at" json:"submission_submitted_at,omitempty"`
	SubmissionReviewedBy  *uuid.UUID `gorm:"column:submission_reviewed_by;type:uuid" json:"submission_reviewed_by,omitempty"`
	SubmissionReviewedAt  *time.Time `gorm:"column:submission_reviewed_at" json:"submission_reviewed_at,omitempty"`
	SubmissionCreatedAt   time.Time  `gorm:"column:submission_created_at;autoCreateTime" json:"submission_created_at"`
	SubmissionUpdatedAt   time.Time  `gorm:"column:submission_updated_at;autoUpdateTime" json:"submission_updated_at"`
}

func (SubmissionModel) TableName() string {
	return "submissions"
}
