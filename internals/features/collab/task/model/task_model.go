package model

import (
	"time"

	"github.com/google/uuid"
)

// Task statuses (team kanban board)
const (
	TaskStatusTodo       = "TODO"
	TaskStatusInProgress = "IN_PROGRESS"
	TaskStatusDone       = "DONE"
)

type TaskModel struct {
	TaskID          uuid.UUID  `gorm:"column:task_id;type:uuid;primaryKey" json:"task_id"`
	TaskTeamID      uuid.UUID  `gorm:"column:task_team_id;type:uuid;not null;index" json:"task_team_id"`
	TaskTitle       string     `gorm:"column:task_title;size:200;not null" json:"task_title"`
	TaskDescription string     `gorm:"column:task_description;type:text" json:"task_description"`
	TaskStatus      string     `gorm:"column:task_status;type:varchar(20);not null;default:'TODO'" json:"task_status"`
	TaskDueDate     *time.Time `gorm:"column:task_due_date" json:"task_due_date,omitempty"`
	TaskCreatedBy   uuid.UUID  `gorm:"column:task_created_by;type:uuid;not null" json:"task_created_by"`
	TaskCreatedAt   time.Time  `gorm:"column:task_created_at;autoCreateTime" json:"task_created_at"`
	TaskUpdatedAt   time.Time  `gorm:"column:task_updated_at;autoUpdateTime" json:"task_updated_at"`
}

func (TaskModel) TableName() string {
	return "tasks"
}

type TaskAssignmentModel struct {
	TaskAssignmentID        uuid.UUID `gorm:"column:task_assignment_id;type:uuid;primaryKey" json:"task_assignment_id"`
	TaskAssignmentTaskID    uuid.UUID `gorm:"column:task_assignment_task_id;type:uuid;not null;index:idx_task_assignment_pair,unique" json:"task_assignment_task_id"`
	TaskAssignmentUserID    uuid.UUID `gorm:"column:task_assignment_user_id;type:uuid;not null;index:idx_task_assignment_pair,unique" json:"task_assignment_user_id"`
	TaskAssignmentCreatedAt time.Time `gorm:"column:task_assignment_created_at;autoCreateTime" json:"task_assignment_created_at"`
}

func (TaskAssignmentModel) TableName() string {
	return "task_assignments"
}

type TaskCommentModel struct {
	TaskCommentID        uuid.UUID `gorm:"column:task_comment_id;type:uuid;primaryKey" json:"task_comment_id"`
	TaskCommentTaskID    uuid.UUID `gorm:"column:task_comment_task_id;type:uuid;not null;index" json:"task_comment_task_id"`
	TaskCommentUserID    uuid.UUID `gorm:"column:task_comment_user_id;type:uuid;not null" json:"task_comment_user_id"`
	TaskCommentText      string    `gorm:"column:task_comment_text;type:text;not null" json:"task_comment_text"`
	TaskCommentCreatedAt time.Time `gorm:"column:task_comment_created_at;autoCreateTime" json:"task_comment_created_at"`
}

func (TaskCommentModel) TableName() string {
	return "task_comments"
}

type TaskAttachmentModel struct {
	TaskAttachmentID        uuid.UUID `gorm:"column:task_attachment_id;type:uuid;primaryKey" json:"task_attachment_id"`
	TaskAttachmentTaskID    uuid.UUID `gorm:"column:task_attachment_task_id;type:uuid;not null;index" json:"task_attachment_task_id"`
	TaskAttachmentName      string    `gorm:"column:task_attachment_name;size:200;not null" json:"task_attachment_name"`
	TaskAttachmentLink      string    `gorm:"column:task_attachment_link;size:500;not null" json:"task_attachment_link"`
	TaskAttachmentCreatedAt time.Time `gorm:"column:task_attachment_created_at;autoCreateTime" json:"task_attachment_created_at"`
}

func (TaskAttachmentModel) TableName() string {
	return "task_attachments"
}
