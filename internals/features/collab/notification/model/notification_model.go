package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Notification types
const (
	TypeTeamInvite         = "TEAM_INVITE"
	TypeTaskAssigned       = "TASK_ASSIGNED"
	TypeComment            = "COMMENT"
	TypeSubmissionReviewed = "SUBMISSION_REVIEWED"
	TypeProjectStatus      = "PROJECT_STATUS"
)

// Invite statuses (only meaningful for TEAM_INVITE rows)
const (
	InviteStatusPending  = "PENDING"
	InviteStatusAccepted = "ACCEPTED"
	InviteStatusRejected = "REJECTED"
)

// NotificationModel is the generic per-user event log. TEAM_INVITE rows
// double as the invite state itself.
type NotificationModel struct {
	NotificationID           uuid.UUID      `gorm:"column:notification_id;type:uuid;primaryKey" json:"notification_id"`
	NotificationUserID       uuid.UUID      `gorm:"column:notification_user_id;type:uuid;not null;index" json:"notification_user_id"`
	NotificationActorID      *uuid.UUID     `gorm:"column:notification_actor_id;type:uuid" json:"notification_actor_id,omitempty"`
	NotificationType         string         `gorm:"column:notification_type;type:varchar(30);not null" json:"notification_type"`
	NotificationTitle        string         `gorm:"column:notification_title;size:200;not null" json:"notification_title"`
	NotificationMessage      string         `gorm:"column:notification_message;type:text" json:"notification_message"`
	NotificationData         datatypes.JSON `gorm:"column:notification_data;type:json" json:"notification_data,omitempty"`
	NotificationTeamID       *uuid.UUID     `gorm:"column:notification_team_id;type:uuid;index" json:"notification_team_id,omitempty"`
	NotificationInviteStatus *string        `gorm:"column:notification_invite_status;type:varchar(20)" json:"notification_invite_status,omitempty"`
	NotificationIsRead       bool           `gorm:"column:notification_is_read;not null;default:false" json:"notification_is_read"`
	NotificationCreatedAt    time.Time      `gorm:"column:notification_created_at;autoCreateTime" json:"notification_created_at"`
}

func (NotificationModel) TableName() string {
	return "notifications"
}
