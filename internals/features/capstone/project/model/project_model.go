package model

import (
	"time"

	"github.com/google/uuid"
)

// Project statuses, set by advisor/admin decision
const (
	ProjectStatusPending  = "PENDING"
	ProjectStatusApproved = "APPROVED"
	ProjectStatusRejected = "REJECTED"
)

// ProjectModel is the proposal owned by exactly one team
type ProjectModel struct {
	ProjectID        uuid.UUID `gorm:"column:project_id;type:uuid;primaryKey" json:"project_id"`
	ProjectTeamID    uuid.UUID `gorm:"column:project_team_id;type:uuid;not null;unique" json:"project_team_id"`
	ProjectTitle     string    `gorm:"column:project_title;size:200;not null" json:"project_title"`
	ProjectAbstract  string    `gorm:"column:project_abstract;type:text" json:"project_abstract"`
	ProjectStatus    string    `gorm:"column:project_status;type:varchar(20);not null;default:'PENDING'" json:"project_status"`
	ProjectCreatedAt time.Time `gorm:"column:project_created_at;autoCreateTime" json:"project_created_at"`
	ProjectUpdatedAt time.Time `gorm:"column:project_updated_at;autoUpdateTime" json:"project_updated_at"`
}

func (ProjectModel) TableName() string {
	return "projects"
}
