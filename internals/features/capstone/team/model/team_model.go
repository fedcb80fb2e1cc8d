package model

import (
	"time"

	"github.com/google/uuid"
)

// TeamModel is a group of enrolled students within one section
type TeamModel struct {
	TeamID          uuid.UUID `gorm:"column:team_id;type:uuid;primaryKey" json:"team_id"`
	TeamSectionID   uuid.UUID `gorm:"column:team_section_id;type:uuid;not null;index" json:"team_section_id"`
	TeamGroupNumber int       `gorm:"column:team_group_number;not null" json:"team_group_number"`
	TeamName        string    `gorm:"column:team_name;size:100;not null" json:"team_name"`
	TeamCreatedAt   time.Time `gorm:"column:team_created_at;autoCreateTime" json:"team_created_at"`
	TeamUpdatedAt   time.Time `gorm:"column:team_updated_at;autoUpdateTime" json:"team_updated_at"`
}

func (TeamModel) TableName() string {
	return "teams"
}
