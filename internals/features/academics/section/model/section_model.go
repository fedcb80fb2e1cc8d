package model

import (
	"time"

	"github.com/google/uuid"
)

// Course types
const (
	CourseTypeProject    = "PROJECT"
	CourseTypePreProject = "PRE_PROJECT"
)

// SectionModel is one offering of the capstone course within a term
type SectionModel struct {
	SectionID          uuid.UUID  `gorm:"column:section_id;type:uuid;primaryKey" json:"section_id"`
	SectionTermID      uuid.UUID  `gorm:"column:section_term_id;type:uuid;not null;index" json:"section_term_id"`
	SectionCode        string     `gorm:"column:section_code;size:20;not null" json:"section_code"`
	SectionName        string     `gorm:"column:section_name;size:100;not null" json:"section_name"`
	SectionCourseType  string     `gorm:"column:section_course_type;type:varchar(20);not null" json:"section_course_type"`
	SectionMinTeamSize int        `gorm:"column:section_min_team_size;not null;default:1" json:"section_min_team_size"`
	SectionMaxTeamSize int        `gorm:"column:section_max_team_size;not null;default:3" json:"section_max_team_size"`
	SectionDeadline    *time.Time `gorm:"column:section_deadline" json:"section_deadline,omitempty"`
	SectionTeamLocked  bool       `gorm:"column:section_team_locked;not null;default:false" json:"section_team_locked"`
	SectionCreatedAt   time.Time  `gorm:"column:section_created_at;autoCreateTime" json:"section_created_at"`
	SectionUpdatedAt   time.Time  `gorm:"column:section_updated_at;autoUpdateTime" json:"section_updated_at"`
}

func (SectionModel) TableName() string {
	return "sections"
}
