package model

import (
	"time"

	"github.com/google/uuid"
)

// AdvisorCapacity is the maximum number of concurrent (non-rejected)
// projects one advisor may carry.
const AdvisorCapacity = 2

// ProjectAdvisorModel joins advisors to projects
type ProjectAdvisorModel struct {
	ProjectAdvisorID        uuid.UUID `gorm:"column:project_advisor_id;type:uuid;primaryKey" json:"project_advisor_id"`
	ProjectAdvisorProjectID uuid.UUID `gorm:"column:project_advisor_project_id;type:uuid;not null;index:idx_project_advisor_pair,unique" json:"project_advisor_project_id"`
	ProjectAdvisorUserID    uuid.UUID `gorm:"column:project_advisor_user_id;type:uuid;not null;index:idx_project_advisor_pair,unique" json:"project_advisor_user_id"`
	ProjectAdvisorCreatedAt time.Time `gorm:"column:project_advisor_created_at;autoCreateTime" json:"project_advisor_created_at"`
}

func (ProjectAdvisorModel) TableName() string {
	return "project_advisors"
}
