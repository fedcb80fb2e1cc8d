package model

import (
	"time"

	"github.com/google/uuid"
)

// EnrollmentModel links a student to a section
type EnrollmentModel struct {
	EnrollmentID        uuid.UUID `gorm:"column:enrollment_id;type:uuid;primaryKey" json:"enrollment_id"`
	EnrollmentSectionID uuid.UUID `gorm:"column:enrollment_section_id;type:uuid;not null;index:idx_enrollment_pair,unique" json:"enrollment_section_id"`
	EnrollmentUserID    uuid.UUID `gorm:"column:enrollment_user_id;type:uuid;not null;index:idx_enrollment_pair,unique" json:"enrollment_user_id"`
	EnrollmentCreatedAt time.Time `gorm:"column:enrollment_created_at;autoCreateTime" json:"enrollment_created_at"`
}

func (EnrollmentModel) TableName() string {
	return "enrollments"
}
