package model

import (
	"time"

	"github.com/google/uuid"
)

// TermModel represents one academic term (year + semester)
type TermModel struct {
	TermID           uuid.UUID `gorm:"column:term_id;type:uuid;primaryKey" json:"term_id"`
	TermAcademicYear string    `gorm:"column:term_academic_year;size:10;not null" json:"term_academic_year"`
	TermSemester     int       `gorm:"column:term_semester;not null" json:"term_semester"`
	TermStartDate    time.Time `gorm:"column:term_start_date;not null" json:"term_start_date"`
	TermEndDate      time.Time `gorm:"column:term_end_date;not null" json:"term_end_date"`
	TermCreatedAt    time.Time `gorm:"column:term_created_at;autoCreateTime" json:"term_created_at"`
	TermUpdatedAt    time.Time `gorm:"column:term_updated_at;autoUpdateTime" json:"term_updated_at"`
}

func (TermModel) TableName() string {
	return "terms"
}
