package model

import (
	"time"

	"github.com/google/uuid"
)

// ValidScores is the fixed letter-grade scale
var ValidScores = []string{"A", "B+", "B", "C+", "C", "D+", "D", "F"}

func IsValidScore(score string) bool {
	for _, s := range ValidScores {
		if s == score {
			return true
		}
	}
	return false
}

// GradeModel holds one letter grade per (student, project, term)
type GradeModel struct {
	GradeID          uuid.UUID `gorm:"column:grade_id;type:uuid;primaryKey" json:"grade_id"`
	GradeStudentID   uuid.UUID `gorm:"column:grade_student_id;type:uuid;not null;index:idx_grade_triple,unique" json:"grade_student_id"`
	GradeProjectID   uuid.UUID `gorm:"column:grade_project_id;type:uuid;not null;index:idx_grade_triple,unique" json:"grade_project_id"`
	GradeTermID      uuid.UUID `gorm:"column:grade_term_id;type:uuid;not null;index:idx_grade_triple,unique" json:"grade_term_id"`
	GradeScore       string    `gorm:"column:grade_score;type:varchar(2);not null" json:"grade_score"`
	GradeEvaluatorID uuid.UUID `gorm:"column:grade_evaluator_id;type:uuid;not null" json:"grade_evaluator_id"`
	GradeCreatedAt   time.Time `gorm:"column:grade_created_at;autoCreateTime" json:"grade_created_at"`
	GradeUpdatedAt   time.Time `gorm:"column:grade_updated_at;autoUpdateTime" json:"grade_updated_at"`
}

func (GradeModel) TableName() string {
	return "grades"
}
