package dto

import (
	"github.com/google/uuid"
)

type GradeItem struct {
	StudentID uuid.UUID `json:"student_id" validate:"required"`
	ProjectID uuid.UUID `json:"project_id" validate:"required"`
	Score     string    `json:"score" validate:"required"`
}

type BatchUpsertRequest struct {
	SectionID uuid.UUID   `json:"section_id" validate:"required"`
	Grades    []GradeItem `json:"grades" validate:"required,min=1,dive"`
}

// SkippedGrade explains why a batch item was not applied.
type SkippedGrade struct {
	StudentID uuid.UUID `json:"student_id"`
	ProjectID uuid.UUID `json:"project_id"`
	Score     string    `json:"score"`
	Reason    string    `json:"reason"`
}

type BatchUpsertResult struct {
	Applied []GradeRow     `json:"applied"`
	Skipped []SkippedGrade `json:"skipped"`
}

// GradeRow is a grade joined with its student for listings.
type GradeRow struct {
	GradeID       uuid.UUID `json:"grade_id"`
	StudentID     uuid.UUID `json:"student_id"`
	StudentName   string    `json:"student_name,omitempty"`
	StudentNumber *string   `json:"student_number,omitempty"`
	ProjectID     uuid.UUID `json:"project_id"`
	TermID        uuid.UUID `json:"term_id"`
	Score         string    `json:"score"`
}
