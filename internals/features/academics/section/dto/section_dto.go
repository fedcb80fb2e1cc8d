package dto

import (
	"time"

	"github.com/google/uuid"

	sectionModel "capstonehub_backend/internals/features/academics/section/model"
)

type CreateSectionRequest struct {
	TermID      uuid.UUID  `json:"term_id" validate:"required"`
	Code        string     `json:"code" validate:"required,max=20"`
	Name        string     `json:"name" validate:"required,max=100"`
	CourseType  string     `json:"course_type" validate:"required,oneof=PROJECT PRE_PROJECT"`
	MinTeamSize int        `json:"min_team_size" validate:"required,min=1"`
	MaxTeamSize int        `json:"max_team_size" validate:"required,gtefield=MinTeamSize"`
	Deadline    *time.Time `json:"deadline"`
}

type UpdateSectionRequest struct {
	Code        *string    `json:"code" validate:"omitempty,max=20"`
	Name        *string    `json:"name" validate:"omitempty,max=100"`
	MinTeamSize *int       `json:"min_team_size" validate:"omitempty,min=1"`
	MaxTeamSize *int       `json:"max_team_size" validate:"omitempty,min=1"`
	Deadline    *time.Time `json:"deadline"`
}

// ContinueToProjectRequest migrates a PRE_PROJECT section into a new
// PROJECT section under the target term.
type ContinueToProjectRequest struct {
	TargetTermID uuid.UUID `json:"target_term_id" validate:"required"`
	Code         string    `json:"code" validate:"required,max=20"`
	Name         string    `json:"name" validate:"required,max=100"`
}

func (r *CreateSectionRequest) ToModel() sectionModel.SectionModel {
	return sectionModel.SectionModel{
		SectionID:          uuid.New(),
		SectionTermID:      r.TermID,
		SectionCode:        r.Code,
		SectionName:        r.Name,
		SectionCourseType:  r.CourseType,
		SectionMinTeamSize: r.MinTeamSize,
		SectionMaxTeamSize: r.MaxTeamSize,
		SectionDeadline:    r.Deadline,
	}
}
