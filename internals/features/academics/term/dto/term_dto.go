package dto

import (
	"time"

	"github.com/google/uuid"

	termModel "capstonehub_backend/internals/features/academics/term/model"
)

type CreateTermRequest struct {
	AcademicYear string    `json:"academic_year" validate:"required,max=10"`
	Semester     int       `json:"semester" validate:"required,min=1,max=3"`
	StartDate    time.Time `json:"start_date" validate:"required"`
	EndDate      time.Time `json:"end_date" validate:"required,gtfield=StartDate"`
}

type UpdateTermRequest struct {
	AcademicYear *string    `json:"academic_year" validate:"omitempty,max=10"`
	Semester     *int       `json:"semester" validate:"omitempty,min=1,max=3"`
	StartDate    *time.Time `json:"start_date"`
	EndDate      *time.Time `json:"end_date"`
}

func (r *CreateTermRequest) ToModel() termModel.TermModel {
	return termModel.TermModel{
		TermID:           uuid.New(),
		TermAcademicYear: r.AcademicYear,
		TermSemester:     r.Semester,
		TermStartDate:    r.StartDate,
		TermEndDate:      r.EndDate,
	}
}
