package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	sectionModel "capstonehub_backend/internals/features/academics/section/model"
	gradeDTO "capstonehub_backend/internals/features/capstone/grade/dto"
	gradeModel "capstonehub_backend/internals/features/capstone/grade/model"
	projectModel "capstonehub_backend/internals/features/capstone/project/model"
	helper "capstonehub_backend/internals/helpers"
	helperAuth "capstonehub_backend/internals/helpers/auth"
)

type GradeController struct {
	DB *gorm.DB
}

func NewGradeController(db *gorm.DB) *GradeController {
	return &GradeController{DB: db}
}

var validate = validator.New()

// POST /api/admin/grades/batch
//
// Upserts one grade per (student, project, term) tuple; the term comes
// from the section. Invalid items are skipped with a reason rather than
// failing the batch, and running the same batch twice yields the same
// rows.
func (ctrl *GradeController) BatchUpsert(c *fiber.Ctx) error {
	evaluatorID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req gradeDTO.BatchUpsertRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var section sectionModel.SectionModel
	if err := ctrl.DB.Where("section_id = ?", req.SectionID).First(&section).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Section not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to look up section")
	}
	termID := section.SectionTermID

	result := gradeDTO.BatchUpsertResult{
		Applied: make([]gradeDTO.GradeRow, 0, len(req.Grades)),
		Skipped: make([]gradeDTO.SkippedGrade, 0),
	}

	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		for _, item := range req.Grades {
			if !gradeModel.IsValidScore(item.Score) {
				result.Skipped = append(result.Skipped, gradeDTO.SkippedGrade{
					StudentID: item.StudentID,
					ProjectID: item.ProjectID,
					Score:     item.Score,
					Reason:    "invalid score",
				})
				continue
			}

			var cnt int64
			if err := tx.Model(&projectModel.ProjectModel{}).
				Where("project_id = ?", item.ProjectID).Count(&cnt).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Failed to check project")
			}
			if cnt == 0 {
				result.Skipped = append(result.Skipped, gradeDTO.SkippedGrade{
					StudentID: item.StudentID,
					ProjectID: item.ProjectID,
					Score:     item.Score,
					Reason:    "project not found",
				})
				continue
			}

			var grade gradeModel.GradeModel
			err := tx.Where("grade_student_id = ? AND grade_project_id = ? AND grade_term_id = ?",
				item.StudentID, item.ProjectID, termID).First(&grade).Error
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				grade = gradeModel.GradeModel{
					GradeID:          uuid.New(),
					GradeStudentID:   item.StudentID,
					GradeProjectID:   item.ProjectID,
					GradeTermID:      termID,
					GradeScore:       item.Score,
					GradeEvaluatorID: evaluatorID,
				}
				if err := tx.Create(&grade).Error; err != nil {
					return fiber.NewError(fiber.StatusInternalServerError, "Failed to insert grade")
				}
			case err != nil:
				return fiber.NewError(fiber.StatusInternalServerError, "Failed to look up grade")
			default:
				if err := tx.Model(&grade).Updates(map[string]interface{}{
					"grade_score":        item.Score,
					"grade_evaluator_id": evaluatorID,
				}).Error; err != nil {
					return fiber.NewError(fiber.StatusInternalServerError, "Failed to update grade")
				}
			}

			result.Applied = append(result.Applied, gradeDTO.GradeRow{
				GradeID:   grade.GradeID,
				StudentID: item.StudentID,
				ProjectID: item.ProjectID,
				TermID:    termID,
				Score:     item.Score,
			})
		}
		return nil
	})
	if err != nil {
		return err
	}

	return helper.Success(c, "Grades processed", result)
}

// GET /api/grades/my
func (ctrl *GradeController) MyGrades(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	query := ctrl.DB.Model(&gradeModel.GradeModel{}).
		Where("grade_student_id = ?", userID)
	if term := c.Query("term_id"); term != "" {
		termID, err := uuid.Parse(term)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid term id")
		}
		query = query.Where("grade_term_id = ?", termID)
	}

	var grades []gradeModel.GradeModel
	if err := query.Order("grade_created_at DESC").Find(&grades).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to list grades")
	}
	return helper.Success(c, "OK", grades)
}

// GET /api/admin/sections/:id/grades
func (ctrl *GradeController) SectionGradeSheet(c *fiber.Ctx) error {
	sectionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid section id")
	}

	var section sectionModel.SectionModel
	if err := ctrl.DB.Where("section_id = ?", sectionID).First(&section).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Section not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to look up section")
	}

	var rows []gradeDTO.GradeRow
	err = ctrl.DB.Model(&gradeModel.GradeModel{}).
		Select(`grades.grade_id, grades.grade_student_id AS student_id,
			users.full_name AS student_name, users.student_number,
			grades.grade_project_id AS project_id, grades.grade_term_id AS term_id,
			grades.grade_score AS score`).
		Joins("JOIN users ON users.id = grades.grade_student_id").
		Joins("JOIN projects ON projects.project_id = grades.grade_project_id").
		Joins("JOIN teams ON teams.team_id = projects.project_team_id").
		Where("teams.team_section_id = ? AND grades.grade_term_id = ?", sectionID, section.SectionTermID).
		Order("users.full_name ASC").
		Scan(&rows).Error
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to build grade sheet")
	}
	return helper.Success(c, "OK", rows)
}
