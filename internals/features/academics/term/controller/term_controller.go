package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	termDTO "capstonehub_backend/internals/features/academics/term/dto"
	termModel "capstonehub_backend/internals/features/academics/term/model"
	helper "capstonehub_backend/internals/helpers"
)

type TermController struct {
	DB *gorm.DB
}

func NewTermController(db *gorm.DB) *TermController {
	return &TermController{DB: db}
}

// POST /api/admin/terms
func (ctrl *TermController) CreateTerm(c *fiber.Ctx) error {
	var req termDTO.CreateTermRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	req.AcademicYear = strings.TrimSpace(req.AcademicYear)
	if err := validator.New().Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var cnt int64
	if err := ctrl.DB.Model(&termModel.TermModel{}).
		Where("term_academic_year = ? AND term_semester = ?", req.AcademicYear, req.Semester).
		Count(&cnt).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to check term")
	}
	if cnt > 0 {
		return fiber.NewError(fiber.StatusConflict, "Term already exists for this year and semester")
	}

	m := req.ToModel()
	if err := ctrl.DB.Create(&m).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create term")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Term created", m)
}

// GET /api/terms
func (ctrl *TermController) ListTerms(c *fiber.Ctx) error {
	var terms []termModel.TermModel
	if err := ctrl.DB.
		Order("term_academic_year DESC, term_semester DESC").
		Find(&terms).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to list terms")
	}
	return helper.Success(c, "OK", terms)
}

// GET /api/terms/:id
func (ctrl *TermController) GetTerm(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid term id")
	}

	var term termModel.TermModel
	if err := ctrl.DB.Where("term_id = ?", id).First(&term).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Term not found")
	}
	return helper.Success(c, "OK", term)
}

// PUT /api/admin/terms/:id
func (ctrl *TermController) UpdateTerm(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid term id")
	}

	var req termDTO.UpdateTermRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var term termModel.TermModel
	if err := ctrl.DB.Where("term_id = ?", id).First(&term).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Term not found")
	}

	updates := map[string]interface{}{}
	if req.AcademicYear != nil {
		updates["term_academic_year"] = strings.TrimSpace(*req.AcademicYear)
	}
	if req.Semester != nil {
		updates["term_semester"] = *req.Semester
	}
	if req.StartDate != nil {
		updates["term_start_date"] = *req.StartDate
	}
	if req.EndDate != nil {
		updates["term_end_date"] = *req.EndDate
	}
	if len(updates) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Nothing to update")
	}

	if err := ctrl.DB.Model(&term).Updates(updates).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update term")
	}
	if err := ctrl.DB.Where("term_id = ?", id).First(&term).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to reload term")
	}
	return helper.Success(c, "Term updated", term)
}

// DELETE /api/admin/terms/:id
func (ctrl *TermController) DeleteTerm(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid term id")
	}

	res := ctrl.DB.Where("term_id = ?", id).Delete(&termModel.TermModel{})
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete term")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Term not found")
	}
	return helper.Success(c, "Term deleted", nil)
}
