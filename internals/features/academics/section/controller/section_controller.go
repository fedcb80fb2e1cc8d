package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	enrollmentModel "capstonehub_backend/internals/features/academics/enrollment/model"
	sectionDTO "capstonehub_backend/internals/features/academics/section/dto"
	sectionModel "capstonehub_backend/internals/features/academics/section/model"
	termModel "capstonehub_backend/internals/features/academics/term/model"
	eventModel "capstonehub_backend/internals/features/capstone/event/model"
	helper "capstonehub_backend/internals/helpers"
)

type SectionController struct {
	DB *gorm.DB
}

func NewSectionController(db *gorm.DB) *SectionController {
	return &SectionController{DB: db}
}

var validate = validator.New()

// POST /api/admin/sections
func (ctrl *SectionController) CreateSection(c *fiber.Ctx) error {
	var req sectionDTO.CreateSectionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	req.Code = strings.TrimSpace(req.Code)
	req.Name = strings.TrimSpace(req.Name)
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var term termModel.TermModel
	if err := ctrl.DB.Where("term_id = ?", req.TermID).First(&term).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Term not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to look up term")
	}

	var cnt int64
	if err := ctrl.DB.Model(&sectionModel.SectionModel{}).
		Where("section_term_id = ? AND LOWER(section_code) = LOWER(?)", req.TermID, req.Code).
		Count(&cnt).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to check section code")
	}
	if cnt > 0 {
		return fiber.NewError(fiber.StatusConflict, "Section code already used in this term")
	}

	m := req.ToModel()
	if err := ctrl.DB.Create(&m).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create section")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Section created", m)
}

// GET /api/sections?term_id=
func (ctrl *SectionController) ListSections(c *fiber.Ctx) error {
	q := ctrl.DB.Model(&sectionModel.SectionModel{})
	if termID := strings.TrimSpace(c.Query("term_id")); termID != "" {
		id, err := uuid.Parse(termID)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid term id")
		}
		q = q.Where("section_term_id = ?", id)
	}

	var sections []sectionModel.SectionModel
	if err := q.Order("section_created_at DESC").Find(&sections).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to list sections")
	}
	return helper.Success(c, "OK", sections)
}

// GET /api/sections/:id
func (ctrl *SectionController) GetSection(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid section id")
	}

	var section sectionModel.SectionModel
	if err := ctrl.DB.Where("section_id = ?", id).First(&section).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Section not found")
	}
	return helper.Success(c, "OK", section)
}

// PUT /api/admin/sections/:id
func (ctrl *SectionController) UpdateSection(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid section id")
	}

	var req sectionDTO.UpdateSectionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var section sectionModel.SectionModel
	if err := ctrl.DB.Where("section_id = ?", id).First(&section).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Section not found")
	}

	updates := map[string]interface{}{}
	if req.Code != nil {
		updates["section_code"] = strings.TrimSpace(*req.Code)
	}
	if req.Name != nil {
		updates["section_name"] = strings.TrimSpace(*req.Name)
	}
	if req.MinTeamSize != nil {
		updates["section_min_team_size"] = *req.MinTeamSize
	}
	if req.MaxTeamSize != nil {
		updates["section_max_team_size"] = *req.MaxTeamSize
	}
	if req.Deadline != nil {
		updates["section_deadline"] = *req.Deadline
	}
	if len(updates) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Nothing to update")
	}

	if err := ctrl.DB.Model(&section).Updates(updates).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update section")
	}
	if err := ctrl.DB.Where("section_id = ?", id).First(&section).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to reload section")
	}
	return helper.Success(c, "Section updated", section)
}

// PATCH /api/admin/sections/:id/lock and /unlock
func (ctrl *SectionController) SetTeamLock(locked bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid section id")
		}

		res := ctrl.DB.Model(&sectionModel.SectionModel{}).
			Where("section_id = ?", id).
			Update("section_team_locked", locked)
		if res.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to update section lock")
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Section not found")
		}

		msg := "Section unlocked"
		if locked {
			msg = "Section locked"
		}
		return helper.Success(c, msg, fiber.Map{"section_id": id, "section_team_locked": locked})
	}
}

// DELETE /api/admin/sections/:id (only when empty)
func (ctrl *SectionController) DeleteSection(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid section id")
	}

	var teams int64
	if err := ctrl.DB.Table("teams").Where("team_section_id = ?", id).Count(&teams).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to check section teams")
	}
	if teams > 0 {
		return fiber.NewError(fiber.StatusConflict, "Section still has teams; delete them first")
	}

	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_section_id = ?", id).Delete(&eventModel.EventModel{}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete section events")
		}
		if err := tx.Where("enrollment_section_id = ?", id).Delete(&enrollmentModel.EnrollmentModel{}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete section enrollments")
		}
		res := tx.Where("section_id = ?", id).Delete(&sectionModel.SectionModel{})
		if res.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete section")
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Section not found")
		}
		return nil
	})
	if err != nil {
		return err
	}
	return helper.Success(c, "Section deleted", nil)
}
