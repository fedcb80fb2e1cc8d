package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"capstonehub_backend/internals/constants"
	projectDTO "capstonehub_backend/internals/features/capstone/project/dto"
	projectModel "capstonehub_backend/internals/features/capstone/project/model"
	userModel "capstonehub_backend/internals/features/users/user/model"
	helper "capstonehub_backend/internals/helpers"
	helperAuth "capstonehub_backend/internals/helpers/auth"
)

// GET /api/advisors
//
// Advisor selection list with current load; an advisor at capacity is
// flagged non-selectable. Load counts advisor links on non-rejected
// projects.
func (ctrl *ProjectController) ListAdvisors(c *fiber.Ctx) error {
	var advisors []projectDTO.AdvisorOption
	err := ctrl.DB.Model(&userModel.UserModel{}).
		Select(`users.id AS user_id, users.full_name, users.email,
			(SELECT COUNT(*) FROM project_advisors
			 JOIN projects ON projects.project_id = project_advisors.project_advisor_project_id
			 WHERE project_advisors.project_advisor_user_id = users.id
			   AND projects.project_status <> 'REJECTED') AS load`).
		Where("role = ? AND is_active = ?", constants.RoleAdvisor, true).
		Order("users.full_name ASC").
		Scan(&advisors).Error
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to list advisors")
	}

	for i := range advisors {
		advisors[i].AtCapacity = advisors[i].Load >= projectModel.AdvisorCapacity
	}
	return helper.Success(c, "OK", advisors)
}

// POST /api/projects/:id/advisors
//
// Capacity-checked: an advisor already carrying AdvisorCapacity
// non-rejected projects cannot take another.
func (ctrl *ProjectController) AssignAdvisor(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid project id")
	}

	var req projectDTO.AssignAdvisorRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var project projectModel.ProjectModel
	if err := ctrl.DB.Where("project_id = ?", projectID).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Project not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to look up project")
	}

	// team members pick advisors for their own project; admins for any
	if !helperAuth.IsAdmin(c) {
		if err := ctrl.requireTeamMember(project.ProjectTeamID, userID); err != nil {
			return err
		}
	}

	var advisor userModel.UserModel
	if err := ctrl.DB.Where("id = ? AND role = ?", req.AdvisorID, constants.RoleAdvisor).
		First(&advisor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Advisor not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to look up advisor")
	}

	var assignment projectModel.ProjectAdvisorModel
	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		var cnt int64
		if err := tx.Model(&projectModel.ProjectAdvisorModel{}).
			Where("project_advisor_project_id = ? AND project_advisor_user_id = ?", projectID, req.AdvisorID).
			Count(&cnt).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to check assignment")
		}
		if cnt > 0 {
			return fiber.NewError(fiber.StatusConflict, "Advisor is already assigned to this project")
		}

		var load int64
		if err := tx.Model(&projectModel.ProjectAdvisorModel{}).
			Joins("JOIN projects ON projects.project_id = project_advisors.project_advisor_project_id").
			Where("project_advisors.project_advisor_user_id = ? AND projects.project_status <> ?",
				req.AdvisorID, projectModel.ProjectStatusRejected).
			Count(&load).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to check advisor load")
		}
		if load >= projectModel.AdvisorCapacity {
			return fiber.NewError(fiber.StatusConflict, "Advisor is at capacity")
		}

		assignment = projectModel.ProjectAdvisorModel{
			ProjectAdvisorID:        uuid.New(),
			ProjectAdvisorProjectID: projectID,
			ProjectAdvisorUserID:    req.AdvisorID,
		}
		if err := tx.Create(&assignment).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to assign advisor")
		}
		return nil
	})
	if err != nil {
		return err
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Advisor assigned", assignment)
}

// DELETE /api/projects/:id/advisors/:advisorId
func (ctrl *ProjectController) RemoveAdvisor(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid project id")
	}
	advisorID, err := uuid.Parse(c.Params("advisorId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid advisor id")
	}

	res := ctrl.DB.
		Where("project_advisor_project_id = ? AND project_advisor_user_id = ?", projectID, advisorID).
		Delete(&projectModel.ProjectAdvisorModel{})
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to remove advisor")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Assignment not found")
	}
	return helper.Success(c, "Advisor removed", nil)
}
