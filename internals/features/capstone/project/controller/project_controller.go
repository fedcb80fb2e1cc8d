package controller

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	projectDTO "capstonehub_backend/internals/features/capstone/project/dto"
	projectModel "capstonehub_backend/internals/features/capstone/project/model"
	teamModel "capstonehub_backend/internals/features/capstone/team/model"
	notificationModel "capstonehub_backend/internals/features/collab/notification/model"
	helper "capstonehub_backend/internals/helpers"
	helperAuth "capstonehub_backend/internals/helpers/auth"
)

type ProjectController struct {
	DB *gorm.DB
}

func NewProjectController(db *gorm.DB) *ProjectController {
	return &ProjectController{DB: db}
}

var validate = validator.New()

// POST /api/projects
//
// One project per team; only a member of the owning team may create.
func (ctrl *ProjectController) CreateProject(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req projectDTO.CreateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	req.Title = strings.TrimSpace(req.Title)
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	if err := ctrl.requireTeamMember(req.TeamID, userID); err != nil {
		return err
	}

	var cnt int64
	if err := ctrl.DB.Model(&projectModel.ProjectModel{}).
		Where("project_team_id = ?", req.TeamID).Count(&cnt).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to check existing project")
	}
	if cnt > 0 {
		return fiber.NewError(fiber.StatusConflict, "Team already has a project")
	}

	project := projectModel.ProjectModel{
		ProjectID:       uuid.New(),
		ProjectTeamID:   req.TeamID,
		ProjectTitle:    req.Title,
		ProjectAbstract: req.Abstract,
		ProjectStatus:   projectModel.ProjectStatusPending,
	}
	if err := ctrl.DB.Create(&project).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create project")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Project created", project)
}

// GET /api/projects/:id
func (ctrl *ProjectController) GetProject(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid project id")
	}

	var project projectModel.ProjectModel
	if err := ctrl.DB.Where("project_id = ?", id).First(&project).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Project not found")
	}

	var advisors []projectDTO.AdvisorOption
	if err := ctrl.DB.Table("project_advisors").
		Select("users.id AS user_id, users.full_name, users.email").
		Joins("JOIN users ON users.id = project_advisors.project_advisor_user_id").
		Where("project_advisors.project_advisor_project_id = ?", id).
		Scan(&advisors).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load advisors")
	}

	return helper.Success(c, "OK", fiber.Map{"project": project, "advisors": advisors})
}

// PUT /api/projects/:id
//
// Editing is closed once the proposal has been approved.
func (ctrl *ProjectController) UpdateProject(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid project id")
	}

	var req projectDTO.UpdateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var project projectModel.ProjectModel
	if err := ctrl.DB.Where("project_id = ?", id).First(&project).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Project not found")
	}
	if err := ctrl.requireTeamMember(project.ProjectTeamID, userID); err != nil {
		return err
	}
	if project.ProjectStatus == projectModel.ProjectStatusApproved {
		return fiber.NewError(fiber.StatusForbidden, "Approved projects can no longer be edited")
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		if title := strings.TrimSpace(*req.Title); title != "" {
			updates["project_title"] = title
		}
	}
	if req.Abstract != nil {
		updates["project_abstract"] = *req.Abstract
	}
	if len(updates) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Nothing to update")
	}

	if err := ctrl.DB.Model(&project).Updates(updates).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update project")
	}
	if err := ctrl.DB.Where("project_id = ?", id).First(&project).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to reload project")
	}
	return helper.Success(c, "Project updated", project)
}

// DELETE /api/projects/:id (own team, not yet approved)
func (ctrl *ProjectController) DeleteProject(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid project id")
	}

	var project projectModel.ProjectModel
	if err := ctrl.DB.Where("project_id = ?", id).First(&project).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Project not found")
	}
	if !helperAuth.IsAdmin(c) {
		if err := ctrl.requireTeamMember(project.ProjectTeamID, userID); err != nil {
			return err
		}
		if project.ProjectStatus == projectModel.ProjectStatusApproved {
			return fiber.NewError(fiber.StatusForbidden, "Approved projects can no longer be deleted")
		}
	}

	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_advisor_project_id = ?", id).
			Delete(&projectModel.ProjectAdvisorModel{}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete project advisors")
		}
		if err := tx.Where("project_id = ?", id).
			Delete(&projectModel.ProjectModel{}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete project")
		}
		return nil
	})
	if err != nil {
		return err
	}
	return helper.Success(c, "Project deleted", nil)
}

// PATCH /api/projects/:id/status
//
// Advisor (assigned to the project) or admin decides APPROVED / REJECTED.
func (ctrl *ProjectController) DecideProject(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid project id")
	}

	var req projectDTO.DecideProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var project projectModel.ProjectModel
	if err := ctrl.DB.Where("project_id = ?", id).First(&project).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Project not found")
	}

	if !helperAuth.IsAdmin(c) {
		assigned, err := ctrl.isAssignedAdvisor(id, userID)
		if err != nil {
			return err
		}
		if !assigned {
			return fiber.NewError(fiber.StatusForbidden, "Only an assigned advisor or admin can decide this project")
		}
	}

	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&project).Update("project_status", req.Status).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to update project status")
		}
		return ctrl.notifyTeam(tx, &project, userID,
			notificationModel.TypeProjectStatus,
			"Project status updated",
			fmt.Sprintf("Project %q is now %s", project.ProjectTitle, req.Status))
	})
	if err != nil {
		return err
	}

	project.ProjectStatus = req.Status
	return helper.Success(c, "Project status updated", project)
}

/* ===============================
   shared helpers
=================================*/

func (ctrl *ProjectController) requireTeamMember(teamID, userID uuid.UUID) error {
	var cnt int64
	err := ctrl.DB.Model(&teamModel.TeamMemberModel{}).
		Where("team_member_team_id = ? AND team_member_user_id = ?", teamID, userID).
		Count(&cnt).Error
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to check team membership")
	}
	if cnt == 0 {
		return fiber.NewError(fiber.StatusForbidden, "You are not a member of this team")
	}
	return nil
}

func (ctrl *ProjectController) isAssignedAdvisor(projectID, userID uuid.UUID) (bool, error) {
	var cnt int64
	err := ctrl.DB.Model(&projectModel.ProjectAdvisorModel{}).
		Where("project_advisor_project_id = ? AND project_advisor_user_id = ?", projectID, userID).
		Count(&cnt).Error
	if err != nil {
		return false, fiber.NewError(fiber.StatusInternalServerError, "Failed to check advisor assignment")
	}
	return cnt > 0, nil
}

// notifyTeam fans a notification out to every member of the project's team.
func (ctrl *ProjectController) notifyTeam(tx *gorm.DB, project *projectModel.ProjectModel, actorID uuid.UUID, notifType, title, message string) error {
	var memberIDs []uuid.UUID
	if err := tx.Model(&teamModel.TeamMemberModel{}).
		Where("team_member_team_id = ?", project.ProjectTeamID).
		Pluck("team_member_user_id", &memberIDs).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to list team members")
	}

	teamID := project.ProjectTeamID
	for _, memberID := range memberIDs {
		n := notificationModel.NotificationModel{
			NotificationID:      uuid.New(),
			NotificationUserID:  memberID,
			NotificationActorID: &actorID,
			NotificationType:    notifType,
			NotificationTitle:   title,
			NotificationMessage: message,
			NotificationTeamID:  &teamID,
		}
		if err := tx.Create(&n).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create notification")
		}
	}
	return nil
}
