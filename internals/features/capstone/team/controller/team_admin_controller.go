package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	eventModel "capstonehub_backend/internals/features/capstone/event/model"
	gradeModel "capstonehub_backend/internals/features/capstone/grade/model"
	projectModel "capstonehub_backend/internals/features/capstone/project/model"
	teamModel "capstonehub_backend/internals/features/capstone/team/model"
	notificationModel "capstonehub_backend/internals/features/collab/notification/model"
	taskModel "capstonehub_backend/internals/features/collab/task/model"
	helper "capstonehub_backend/internals/helpers"
)

// DELETE /api/admin/teams/:id
//
// Cascade delete in FK dependency order, atomically: grades and advisors
// hang off the project, the task family hangs off tasks, then submissions,
// project, team notifications, members, and finally the team row.
func (ctrl *TeamController) DeleteTeam(c *fiber.Ctx) error {
	teamID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid team id")
	}

	var team teamModel.TeamModel
	if err := ctrl.DB.Where("team_id = ?", teamID).First(&team).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Team not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to look up team")
	}

	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		var project projectModel.ProjectModel
		err := tx.Where("project_team_id = ?", teamID).First(&project).Error
		hasProject := err == nil
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to look up project")
		}

		if hasProject {
			if err := tx.Where("grade_project_id = ?", project.ProjectID).
				Delete(&gradeModel.GradeModel{}).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete grades")
			}
			if err := tx.Where("project_advisor_project_id = ?", project.ProjectID).
				Delete(&projectModel.ProjectAdvisorModel{}).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete project advisors")
			}
		}

		// task family: comments / attachments / assignments before tasks
		var taskIDs []uuid.UUID
		if err := tx.Model(&taskModel.TaskModel{}).
			Where("task_team_id = ?", teamID).
			Pluck("task_id", &taskIDs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to list tasks")
		}
		if len(taskIDs) > 0 {
			if err := tx.Where("task_comment_task_id IN ?", taskIDs).
				Delete(&taskModel.TaskCommentModel{}).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete task comments")
			}
			if err := tx.Where("task_attachment_task_id IN ?", taskIDs).
				Delete(&taskModel.TaskAttachmentModel{}).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete task attachments")
			}
			if err := tx.Where("task_assignment_task_id IN ?", taskIDs).
				Delete(&taskModel.TaskAssignmentModel{}).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete task assignments")
			}
			if err := tx.Where("task_id IN ?", taskIDs).
				Delete(&taskModel.TaskModel{}).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete tasks")
			}
		}

		if err := tx.Where("submission_team_id = ?", teamID).
			Delete(&eventModel.SubmissionModel{}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete submissions")
		}

		if hasProject {
			if err := tx.Where("project_id = ?", project.ProjectID).
				Delete(&projectModel.ProjectModel{}).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete project")
			}
		}

		if err := tx.Where("notification_team_id = ?", teamID).
			Delete(&notificationModel.NotificationModel{}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete team notifications")
		}

		if err := tx.Where("team_member_team_id = ?", teamID).
			Delete(&teamModel.TeamMemberModel{}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete team members")
		}

		if err := tx.Where("team_id = ?", teamID).
			Delete(&teamModel.TeamModel{}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete team")
		}
		return nil
	})
	if err != nil {
		return err
	}

	return helper.Success(c, "Team deleted", nil)
}
