package controller

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	teamModel "capstonehub_backend/internals/features/capstone/team/model"
	notificationModel "capstonehub_backend/internals/features/collab/notification/model"
	taskDTO "capstonehub_backend/internals/features/collab/task/dto"
	taskModel "capstonehub_backend/internals/features/collab/task/model"
	helper "capstonehub_backend/internals/helpers"
	helperAuth "capstonehub_backend/internals/helpers/auth"
)

type TaskController struct {
	DB *gorm.DB
}

func NewTaskController(db *gorm.DB) *TaskController {
	return &TaskController{DB: db}
}

var validate = validator.New()

// POST /api/tasks
func (ctrl *TaskController) CreateTask(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req taskDTO.CreateTaskRequest
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

	task := taskModel.TaskModel{
		TaskID:          uuid.New(),
		TaskTeamID:      req.TeamID,
		TaskTitle:       req.Title,
		TaskDescription: req.Description,
		TaskStatus:      taskModel.TaskStatusTodo,
		TaskDueDate:     req.DueDate,
		TaskCreatedBy:   userID,
	}
	if err := ctrl.DB.Create(&task).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create task")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Task created", task)
}

// GET /api/teams/:id/tasks
func (ctrl *TaskController) ListTeamTasks(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	teamID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid team id")
	}
	if !helperAuth.IsAdmin(c) {
		if err := ctrl.requireTeamMember(teamID, userID); err != nil {
			return err
		}
	}

	var tasks []taskModel.TaskModel
	if err := ctrl.DB.Where("task_team_id = ?", teamID).
		Order("task_created_at ASC").
		Find(&tasks).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to list tasks")
	}
	return helper.Success(c, "OK", tasks)
}

// PUT /api/tasks/:id
func (ctrl *TaskController) UpdateTask(c *fiber.Ctx) error {
	task, err := ctrl.loadMemberTask(c)
	if err != nil {
		return err
	}

	var req taskDTO.UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["task_title"] = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		updates["task_description"] = *req.Description
	}
	if req.Status != nil {
		updates["task_status"] = *req.Status
	}
	if req.DueDate != nil {
		updates["task_due_date"] = *req.DueDate
	}
	if len(updates) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Nothing to update")
	}

	if err := ctrl.DB.Model(task).Updates(updates).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update task")
	}
	if err := ctrl.DB.Where("task_id = ?", task.TaskID).First(task).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to reload task")
	}
	return helper.Success(c, "Task updated", task)
}

// DELETE /api/tasks/:id
func (ctrl *TaskController) DeleteTask(c *fiber.Ctx) error {
	task, err := ctrl.loadMemberTask(c)
	if err != nil {
		return err
	}

	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_comment_task_id = ?", task.TaskID).
			Delete(&taskModel.TaskCommentModel{}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete comments")
		}
		if err := tx.Where("task_attachment_task_id = ?", task.TaskID).
			Delete(&taskModel.TaskAttachmentModel{}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete attachments")
		}
		if err := tx.Where("task_assignment_task_id = ?", task.TaskID).
			Delete(&taskModel.TaskAssignmentModel{}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete assignments")
		}
		if err := tx.Where("task_id = ?", task.TaskID).
			Delete(&taskModel.TaskModel{}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete task")
		}
		return nil
	})
	if err != nil {
		return err
	}
	return helper.Success(c, "Task deleted", nil)
}

// POST /api/tasks/:id/assignments
func (ctrl *TaskController) AssignTask(c *fiber.Ctx) error {
	actorID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	task, err := ctrl.loadMemberTask(c)
	if err != nil {
		return err
	}

	var req taskDTO.AssignTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	// assignee has to belong to the same team
	if err := ctrl.requireTeamMember(task.TaskTeamID, req.UserID); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Assignee is not a member of this team")
	}

	var assignment taskModel.TaskAssignmentModel
	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		var cnt int64
		if err := tx.Model(&taskModel.TaskAssignmentModel{}).
			Where("task_assignment_task_id = ? AND task_assignment_user_id = ?", task.TaskID, req.UserID).
			Count(&cnt).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to check assignment")
		}
		if cnt > 0 {
			return fiber.NewError(fiber.StatusConflict, "User is already assigned to this task")
		}

		assignment = taskModel.TaskAssignmentModel{
			TaskAssignmentID:     uuid.New(),
			TaskAssignmentTaskID: task.TaskID,
			TaskAssignmentUserID: req.UserID,
		}
		if err := tx.Create(&assignment).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to assign task")
		}

		if req.UserID == actorID {
			return nil
		}
		n := notificationModel.NotificationModel{
			NotificationID:      uuid.New(),
			NotificationUserID:  req.UserID,
			NotificationActorID: &actorID,
			NotificationType:    notificationModel.TypeTaskAssigned,
			NotificationTitle:   "Task assigned",
			NotificationMessage: fmt.Sprintf("You were assigned to %q", task.TaskTitle),
			NotificationTeamID:  &task.TaskTeamID,
		}
		if err := tx.Create(&n).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create notification")
		}
		return nil
	})
	if err != nil {
		return err
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Task assigned", assignment)
}

// DELETE /api/tasks/:id/assignments/:userId
func (ctrl *TaskController) UnassignTask(c *fiber.Ctx) error {
	task, err := ctrl.loadMemberTask(c)
	if err != nil {
		return err
	}
	assigneeID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid user id")
	}

	res := ctrl.DB.
		Where("task_assignment_task_id = ? AND task_assignment_user_id = ?", task.TaskID, assigneeID).
		Delete(&taskModel.TaskAssignmentModel{})
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to unassign task")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Assignment not found")
	}
	return helper.Success(c, "Task unassigned", nil)
}

// POST /api/tasks/:id/comments
func (ctrl *TaskController) AddComment(c *fiber.Ctx) error {
	actorID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	task, err := ctrl.loadMemberTask(c)
	if err != nil {
		return err
	}

	var req taskDTO.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	req.Text = strings.TrimSpace(req.Text)
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	comment := taskModel.TaskCommentModel{
		TaskCommentID:     uuid.New(),
		TaskCommentTaskID: task.TaskID,
		TaskCommentUserID: actorID,
		TaskCommentText:   req.Text,
	}
	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&comment).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create comment")
		}

		var assignees []taskModel.TaskAssignmentModel
		if err := tx.Where("task_assignment_task_id = ?", task.TaskID).
			Find(&assignees).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to list assignees")
		}
		for _, a := range assignees {
			if a.TaskAssignmentUserID == actorID {
				continue
			}
			n := notificationModel.NotificationModel{
				NotificationID:      uuid.New(),
				NotificationUserID:  a.TaskAssignmentUserID,
				NotificationActorID: &actorID,
				NotificationType:    notificationModel.TypeComment,
				NotificationTitle:   "New comment",
				NotificationMessage: fmt.Sprintf("New comment on %q", task.TaskTitle),
				NotificationTeamID:  &task.TaskTeamID,
			}
			if err := tx.Create(&n).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Failed to create notification")
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Comment added", comment)
}

// GET /api/tasks/:id/comments
func (ctrl *TaskController) ListComments(c *fiber.Ctx) error {
	task, err := ctrl.loadMemberTask(c)
	if err != nil {
		return err
	}

	var comments []taskModel.TaskCommentModel
	if err := ctrl.DB.Where("task_comment_task_id = ?", task.TaskID).
		Order("task_comment_created_at ASC").
		Find(&comments).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to list comments")
	}
	return helper.Success(c, "OK", comments)
}

// POST /api/tasks/:id/attachments
func (ctrl *TaskController) AddAttachment(c *fiber.Ctx) error {
	task, err := ctrl.loadMemberTask(c)
	if err != nil {
		return err
	}

	var req taskDTO.CreateAttachmentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	attachment := taskModel.TaskAttachmentModel{
		TaskAttachmentID:     uuid.New(),
		TaskAttachmentTaskID: task.TaskID,
		TaskAttachmentName:   req.Name,
		TaskAttachmentLink:   req.Link,
	}
	if err := ctrl.DB.Create(&attachment).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to add attachment")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Attachment added", attachment)
}

// DELETE /api/tasks/:id/attachments/:attachmentId
func (ctrl *TaskController) RemoveAttachment(c *fiber.Ctx) error {
	task, err := ctrl.loadMemberTask(c)
	if err != nil {
		return err
	}
	attachmentID, err := uuid.Parse(c.Params("attachmentId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid attachment id")
	}

	res := ctrl.DB.
		Where("task_attachment_id = ? AND task_attachment_task_id = ?", attachmentID, task.TaskID).
		Delete(&taskModel.TaskAttachmentModel{})
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to remove attachment")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Attachment not found")
	}
	return helper.Success(c, "Attachment removed", nil)
}

/* ===============================
   shared helpers
=================================*/

// loadMemberTask fetches the :id task and checks the caller belongs to
// its team.
func (ctrl *TaskController) loadMemberTask(c *fiber.Ctx) (*taskModel.TaskModel, error) {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return nil, err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid task id")
	}

	var task taskModel.TaskModel
	if err := ctrl.DB.Where("task_id = ?", id).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Task not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch task")
	}
	if err := ctrl.requireTeamMember(task.TaskTeamID, userID); err != nil {
		return nil, err
	}
	return &task, nil
}

func (ctrl *TaskController) requireTeamMember(teamID, userID uuid.UUID) error {
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
