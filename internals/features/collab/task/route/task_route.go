package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	taskController "capstonehub_backend/internals/features/collab/task/controller"
)

// TaskRoutes wires the team kanban endpoints. Membership checks live in
// the controller, so no role guard is needed here.
func TaskRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := taskController.NewTaskController(db)

	router.Get("/teams/:id/tasks", ctrl.ListTeamTasks)

	task := router.Group("/tasks")
	task.Post("/", ctrl.CreateTask)
	task.Put("/:id", ctrl.UpdateTask)
	task.Delete("/:id", ctrl.DeleteTask)
	task.Post("/:id/assignments", ctrl.AssignTask)
	task.Delete("/:id/assignments/:userId", ctrl.UnassignTask)
	task.Get("/:id/comments", ctrl.ListComments)
	task.Post("/:id/comments", ctrl.AddComment)
	task.Post("/:id/attachments", ctrl.AddAttachment)
	task.Delete("/:id/attachments/:attachmentId", ctrl.RemoveAttachment)
}
