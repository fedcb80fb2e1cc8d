package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"capstonehub_backend/internals/constants"
	projectController "capstonehub_backend/internals/features/capstone/project/controller"
	authMiddleware "capstonehub_backend/internals/middlewares/auth"
)

// ProjectRoutes wires project endpoints for authenticated users.
func ProjectRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := projectController.NewProjectController(db)

	studentOnly := authMiddleware.OnlyRoles("Only students may manage projects", constants.RoleStudent)

	project := router.Group("/projects")
	project.Post("/", studentOnly, ctrl.CreateProject)
	project.Get("/:id", ctrl.GetProject)
	project.Put("/:id", studentOnly, ctrl.UpdateProject)
	project.Delete("/:id", studentOnly, ctrl.DeleteProject)
	project.Post("/:id/advisors", studentOnly, ctrl.AssignAdvisor)
	project.Patch("/:id/status",
		authMiddleware.OnlyRoles("Only advisors or admins may decide proposals",
			constants.RoleAdvisor, constants.RoleAdmin),
		ctrl.DecideProject)

	router.Get("/advisors", ctrl.ListAdvisors)
}

// AdminProjectRoutes wires project endpoints reserved for admins.
func AdminProjectRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := projectController.NewProjectController(db)

	project := router.Group("/projects")
	project.Post("/:id/advisors", ctrl.AssignAdvisor)
	project.Delete("/:id/advisors/:advisorId", ctrl.RemoveAdvisor)
	project.Delete("/:id", ctrl.DeleteProject)
}
