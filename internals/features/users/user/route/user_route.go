package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	userController "capstonehub_backend/internals/features/users/user/controller"
)

// UserRoutes: authenticated self-service endpoints
func UserRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := userController.NewUserController(db)

	userGroup := r.Group("/users")
	userGroup.Put("/profile", ctrl.UpdateProfile)
}

// AdminUserRoutes: directory management, admin only
func AdminUserRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := userController.NewUserController(db)

	userGroup := r.Group("/users")
	userGroup.Get("/", ctrl.ListUsers)
	userGroup.Get("/:id", ctrl.GetUser)
	userGroup.Patch("/:id/role", ctrl.UpdateRole)
	userGroup.Patch("/:id/active", ctrl.SetActive)
}
