package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	notificationRoute "capstonehub_backend/internals/features/collab/notification/route"
	taskRoute "capstonehub_backend/internals/features/collab/task/route"
)

// CollabUserRoutes: team kanban and the notification feed.
func CollabUserRoutes(api fiber.Router, db *gorm.DB) {
	taskRoute.TaskRoutes(api, db)
	notificationRoute.NotificationRoutes(api, db)
}
