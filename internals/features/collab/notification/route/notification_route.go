package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	notificationController "capstonehub_backend/internals/features/collab/notification/controller"
)

// NotificationRoutes wires a user's own notification feed.
func NotificationRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := notificationController.NewNotificationController(db)

	group := router.Group("/notifications")
	group.Get("/", ctrl.ListMine)
	group.Get("/unread-count", ctrl.UnreadCount)
	group.Patch("/read-all", ctrl.MarkAllRead)
	group.Patch("/:id/read", ctrl.MarkRead)
}
