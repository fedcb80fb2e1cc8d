package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authRoute "capstonehub_backend/internals/features/users/auth/route"
)

// AuthRoutes mounts the public auth endpoints directly on the app so
// they stay outside the authenticated group.
func AuthRoutes(app *fiber.App, db *gorm.DB) {
	api := app.Group("/api")
	authRoute.AuthRoutes(api, db)
}
