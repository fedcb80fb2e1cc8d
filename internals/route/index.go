package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"capstonehub_backend/internals/constants"
	authMiddleware "capstonehub_backend/internals/middlewares/auth"
	routeDetails "capstonehub_backend/internals/route/details"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	BaseRoutes(app, db)

	// ===================== PUBLIC =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	routeDetails.AuthRoutes(app, db)

	// ===================== AUTHENTICATED =====================
	log.Println("[INFO] Setting up authenticated group...")
	api := app.Group("/api", authMiddleware.AuthMiddleware(db))

	routeDetails.UserRoutes(api, db)
	routeDetails.AcademicUserRoutes(api, db)
	routeDetails.CapstoneUserRoutes(api, db)
	routeDetails.CollabUserRoutes(api, db)

	// ===================== ADMIN =====================
	log.Println("[INFO] Setting up ADMIN group...")
	admin := api.Group("/admin",
		authMiddleware.OnlyRoles("Admin access required", constants.RoleAdmin),
	)

	routeDetails.UserAdminRoutes(admin, db)
	routeDetails.AcademicAdminRoutes(admin, db)
	routeDetails.CapstoneAdminRoutes(admin, db)
}
