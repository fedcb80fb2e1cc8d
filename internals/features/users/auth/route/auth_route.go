package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authController "capstonehub_backend/internals/features/users/auth/controller"
	"capstonehub_backend/internals/middlewares"
	authMiddleware "capstonehub_backend/internals/middlewares/auth"
)

// AuthRoutes mounts the public auth endpoints plus the authenticated
// logout/me pair.
func AuthRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := authController.NewAuthController(db)

	authGroup := api.Group("/auth")
	authGroup.Post("/register", middlewares.RegisterRateLimiter(), ctrl.Register)
	authGroup.Post("/login", middlewares.LoginRateLimiter(), ctrl.Login)
	authGroup.Post("/google", middlewares.LoginRateLimiter(), ctrl.LoginGoogle)
	authGroup.Post("/refresh", ctrl.Refresh)

	authGroup.Post("/logout", authMiddleware.AuthMiddleware(db), ctrl.Logout)
	authGroup.Get("/me", authMiddleware.AuthMiddleware(db), ctrl.Me)
}
