package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	termController "capstonehub_backend/internals/features/academics/term/controller"
)

// TermRoutes: read-only, any authenticated role
func TermRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := termController.NewTermController(db)

	termGroup := r.Group("/terms")
	termGroup.Get("/", ctrl.ListTerms)
	termGroup.Get("/:id", ctrl.GetTerm)
}

// AdminTermRoutes: term management
func AdminTermRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := termController.NewTermController(db)

	termGroup := r.Group("/terms")
	termGroup.Post("/", ctrl.CreateTerm)
	termGroup.Put("/:id", ctrl.UpdateTerm)
	termGroup.Delete("/:id", ctrl.DeleteTerm)
}
