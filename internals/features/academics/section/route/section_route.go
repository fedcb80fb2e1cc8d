package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	sectionController "capstonehub_backend/internals/features/academics/section/controller"
)

// SectionRoutes: read-only, any authenticated role
func SectionRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := sectionController.NewSectionController(db)

	sectionGroup := r.Group("/sections")
	sectionGroup.Get("/", ctrl.ListSections)
	sectionGroup.Get("/:id", ctrl.GetSection)
}

// AdminSectionRoutes: section management
func AdminSectionRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := sectionController.NewSectionController(db)

	sectionGroup := r.Group("/sections")
	sectionGroup.Post("/", ctrl.CreateSection)
	sectionGroup.Put("/:id", ctrl.UpdateSection)
	sectionGroup.Delete("/:id", ctrl.DeleteSection)
	sectionGroup.Patch("/:id/lock", ctrl.SetTeamLock(true))
	sectionGroup.Patch("/:id/unlock", ctrl.SetTeamLock(false))
	sectionGroup.Post("/:id/continue-to-project", ctrl.ContinueToProject)
}
