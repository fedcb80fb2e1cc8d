package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	enrollmentRoute "capstonehub_backend/internals/features/academics/enrollment/route"
	sectionRoute "capstonehub_backend/internals/features/academics/section/route"
	termRoute "capstonehub_backend/internals/features/academics/term/route"
)

// AcademicUserRoutes: term/section reads plus the available-students
// lookup students use when inviting.
func AcademicUserRoutes(api fiber.Router, db *gorm.DB) {
	termRoute.TermRoutes(api, db)
	sectionRoute.SectionRoutes(api, db)
	enrollmentRoute.EnrollmentRoutes(api, db)
}

// AcademicAdminRoutes: term/section/enrollment management.
func AcademicAdminRoutes(admin fiber.Router, db *gorm.DB) {
	termRoute.AdminTermRoutes(admin, db)
	sectionRoute.AdminSectionRoutes(admin, db)
	enrollmentRoute.AdminEnrollmentRoutes(admin, db)
}
