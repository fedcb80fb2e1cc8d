package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	eventRoute "capstonehub_backend/internals/features/capstone/event/route"
	gradeRoute "capstonehub_backend/internals/features/capstone/grade/route"
	projectRoute "capstonehub_backend/internals/features/capstone/project/route"
	teamRoute "capstonehub_backend/internals/features/capstone/team/route"
)

// CapstoneUserRoutes: teams, projects, milestones, submissions, grades.
func CapstoneUserRoutes(api fiber.Router, db *gorm.DB) {
	teamRoute.TeamRoutes(api, db)
	projectRoute.ProjectRoutes(api, db)
	eventRoute.EventRoutes(api, db)
	gradeRoute.GradeRoutes(api, db)
}

// CapstoneAdminRoutes: team directory, event management, batch grading.
func CapstoneAdminRoutes(admin fiber.Router, db *gorm.DB) {
	teamRoute.AdminTeamRoutes(admin, db)
	projectRoute.AdminProjectRoutes(admin, db)
	eventRoute.AdminEventRoutes(admin, db)
	gradeRoute.AdminGradeRoutes(admin, db)
}
