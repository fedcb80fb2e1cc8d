package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"capstonehub_backend/internals/constants"
	eventController "capstonehub_backend/internals/features/capstone/event/controller"
	authMiddleware "capstonehub_backend/internals/middlewares/auth"
)

// EventRoutes wires milestone and submission endpoints for
// authenticated users.
func EventRoutes(router fiber.Router, db *gorm.DB) {
	events := eventController.NewEventController(db)
	submissions := eventController.NewSubmissionController(db)

	studentOnly := authMiddleware.OnlyRoles("Only students may submit work", constants.RoleStudent)
	reviewerOnly := authMiddleware.OnlyRoles("Only advisors or admins may review",
		constants.RoleAdvisor, constants.RoleAdmin)

	router.Get("/sections/:id/events", events.ListSectionEvents)
	router.Get("/sections/:id/progress", submissions.SectionProgress)
	router.Get("/events/:id", events.GetEvent)
	router.Post("/events/:id/submit", studentOnly, submissions.SubmitWork)
	router.Patch("/submissions/:id/review", reviewerOnly, submissions.ReviewSubmission)
	router.Get("/teams/:id/submissions", submissions.ListTeamSubmissions)
	router.Get("/teams/:id/progress", submissions.TeamProgress)
	router.Get("/deadlines", studentOnly, submissions.UpcomingDeadlines)
}

// AdminEventRoutes wires event management for admins.
func AdminEventRoutes(router fiber.Router, db *gorm.DB) {
	events := eventController.NewEventController(db)

	group := router.Group("/events")
	group.Post("/", events.CreateEvent)
	group.Put("/:id", events.UpdateEvent)
	group.Delete("/:id", events.DeleteEvent)
}
