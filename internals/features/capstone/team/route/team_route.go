package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"capstonehub_backend/internals/constants"
	teamController "capstonehub_backend/internals/features/capstone/team/controller"
	authMiddleware "capstonehub_backend/internals/middlewares/auth"
)

// TeamRoutes: student-facing team lifecycle
func TeamRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := teamController.NewTeamController(db)
	onlyStudents := authMiddleware.OnlyRoles("Only students can manage teams", constants.RoleStudent)

	teamGroup := r.Group("/teams")
	teamGroup.Post("/", onlyStudents, ctrl.CreateTeam)
	teamGroup.Get("/my", onlyStudents, ctrl.MyTeam)
	teamGroup.Get("/:id", ctrl.GetTeam)
	teamGroup.Post("/:id/invites", onlyStudents, ctrl.InviteMember)
	teamGroup.Delete("/:id/members/me", onlyStudents, ctrl.LeaveTeam)

	inviteGroup := r.Group("/invites")
	inviteGroup.Post("/:id/accept", onlyStudents, ctrl.AcceptInvite)
	inviteGroup.Post("/:id/reject", onlyStudents, ctrl.RejectInvite)
}

// AdminTeamRoutes: directory management incl. cascade delete
func AdminTeamRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := teamController.NewTeamController(db)

	teamGroup := r.Group("/teams")
	teamGroup.Get("/", ctrl.ListTeams)
	teamGroup.Delete("/:id", ctrl.DeleteTeam)
}
