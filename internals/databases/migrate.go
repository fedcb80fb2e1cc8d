package database

import (
	"gorm.io/gorm"

	enrollmentModel "capstonehub_backend/internals/features/academics/enrollment/model"
	sectionModel "capstonehub_backend/internals/features/academics/section/model"
	termModel "capstonehub_backend/internals/features/academics/term/model"
	eventModel "capstonehub_backend/internals/features/capstone/event/model"
	gradeModel "capstonehub_backend/internals/features/capstone/grade/model"
	projectModel "capstonehub_backend/internals/features/capstone/project/model"
	teamModel "capstonehub_backend/internals/features/capstone/team/model"
	notificationModel "capstonehub_backend/internals/features/collab/notification/model"
	taskModel "capstonehub_backend/internals/features/collab/task/model"
	authModel "capstonehub_backend/internals/features/users/auth/model"
	userModel "capstonehub_backend/internals/features/users/user/model"
)

// Migrate creates or updates every table the app uses. Parent tables go
// first so FK-style lookups always have their targets.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userModel.UserModel{},
		&authModel.TokenBlacklistModel{},
		&authModel.RefreshTokenModel{},
		&termModel.TermModel{},
		&sectionModel.SectionModel{},
		&enrollmentModel.EnrollmentModel{},
		&teamModel.TeamModel{},
		&teamModel.TeamMemberModel{},
		&projectModel.ProjectModel{},
		&projectModel.ProjectAdvisorModel{},
		&eventModel.EventModel{},
		&eventModel.SubmissionModel{},
		&gradeModel.GradeModel{},
		&taskModel.TaskModel{},
		&taskModel.TaskAssignmentModel{},
		&taskModel.TaskCommentModel{},
		&taskModel.TaskAttachmentModel{},
		&notificationModel.NotificationModel{},
	)
}
