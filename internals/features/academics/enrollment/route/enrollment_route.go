package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	enrollmentController "capstonehub_backend/internals/features/academics/enrollment/controller"
)

// EnrollmentRoutes: available-students lookup used by students when inviting
func EnrollmentRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := enrollmentController.NewEnrollmentController(db)

	r.Get("/sections/:id/available-students", ctrl.AvailableStudents)
}

// AdminEnrollmentRoutes: bulk enroll + listing + removal
func AdminEnrollmentRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := enrollmentController.NewEnrollmentController(db)

	r.Post("/sections/:id/enrollments", ctrl.BulkEnroll)
	r.Get("/sections/:id/enrollments", ctrl.ListEnrollments)
	r.Delete("/enrollments/:id", ctrl.RemoveEnrollment)
}
