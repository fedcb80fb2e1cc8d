package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	gradeController "capstonehub_backend/internals/features/capstone/grade/controller"
)

// GradeRoutes exposes a student's own grades.
func GradeRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := gradeController.NewGradeController(db)
	router.Get("/grades/my", ctrl.MyGrades)
}

// AdminGradeRoutes wires batch grading for admins.
func AdminGradeRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := gradeController.NewGradeController(db)
	router.Post("/grades/batch", ctrl.BatchUpsert)
	router.Get("/sections/:id/grades", ctrl.SectionGradeSheet)
}
