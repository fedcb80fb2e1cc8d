package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"capstonehub_backend/internals/constants"
	enrollmentDTO "capstonehub_backend/internals/features/academics/enrollment/dto"
	enrollmentModel "capstonehub_backend/internals/features/academics/enrollment/model"
	sectionModel "capstonehub_backend/internals/features/academics/section/model"
	userModel "capstonehub_backend/internals/features/users/user/model"
	helper "capstonehub_backend/internals/helpers"
)

type EnrollmentController struct {
	DB *gorm.DB
}

func NewEnrollmentController(db *gorm.DB) *EnrollmentController {
	return &EnrollmentController{DB: db}
}

var validate = validator.New()

// POST /api/admin/sections/:id/enrollments
//
// Bulk enroll: already-enrolled students and non-student accounts are
// skipped and reported, the rest are inserted in one transaction.
func (ctrl *EnrollmentController) BulkEnroll(c *fiber.Ctx) error {
	sectionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid section id")
	}

	var req enrollmentDTO.BulkEnrollRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var section sectionModel.SectionModel
	if err := ctrl.DB.Where("section_id = ?", sectionID).First(&section).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Section not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to look up section")
	}

	enrolled := make([]uuid.UUID, 0, len(req.StudentIDs))
	skipped := make([]fiber.Map, 0)

	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		for _, studentID := range req.StudentIDs {
			var user userModel.UserModel
			if err := tx.Where("id = ?", studentID).First(&user).Error; err != nil {
				skipped = append(skipped, fiber.Map{"student_id": studentID, "reason": "user not found"})
				continue
			}
			if user.Role != constants.RoleStudent {
				skipped = append(skipped, fiber.Map{"student_id": studentID, "reason": "not a student account"})
				continue
			}

			var cnt int64
			if err := tx.Model(&enrollmentModel.EnrollmentModel{}).
				Where("enrollment_section_id = ? AND enrollment_user_id = ?", sectionID, studentID).
				Count(&cnt).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Failed to check enrollment")
			}
			if cnt > 0 {
				skipped = append(skipped, fiber.Map{"student_id": studentID, "reason": "already enrolled"})
				continue
			}

			row := enrollmentModel.EnrollmentModel{
				EnrollmentID:        uuid.New(),
				EnrollmentSectionID: sectionID,
				EnrollmentUserID:    studentID,
			}
			if err := tx.Create(&row).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Failed to enroll student")
			}
			enrolled = append(enrolled, studentID)
		}
		return nil
	})
	if err != nil {
		return err
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Enrollment processed", fiber.Map{
		"enrolled": enrolled,
		"skipped":  skipped,
	})
}

// GET /api/admin/sections/:id/enrollments
func (ctrl *EnrollmentController) ListEnrollments(c *fiber.Ctx) error {
	sectionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid section id")
	}

	var students []enrollmentDTO.EnrolledStudent
	err = ctrl.DB.Table("enrollments").
		Select("enrollments.enrollment_id, users.id AS user_id, users.user_name, users.full_name, users.email, users.student_number").
		Joins("JOIN users ON users.id = enrollments.enrollment_user_id").
		Where("enrollments.enrollment_section_id = ?", sectionID).
		Order("users.full_name ASC").
		Scan(&students).Error
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to list enrollments")
	}
	return helper.Success(c, "OK", students)
}

// DELETE /api/admin/enrollments/:id
func (ctrl *EnrollmentController) RemoveEnrollment(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid enrollment id")
	}

	res := ctrl.DB.Where("enrollment_id = ?", id).Delete(&enrollmentModel.EnrollmentModel{})
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to remove enrollment")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Enrollment not found")
	}
	return helper.Success(c, "Enrollment removed", nil)
}

// GET /api/sections/:id/available-students?q=
//
// Set difference: enrolled in the section minus already on a team there.
// Optional case-insensitive search across name / email / student number.
func (ctrl *EnrollmentController) AvailableStudents(c *fiber.Ctx) error {
	sectionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid section id")
	}

	q := ctrl.DB.Table("enrollments").
		Select("users.id AS user_id, users.user_name, users.full_name, users.email, users.student_number").
		Joins("JOIN users ON users.id = enrollments.enrollment_user_id").
		Where("enrollments.enrollment_section_id = ?", sectionID).
		Where(`users.id NOT IN (
			SELECT team_members.team_member_user_id
			FROM team_members
			JOIN teams ON teams.team_id = team_members.team_member_team_id
			WHERE teams.team_section_id = ?
		)`, sectionID)

	if search := strings.TrimSpace(c.Query("q")); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where(
			"LOWER(users.full_name) LIKE ? OR LOWER(users.email) LIKE ? OR LOWER(COALESCE(users.student_number, '')) LIKE ?",
			like, like, like,
		)
	}

	var students []enrollmentDTO.AvailableStudent
	if err := q.Order("users.full_name ASC").Scan(&students).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to list available students")
	}
	return helper.Success(c, "OK", students)
}
