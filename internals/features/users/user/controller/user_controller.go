package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	userDTO "capstonehub_backend/internals/features/users/user/dto"
	userModel "capstonehub_backend/internals/features/users/user/model"
	helper "capstonehub_backend/internals/helpers"
	helperAuth "capstonehub_backend/internals/helpers/auth"
)

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

var validate = validator.New()

// GET /api/admin/users?role=&q=&page=&per_page=
func (ctrl *UserController) ListUsers(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&userModel.UserModel{})
	if role := strings.TrimSpace(c.Query("role")); role != "" {
		q = q.Where("role = ?", strings.ToUpper(role))
	}
	if search := strings.TrimSpace(c.Query("q")); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where(
			"LOWER(full_name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(user_name) LIKE ? OR LOWER(COALESCE(student_number, '')) LIKE ?",
			like, like, like, like,
		)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to count users")
	}

	var users []userModel.UserModel
	if err := q.Order("created_at DESC").Offset(paging.Offset).Limit(paging.Limit).Find(&users).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to list users")
	}

	data := userDTO.ToUserResponses(users)
	return helper.SuccessList(c, "OK", data, helper.BuildPagination(paging, total, len(data)))
}

// GET /api/admin/users/:id
func (ctrl *UserController) GetUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid user id")
	}

	var user userModel.UserModel
	if err := ctrl.DB.Where("id = ?", id).First(&user).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "User not found")
	}
	return helper.Success(c, "OK", userDTO.ToUserResponse(&user))
}

// PATCH /api/admin/users/:id/role
func (ctrl *UserController) UpdateRole(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid user id")
	}

	var req userDTO.UpdateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var user userModel.UserModel
	if err := ctrl.DB.Where("id = ?", id).First(&user).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "User not found")
	}

	if err := ctrl.DB.Model(&user).Update("role", req.Role).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update role")
	}
	user.Role = req.Role
	return helper.Success(c, "Role updated", userDTO.ToUserResponse(&user))
}

// PATCH /api/admin/users/:id/active
func (ctrl *UserController) SetActive(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid user id")
	}

	var req struct {
		IsActive *bool `json:"is_active" validate:"required"`
	}
	if err := c.BodyParser(&req); err != nil || req.IsActive == nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}

	var user userModel.UserModel
	if err := ctrl.DB.Where("id = ?", id).First(&user).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "User not found")
	}

	if err := ctrl.DB.Model(&user).Update("is_active", *req.IsActive).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update user")
	}
	user.IsActive = *req.IsActive
	return helper.Success(c, "User updated", userDTO.ToUserResponse(&user))
}

// PUT /api/users/profile
func (ctrl *UserController) UpdateProfile(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req userDTO.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	updates := map[string]interface{}{}
	if req.FullName != nil {
		if name := strings.TrimSpace(*req.FullName); name != "" {
			updates["full_name"] = name
		}
	}
	if req.StudentNumber != nil {
		updates["student_number"] = req.StudentNumber
	}
	if len(updates) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Nothing to update")
	}

	var user userModel.UserModel
	if err := ctrl.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "User not found")
	}
	if err := ctrl.DB.Model(&user).Updates(updates).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update profile")
	}

	if err := ctrl.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to reload profile")
	}
	return helper.Success(c, "Profile updated", userDTO.ToUserResponse(&user))
}
