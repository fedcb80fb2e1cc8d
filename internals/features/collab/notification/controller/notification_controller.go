package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	notificationModel "capstonehub_backend/internals/features/collab/notification/model"
	helper "capstonehub_backend/internals/helpers"
	helperAuth "capstonehub_backend/internals/helpers/auth"
)

type NotificationController struct {
	DB *gorm.DB
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{DB: db}
}

// GET /api/notifications (mine, newest first, paginated)
func (ctrl *NotificationController) ListMine(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	paging := helper.ResolvePaging(c, 20, 100)

	query := ctrl.DB.Model(&notificationModel.NotificationModel{}).
		Where("notification_user_id = ?", userID)
	if c.QueryBool("unread") {
		query = query.Where("notification_is_read = ?", false)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to count notifications")
	}

	var rows []notificationModel.NotificationModel
	if err := query.
		Order("notification_created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to list notifications")
	}

	return helper.SuccessList(c, "OK", rows, helper.BuildPagination(paging, total, len(rows)))
}

// GET /api/notifications/unread-count
func (ctrl *NotificationController) UnreadCount(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var count int64
	if err := ctrl.DB.Model(&notificationModel.NotificationModel{}).
		Where("notification_user_id = ? AND notification_is_read = ?", userID, false).
		Count(&count).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to count notifications")
	}
	return helper.Success(c, "OK", fiber.Map{"unread": count})
}

// PATCH /api/notifications/:id/read
func (ctrl *NotificationController) MarkRead(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid notification id")
	}

	var n notificationModel.NotificationModel
	if err := ctrl.DB.
		Where("notification_id = ? AND notification_user_id = ?", id, userID).
		First(&n).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Notification not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch notification")
	}

	if err := ctrl.DB.Model(&n).Update("notification_is_read", true).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to mark notification read")
	}
	n.NotificationIsRead = true
	return helper.Success(c, "Notification marked read", n)
}

// PATCH /api/notifications/read-all
func (ctrl *NotificationController) MarkAllRead(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	res := ctrl.DB.Model(&notificationModel.NotificationModel{}).
		Where("notification_user_id = ? AND notification_is_read = ?", userID, false).
		Update("notification_is_read", true)
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to mark notifications read")
	}
	return helper.Success(c, "All notifications marked read", fiber.Map{"updated": res.RowsAffected})
}
