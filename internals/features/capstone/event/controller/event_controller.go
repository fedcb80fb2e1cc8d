package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	sectionModel "capstonehub_backend/internals/features/academics/section/model"
	eventDTO "capstonehub_backend/internals/features/capstone/event/dto"
	eventModel "capstonehub_backend/internals/features/capstone/event/model"
	helper "capstonehub_backend/internals/helpers"
)

type EventController struct {
	DB *gorm.DB
}

func NewEventController(db *gorm.DB) *EventController {
	return &EventController{DB: db}
}

var validate = validator.New()

// POST /api/admin/events
func (ctrl *EventController) CreateEvent(c *fiber.Ctx) error {
	var req eventDTO.CreateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	req.Title = strings.TrimSpace(req.Title)
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var section sectionModel.SectionModel
	if err := ctrl.DB.Where("section_id = ?", req.SectionID).First(&section).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Section not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to look up section")
	}

	event := eventModel.EventModel{
		EventID:          uuid.New(),
		EventSectionID:   req.SectionID,
		EventTitle:       req.Title,
		EventDescription: req.Description,
		EventDueDate:     req.DueDate,
		EventWeight:      req.Weight,
	}
	if err := ctrl.DB.Create(&event).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create event")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Event created", event)
}

// GET /api/sections/:id/events (ordered by due date)
func (ctrl *EventController) ListSectionEvents(c *fiber.Ctx) error {
	sectionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid section id")
	}

	var events []eventModel.EventModel
	if err := ctrl.DB.
		Where("event_section_id = ?", sectionID).
		Order("event_due_date ASC").
		Find(&events).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to list events")
	}
	return helper.Success(c, "OK", events)
}

// GET /api/events/:id
func (ctrl *EventController) GetEvent(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid event id")
	}

	var event eventModel.EventModel
	if err := ctrl.DB.Where("event_id = ?", id).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Event not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch event")
	}
	return helper.Success(c, "OK", event)
}

// PUT /api/admin/events/:id
func (ctrl *EventController) UpdateEvent(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid event id")
	}

	var req eventDTO.UpdateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var event eventModel.EventModel
	if err := ctrl.DB.Where("event_id = ?", id).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Event not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch event")
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["event_title"] = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		updates["event_description"] = *req.Description
	}
	if req.DueDate != nil {
		updates["event_due_date"] = *req.DueDate
	}
	if req.Weight != nil {
		updates["event_weight"] = *req.Weight
	}
	if len(updates) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Nothing to update")
	}

	if err := ctrl.DB.Model(&event).Updates(updates).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update event")
	}
	if err := ctrl.DB.Where("event_id = ?", id).First(&event).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to reload event")
	}
	return helper.Success(c, "Event updated", event)
}

// DELETE /api/admin/events/:id (drops the event's submissions with it)
func (ctrl *EventController) DeleteEvent(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid event id")
	}

	var event eventModel.EventModel
	if err := ctrl.DB.Where("event_id = ?", id).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Event not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch event")
	}

	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("submission_event_id = ?", id).
			Delete(&eventModel.SubmissionModel{}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete submissions")
		}
		if err := tx.Where("event_id = ?", id).
			Delete(&eventModel.EventModel{}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete event")
		}
		return nil
	})
	if err != nil {
		return err
	}
	return helper.Success(c, "Event deleted", nil)
}
