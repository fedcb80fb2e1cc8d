package controller

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	eventDTO "capstonehub_backend/internals/features/capstone/event/dto"
	eventModel "capstonehub_backend/internals/features/capstone/event/model"
	projectModel "capstonehub_backend/internals/features/capstone/project/model"
	teamModel "capstonehub_backend/internals/features/capstone/team/model"
	notificationModel "capstonehub_backend/internals/features/collab/notification/model"
	helper "capstonehub_backend/internals/helpers"
	helperAuth "capstonehub_backend/internals/helpers/auth"
)

// DeadlineWindowDays bounds the upcoming-deadline lookahead.
const DeadlineWindowDays = 14

type SubmissionController struct {
	DB *gorm.DB
}

func NewSubmissionController(db *gorm.DB) *SubmissionController {
	return &SubmissionController{DB: db}
}

// POST /api/events/:id/submit
//
// Moves the caller's team submission to SUBMITTED. The row is created
// lazily on first submit; a resubmission after NEEDS_REVISION keeps the
// previous feedback until the next review.
func (ctrl *SubmissionController) SubmitWork(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	eventID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid event id")
	}

	var req eventDTO.SubmitWorkRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var event eventModel.EventModel
	if err := ctrl.DB.Where("event_id = ?", eventID).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Event not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch event")
	}

	team, err := ctrl.teamOfUserInSection(event.EventSectionID, userID)
	if err != nil {
		return err
	}

	now := time.Now()
	var submission eventModel.SubmissionModel
	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("submission_team_id = ? AND submission_event_id = ?", team.TeamID, eventID).
			First(&submission).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			submission = eventModel.SubmissionModel{
				SubmissionID:          uuid.New(),
				SubmissionTeamID:      team.TeamID,
				SubmissionEventID:     eventID,
				SubmissionStatus:      eventModel.SubmissionStatusSubmitted,
				SubmissionFileLink:    req.FileLink,
				SubmissionSubmittedAt: &now,
			}
			if err := tx.Create(&submission).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Failed to create submission")
			}
			return nil
		case err != nil:
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch submission")
		}

		switch submission.SubmissionStatus {
		case eventModel.SubmissionStatusPending, eventModel.SubmissionStatusNeedsRevision:
		default:
			return fiber.NewError(fiber.StatusConflict,
				fmt.Sprintf("Cannot submit while status is %s", submission.SubmissionStatus))
		}

		updates := map[string]interface{}{
			"submission_status":       eventModel.SubmissionStatusSubmitted,
			"submission_submitted_at": now,
		}
		if req.FileLink != nil {
			updates["submission_file_link"] = *req.FileLink
		}
		if err := tx.Model(&submission).Updates(updates).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to update submission")
		}
		submission.SubmissionStatus = eventModel.SubmissionStatusSubmitted
		submission.SubmissionSubmittedAt = &now
		if req.FileLink != nil {
			submission.SubmissionFileLink = req.FileLink
		}
		return nil
	})
	if err != nil {
		return err
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Work submitted", submission)
}

// PATCH /api/submissions/:id/review
//
// SUBMITTED -> APPROVED or NEEDS_REVISION, by the team's assigned
// advisor or an admin. NEEDS_REVISION requires feedback. APPROVED is
// terminal.
func (ctrl *SubmissionController) ReviewSubmission(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid submission id")
	}

	var req eventDTO.ReviewSubmissionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	if req.Status == eventModel.SubmissionStatusNeedsRevision &&
		(req.Feedback == nil || strings.TrimSpace(*req.Feedback) == "") {
		return fiber.NewError(fiber.StatusBadRequest, "Feedback is required when requesting revision")
	}

	var submission eventModel.SubmissionModel
	if err := ctrl.DB.Where("submission_id = ?", id).First(&submission).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Submission not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch submission")
	}

	if submission.SubmissionStatus == eventModel.SubmissionStatusApproved {
		return fiber.NewError(fiber.StatusConflict, "Submission is already approved")
	}
	if submission.SubmissionStatus != eventModel.SubmissionStatusSubmitted {
		return fiber.NewError(fiber.StatusConflict,
			fmt.Sprintf("Cannot review while status is %s", submission.SubmissionStatus))
	}

	if !helperAuth.IsAdmin(c) {
		assigned, err := ctrl.isTeamAdvisor(submission.SubmissionTeamID, userID)
		if err != nil {
			return err
		}
		if !assigned {
			return fiber.NewError(fiber.StatusForbidden, "Only the team's advisor or an admin can review")
		}
	}

	now := time.Now()
	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"submission_status":      req.Status,
			"submission_reviewed_by": userID,
			"submission_reviewed_at": now,
		}
		if req.Feedback != nil {
			updates["submission_feedback"] = *req.Feedback
		}
		if err := tx.Model(&submission).Updates(updates).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to update submission")
		}

		var event eventModel.EventModel
		if err := tx.Where("event_id = ?", submission.SubmissionEventID).First(&event).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch event")
		}
		return ctrl.notifyTeam(tx, submission.SubmissionTeamID, userID,
			"Submission reviewed",
			fmt.Sprintf("Your submission for %q is now %s", event.EventTitle, req.Status))
	})
	if err != nil {
		return err
	}

	submission.SubmissionStatus = req.Status
	submission.SubmissionReviewedBy = &userID
	submission.SubmissionReviewedAt = &now
	if req.Feedback != nil {
		submission.SubmissionFeedback = req.Feedback
	}
	return helper.Success(c, "Submission reviewed", submission)
}

// GET /api/teams/:id/submissions
func (ctrl *SubmissionController) ListTeamSubmissions(c *fiber.Ctx) error {
	teamID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid team id")
	}

	var rows []eventModel.SubmissionModel
	if err := ctrl.DB.
		Joins("JOIN events ON events.event_id = submissions.submission_event_id").
		Where("submission_team_id = ?", teamID).
		Order("events.event_due_date ASC").
		Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to list submissions")
	}
	return helper.Success(c, "OK", rows)
}

// GET /api/teams/:id/progress
func (ctrl *SubmissionController) TeamProgress(c *fiber.Ctx) error {
	teamID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid team id")
	}

	var team teamModel.TeamModel
	if err := ctrl.DB.Where("team_id = ?", teamID).First(&team).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Team not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch team")
	}

	progress, err := ctrl.progressForTeam(&team)
	if err != nil {
		return err
	}
	return helper.Success(c, "OK", progress)
}

// GET /api/sections/:id/progress (one entry per team)
func (ctrl *SubmissionController) SectionProgress(c *fiber.Ctx) error {
	sectionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid section id")
	}

	var teams []teamModel.TeamModel
	if err := ctrl.DB.Where("team_section_id = ?", sectionID).
		Order("team_group_number ASC").
		Find(&teams).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to list teams")
	}

	out := make([]eventDTO.TeamProgress, 0, len(teams))
	for i := range teams {
		p, err := ctrl.progressForTeam(&teams[i])
		if err != nil {
			return err
		}
		out = append(out, *p)
	}
	return helper.Success(c, "OK", out)
}

// GET /api/deadlines
//
// Upcoming events for the caller's teams whose submission is not
// APPROVED yet, due within DeadlineWindowDays, soonest first.
func (ctrl *SubmissionController) UpcomingDeadlines(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var teams []teamModel.TeamModel
	if err := ctrl.DB.
		Joins("JOIN team_members ON team_members.team_member_team_id = teams.team_id").
		Where("team_members.team_member_user_id = ?", userID).
		Find(&teams).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to list teams")
	}

	now := time.Now()
	horizon := now.AddDate(0, 0, DeadlineWindowDays)
	deadlines := make([]eventDTO.UpcomingDeadline, 0)
	for i := range teams {
		team := &teams[i]

		var events []eventModel.EventModel
		if err := ctrl.DB.
			Where("event_section_id = ? AND event_due_date >= ? AND event_due_date <= ?",
				team.TeamSectionID, now, horizon).
			Order("event_due_date ASC").
			Find(&events).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to list events")
		}

		for j := range events {
			ev := &events[j]
			var submission eventModel.SubmissionModel
			status := eventModel.SubmissionStatusPending
			var submissionID *uuid.UUID
			err := ctrl.DB.Where("submission_team_id = ? AND submission_event_id = ?",
				team.TeamID, ev.EventID).First(&submission).Error
			switch {
			case err == nil:
				if submission.SubmissionStatus == eventModel.SubmissionStatusApproved {
					continue
				}
				status = submission.SubmissionStatus
				submissionID = &submission.SubmissionID
			case !errors.Is(err, gorm.ErrRecordNotFound):
				return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch submission")
			}

			deadlines = append(deadlines, eventDTO.UpcomingDeadline{
				EventID:       ev.EventID,
				EventTitle:    ev.EventTitle,
				EventDueDate:  ev.EventDueDate,
				DaysRemaining: int(ev.EventDueDate.Sub(now).Hours() / 24),
				TeamID:        team.TeamID,
				Status:        status,
				SubmissionID:  submissionID,
			})
		}
	}

	// teams are collected independently, re-sort across all of them
	sort.Slice(deadlines, func(i, j int) bool {
		return deadlines[i].EventDueDate.Before(deadlines[j].EventDueDate)
	})

	return helper.Success(c, "OK", deadlines)
}

/* ===============================
   shared helpers
=================================*/

func (ctrl *SubmissionController) progressForTeam(team *teamModel.TeamModel) (*eventDTO.TeamProgress, error) {
	var total int64
	if err := ctrl.DB.Model(&eventModel.EventModel{}).
		Where("event_section_id = ?", team.TeamSectionID).
		Count(&total).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to count events")
	}

	var approved int64
	if err := ctrl.DB.Model(&eventModel.SubmissionModel{}).
		Where("submission_team_id = ? AND submission_status = ?",
			team.TeamID, eventModel.SubmissionStatusApproved).
		Count(&approved).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to count approvals")
	}

	p := &eventDTO.TeamProgress{
		TeamID:      team.TeamID,
		TeamName:    team.TeamName,
		TotalEvents: int(total),
		Approved:    int(approved),
	}
	if total > 0 {
		p.Percent = float64(approved) / float64(total) * 100
	}
	return p, nil
}

func (ctrl *SubmissionController) teamOfUserInSection(sectionID, userID uuid.UUID) (*teamModel.TeamModel, error) {
	var team teamModel.TeamModel
	err := ctrl.DB.
		Joins("JOIN team_members ON team_members.team_member_team_id = teams.team_id").
		Where("teams.team_section_id = ? AND team_members.team_member_user_id = ?", sectionID, userID).
		First(&team).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fiber.NewError(fiber.StatusForbidden, "You have no team in this section")
	}
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to look up team")
	}
	return &team, nil
}

func (ctrl *SubmissionController) isTeamAdvisor(teamID, userID uuid.UUID) (bool, error) {
	var cnt int64
	err := ctrl.DB.Model(&projectModel.ProjectAdvisorModel{}).
		Joins("JOIN projects ON projects.project_id = project_advisors.project_advisor_project_id").
		Where("projects.project_team_id = ? AND project_advisors.project_advisor_user_id = ?", teamID, userID).
		Count(&cnt).Error
	if err != nil {
		return false, fiber.NewError(fiber.StatusInternalServerError, "Failed to check advisor assignment")
	}
	return cnt > 0, nil
}

func (ctrl *SubmissionController) notifyTeam(tx *gorm.DB, teamID, actorID uuid.UUID, title, message string) error {
	var members []teamModel.TeamMemberModel
	if err := tx.Where("team_member_team_id = ?", teamID).Find(&members).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to list team members")
	}
	for _, m := range members {
		n := notificationModel.NotificationModel{
			NotificationID:      uuid.New(),
			NotificationUserID:  m.TeamMemberUserID,
			NotificationActorID: &actorID,
			NotificationType:    notificationModel.TypeSubmissionReviewed,
			NotificationTitle:   title,
			NotificationMessage: message,
			NotificationTeamID:  &teamID,
		}
		if err := tx.Create(&n).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create notification")
		}
	}
	return nil
}
