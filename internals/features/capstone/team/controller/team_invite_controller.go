package controller

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	enrollmentModel "capstonehub_backend/internals/features/academics/enrollment/model"
	sectionModel "capstonehub_backend/internals/features/academics/section/model"
	teamDTO "capstonehub_backend/internals/features/capstone/team/dto"
	teamModel "capstonehub_backend/internals/features/capstone/team/model"
	notificationModel "capstonehub_backend/internals/features/collab/notification/model"
	helper "capstonehub_backend/internals/helpers"
	helperAuth "capstonehub_backend/internals/helpers/auth"
)

// POST /api/teams/:id/invites
//
// Any member may invite an enrolled, team-less student. The pending invite
// lives on the TEAM_INVITE notification row targeted at the invitee.
func (ctrl *TeamController) InviteMember(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	teamID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid team id")
	}

	var req teamDTO.InviteMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var team teamModel.TeamModel
	if err := ctrl.DB.Where("team_id = ?", teamID).First(&team).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Team not found")
	}

	isMember, err := ctrl.isTeamMember(teamID, userID)
	if err != nil {
		return err
	}
	if !isMember {
		return fiber.NewError(fiber.StatusForbidden, "Only team members can invite")
	}

	var section sectionModel.SectionModel
	if err := ctrl.DB.Where("section_id = ?", team.TeamSectionID).First(&section).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to look up section")
	}
	if section.SectionTeamLocked {
		return fiber.NewError(fiber.StatusForbidden, "Team formation is locked for this section")
	}

	// team size bound counts current members plus the invitee
	var memberCount int64
	if err := ctrl.DB.Model(&teamModel.TeamMemberModel{}).
		Where("team_member_team_id = ?", teamID).Count(&memberCount).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to count members")
	}
	if int(memberCount) >= section.SectionMaxTeamSize {
		return fiber.NewError(fiber.StatusConflict, "Team is already full")
	}

	var enrolled int64
	if err := ctrl.DB.Model(&enrollmentModel.EnrollmentModel{}).
		Where("enrollment_section_id = ? AND enrollment_user_id = ?", section.SectionID, req.StudentID).
		Count(&enrolled).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to check enrollment")
	}
	if enrolled == 0 {
		return fiber.NewError(fiber.StatusConflict, "Student is not enrolled in this section")
	}

	inTeam, err := ctrl.userInSectionTeam(ctrl.DB, section.SectionID, req.StudentID)
	if err != nil {
		return err
	}
	if inTeam {
		return fiber.NewError(fiber.StatusConflict, "Student already belongs to a team in this section")
	}

	var pending int64
	if err := ctrl.DB.Model(&notificationModel.NotificationModel{}).
		Where("notification_type = ? AND notification_team_id = ? AND notification_user_id = ? AND notification_invite_status = ?",
			notificationModel.TypeTeamInvite, teamID, req.StudentID, notificationModel.InviteStatusPending).
		Count(&pending).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to check pending invites")
	}
	if pending > 0 {
		return fiber.NewError(fiber.StatusConflict, "Student already has a pending invite to this team")
	}

	inviteStatus := notificationModel.InviteStatusPending
	data := datatypes.JSON(fmt.Sprintf(`{"team_id":%q,"section_id":%q}`, teamID, section.SectionID))
	invite := notificationModel.NotificationModel{
		NotificationID:           uuid.New(),
		NotificationUserID:       req.StudentID,
		NotificationActorID:      &userID,
		NotificationType:         notificationModel.TypeTeamInvite,
		NotificationTitle:        "Team invitation",
		NotificationMessage:      fmt.Sprintf("You have been invited to join team %s", team.TeamName),
		NotificationData:         data,
		NotificationTeamID:       &teamID,
		NotificationInviteStatus: &inviteStatus,
	}
	if err := ctrl.DB.Create(&invite).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create invite")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Invite sent", invite)
}

// POST /api/invites/:id/accept
//
// The invitee consumes the notification: membership is re-checked so a
// double accept (already on a team by then) is rejected.
func (ctrl *TeamController) AcceptInvite(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	inviteID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid invite id")
	}

	var member teamModel.TeamMemberModel
	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		invite, team, err := ctrl.loadPendingInvite(tx, inviteID, userID)
		if err != nil {
			return err
		}

		var section sectionModel.SectionModel
		if err := tx.Where("section_id = ?", team.TeamSectionID).First(&section).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to look up section")
		}

		inTeam, err := ctrl.userInSectionTeam(tx, team.TeamSectionID, userID)
		if err != nil {
			return err
		}
		if inTeam {
			return fiber.NewError(fiber.StatusConflict, "You already belong to a team in this section")
		}

		var memberCount int64
		if err := tx.Model(&teamModel.TeamMemberModel{}).
			Where("team_member_team_id = ?", team.TeamID).Count(&memberCount).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to count members")
		}
		if int(memberCount) >= section.SectionMaxTeamSize {
			return fiber.NewError(fiber.StatusConflict, "Team is already full")
		}

		member = teamModel.TeamMemberModel{
			TeamMemberID:     uuid.New(),
			TeamMemberTeamID: team.TeamID,
			TeamMemberUserID: userID,
		}
		if err := tx.Create(&member).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to join team")
		}

		return tx.Model(invite).Updates(map[string]interface{}{
			"notification_invite_status": notificationModel.InviteStatusAccepted,
			"notification_is_read":       true,
		}).Error
	})
	if err != nil {
		return err
	}

	return helper.Success(c, "Invite accepted", member)
}

// POST /api/invites/:id/reject
func (ctrl *TeamController) RejectInvite(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	inviteID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid invite id")
	}

	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		invite, _, err := ctrl.loadPendingInvite(tx, inviteID, userID)
		if err != nil {
			return err
		}
		return tx.Model(invite).Updates(map[string]interface{}{
			"notification_invite_status": notificationModel.InviteStatusRejected,
			"notification_is_read":       true,
		}).Error
	})
	if err != nil {
		return err
	}

	return helper.Success(c, "Invite rejected", nil)
}

// loadPendingInvite fetches a TEAM_INVITE notification still pending and
// addressed to the caller, along with its team.
func (ctrl *TeamController) loadPendingInvite(tx *gorm.DB, inviteID, userID uuid.UUID) (*notificationModel.NotificationModel, *teamModel.TeamModel, error) {
	var invite notificationModel.NotificationModel
	err := tx.Where("notification_id = ? AND notification_type = ?", inviteID, notificationModel.TypeTeamInvite).
		First(&invite).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fiber.NewError(fiber.StatusNotFound, "Invite not found")
		}
		return nil, nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to look up invite")
	}
	if invite.NotificationUserID != userID {
		return nil, nil, fiber.NewError(fiber.StatusForbidden, "This invite is not addressed to you")
	}
	if invite.NotificationInviteStatus == nil || *invite.NotificationInviteStatus != notificationModel.InviteStatusPending {
		return nil, nil, fiber.NewError(fiber.StatusConflict, "Invite is no longer pending")
	}
	if invite.NotificationTeamID == nil {
		return nil, nil, fiber.NewError(fiber.StatusInternalServerError, "Invite has no team reference")
	}

	var team teamModel.TeamModel
	if err := tx.Where("team_id = ?", *invite.NotificationTeamID).First(&team).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fiber.NewError(fiber.StatusNotFound, "Team no longer exists")
		}
		return nil, nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to look up team")
	}
	return &invite, &team, nil
}
