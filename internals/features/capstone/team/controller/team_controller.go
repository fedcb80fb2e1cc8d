package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	enrollmentModel "capstonehub_backend/internals/features/academics/enrollment/model"
	sectionModel "capstonehub_backend/internals/features/academics/section/model"
	teamDTO "capstonehub_backend/internals/features/capstone/team/dto"
	teamModel "capstonehub_backend/internals/features/capstone/team/model"
	helper "capstonehub_backend/internals/helpers"
	helperAuth "capstonehub_backend/internals/helpers/auth"
)

type TeamController struct {
	DB *gorm.DB
}

func NewTeamController(db *gorm.DB) *TeamController {
	return &TeamController{DB: db}
}

var validate = validator.New()

// POST /api/teams
//
// A student creates a team in a section: forbidden while the section is
// team-locked, conflict when the student already belongs to a team there.
// The creator becomes leader; group number is max+1 within the section.
func (ctrl *TeamController) CreateTeam(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req teamDTO.CreateTeamRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	req.Name = strings.TrimSpace(req.Name)
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
	if section.SectionTeamLocked {
		return fiber.NewError(fiber.StatusForbidden, "Team formation is locked for this section")
	}

	var enrolled int64
	if err := ctrl.DB.Model(&enrollmentModel.EnrollmentModel{}).
		Where("enrollment_section_id = ? AND enrollment_user_id = ?", section.SectionID, userID).
		Count(&enrolled).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to check enrollment")
	}
	if enrolled == 0 {
		return fiber.NewError(fiber.StatusForbidden, "You are not enrolled in this section")
	}

	inTeam, err := ctrl.userInSectionTeam(ctrl.DB, section.SectionID, userID)
	if err != nil {
		return err
	}
	if inTeam {
		return fiber.NewError(fiber.StatusConflict, "You already belong to a team in this section")
	}

	var team teamModel.TeamModel
	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		var maxGroup int
		row := tx.Model(&teamModel.TeamModel{}).
			Where("team_section_id = ?", section.SectionID).
			Select("COALESCE(MAX(team_group_number), 0)")
		if err := row.Scan(&maxGroup).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to assign group number")
		}

		team = teamModel.TeamModel{
			TeamID:          uuid.New(),
			TeamSectionID:   section.SectionID,
			TeamGroupNumber: maxGroup + 1,
			TeamName:        req.Name,
		}
		if err := tx.Create(&team).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create team")
		}

		member := teamModel.TeamMemberModel{
			TeamMemberID:       uuid.New(),
			TeamMemberTeamID:   team.TeamID,
			TeamMemberUserID:   userID,
			TeamMemberIsLeader: true,
		}
		if err := tx.Create(&member).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to add creator to team")
		}
		return nil
	})
	if err != nil {
		return err
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Team created", team)
}

// GET /api/teams/my?section_id=
func (ctrl *TeamController) MyTeam(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	sectionID, err := uuid.Parse(strings.TrimSpace(c.Query("section_id")))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid section id")
	}

	var team teamModel.TeamModel
	err = ctrl.DB.
		Joins("JOIN team_members ON team_members.team_member_team_id = teams.team_id").
		Where("teams.team_section_id = ? AND team_members.team_member_user_id = ?", sectionID, userID).
		First(&team).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "You have no team in this section")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to look up team")
	}

	members, err := ctrl.loadMembers(team.TeamID)
	if err != nil {
		return err
	}
	return helper.Success(c, "OK", teamDTO.TeamResponse{Team: team, Members: members})
}

// GET /api/teams/:id
func (ctrl *TeamController) GetTeam(c *fiber.Ctx) error {
	teamID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid team id")
	}

	var team teamModel.TeamModel
	if err := ctrl.DB.Where("team_id = ?", teamID).First(&team).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Team not found")
	}

	members, err := ctrl.loadMembers(team.TeamID)
	if err != nil {
		return err
	}
	return helper.Success(c, "OK", teamDTO.TeamResponse{Team: team, Members: members})
}

// DELETE /api/teams/:id/members/me
//
// Leaving is blocked once the team's project has been approved.
func (ctrl *TeamController) LeaveTeam(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	teamID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid team id")
	}

	var approved int64
	if err := ctrl.DB.Table("projects").
		Where("project_team_id = ? AND project_status = ?", teamID, "APPROVED").
		Count(&approved).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to check project status")
	}
	if approved > 0 {
		return fiber.NewError(fiber.StatusForbidden, "Cannot leave a team with an approved project")
	}

	res := ctrl.DB.
		Where("team_member_team_id = ? AND team_member_user_id = ?", teamID, userID).
		Delete(&teamModel.TeamMemberModel{})
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to leave team")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "You are not a member of this team")
	}
	return helper.Success(c, "Left team", nil)
}

// GET /api/admin/teams?section_id=
func (ctrl *TeamController) ListTeams(c *fiber.Ctx) error {
	q := ctrl.DB.Model(&teamModel.TeamModel{})
	if sectionID := strings.TrimSpace(c.Query("section_id")); sectionID != "" {
		id, err := uuid.Parse(sectionID)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid section id")
		}
		q = q.Where("team_section_id = ?", id)
	}

	var teams []teamModel.TeamModel
	if err := q.Order("team_group_number ASC").Find(&teams).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to list teams")
	}
	return helper.Success(c, "OK", teams)
}

/* ===============================
   shared helpers
=================================*/

func (ctrl *TeamController) loadMembers(teamID uuid.UUID) ([]teamDTO.TeamMemberResponse, error) {
	var members []teamDTO.TeamMemberResponse
	err := ctrl.DB.Table("team_members").
		Select(`team_members.team_member_id, users.id AS user_id, users.user_name, users.full_name,
			users.email, users.student_number, team_members.team_member_is_leader AS is_leader,
			team_members.team_member_joined_at AS joined_at`).
		Joins("JOIN users ON users.id = team_members.team_member_user_id").
		Where("team_members.team_member_team_id = ?", teamID).
		Order("team_members.team_member_joined_at ASC").
		Scan(&members).Error
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load team members")
	}
	return members, nil
}

// userInSectionTeam reports whether the user already belongs to any team in
// the section.
func (ctrl *TeamController) userInSectionTeam(db *gorm.DB, sectionID, userID uuid.UUID) (bool, error) {
	var cnt int64
	err := db.Table("team_members").
		Joins("JOIN teams ON teams.team_id = team_members.team_member_team_id").
		Where("teams.team_section_id = ? AND team_members.team_member_user_id = ?", sectionID, userID).
		Count(&cnt).Error
	if err != nil {
		return false, fiber.NewError(fiber.StatusInternalServerError, "Failed to check team membership")
	}
	return cnt > 0, nil
}

// isTeamMember reports whether the user belongs to the given team.
func (ctrl *TeamController) isTeamMember(teamID, userID uuid.UUID) (bool, error) {
	var cnt int64
	err := ctrl.DB.Model(&teamModel.TeamMemberModel{}).
		Where("team_member_team_id = ? AND team_member_user_id = ?", teamID, userID).
		Count(&cnt).Error
	if err != nil {
		return false, fiber.NewError(fiber.StatusInternalServerError, "Failed to check team membership")
	}
	return cnt > 0, nil
}
