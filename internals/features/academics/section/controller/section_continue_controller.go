package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	enrollmentModel "capstonehub_backend/internals/features/academics/enrollment/model"
	sectionDTO "capstonehub_backend/internals/features/academics/section/dto"
	sectionModel "capstonehub_backend/internals/features/academics/section/model"
	termModel "capstonehub_backend/internals/features/academics/term/model"
	projectModel "capstonehub_backend/internals/features/capstone/project/model"
	teamModel "capstonehub_backend/internals/features/capstone/team/model"
	helper "capstonehub_backend/internals/helpers"
)

// POST /api/admin/sections/:id/continue-to-project
//
// Migrates a PRE_PROJECT section's teams and projects into a brand new
// PROJECT section under the target term. Project status is carried over
// as-is: an already approved proposal stays approved.
func (ctrl *SectionController) ContinueToProject(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid section id")
	}

	var req sectionDTO.ContinueToProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	req.Code = strings.TrimSpace(req.Code)
	req.Name = strings.TrimSpace(req.Name)
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var source sectionModel.SectionModel
	if err := ctrl.DB.Where("section_id = ?", id).First(&source).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Section not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to look up section")
	}
	if source.SectionCourseType != sectionModel.CourseTypePreProject {
		return fiber.NewError(fiber.StatusConflict, "Only PRE_PROJECT sections can be continued")
	}

	var targetTerm termModel.TermModel
	if err := ctrl.DB.Where("term_id = ?", req.TargetTermID).First(&targetTerm).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Target term not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to look up target term")
	}

	newSection := sectionModel.SectionModel{
		SectionID:          uuid.New(),
		SectionTermID:      targetTerm.TermID,
		SectionCode:        req.Code,
		SectionName:        req.Name,
		SectionCourseType:  sectionModel.CourseTypeProject,
		SectionMinTeamSize: source.SectionMinTeamSize,
		SectionMaxTeamSize: source.SectionMaxTeamSize,
	}

	migratedTeams := 0
	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&newSection).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create new section")
		}

		var teams []teamModel.TeamModel
		if err := tx.Where("team_section_id = ?", source.SectionID).
			Order("team_group_number ASC").Find(&teams).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load source teams")
		}

		for i := range teams {
			oldTeam := teams[i]

			newTeam := teamModel.TeamModel{
				TeamID:          uuid.New(),
				TeamSectionID:   newSection.SectionID,
				TeamGroupNumber: oldTeam.TeamGroupNumber,
				TeamName:        oldTeam.TeamName,
			}
			if err := tx.Create(&newTeam).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Failed to migrate team")
			}

			// carry members and enroll them into the new section
			var members []teamModel.TeamMemberModel
			if err := tx.Where("team_member_team_id = ?", oldTeam.TeamID).Find(&members).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Failed to load team members")
			}
			for j := range members {
				newMember := teamModel.TeamMemberModel{
					TeamMemberID:       uuid.New(),
					TeamMemberTeamID:   newTeam.TeamID,
					TeamMemberUserID:   members[j].TeamMemberUserID,
					TeamMemberIsLeader: members[j].TeamMemberIsLeader,
				}
				if err := tx.Create(&newMember).Error; err != nil {
					return fiber.NewError(fiber.StatusInternalServerError, "Failed to migrate team member")
				}

				enrollment := enrollmentModel.EnrollmentModel{
					EnrollmentID:        uuid.New(),
					EnrollmentSectionID: newSection.SectionID,
					EnrollmentUserID:    members[j].TeamMemberUserID,
				}
				if err := tx.Create(&enrollment).Error; err != nil {
					return fiber.NewError(fiber.StatusInternalServerError, "Failed to migrate enrollment")
				}
			}

			// carry the project with its status and advisors intact
			var project projectModel.ProjectModel
			err := tx.Where("project_team_id = ?", oldTeam.TeamID).First(&project).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				migratedTeams++
				continue
			}
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Failed to load team project")
			}

			newProject := projectModel.ProjectModel{
				ProjectID:       uuid.New(),
				ProjectTeamID:   newTeam.TeamID,
				ProjectTitle:    project.ProjectTitle,
				ProjectAbstract: project.ProjectAbstract,
				ProjectStatus:   project.ProjectStatus, // not reset
			}
			if err := tx.Create(&newProject).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Failed to migrate project")
			}

			var advisors []projectModel.ProjectAdvisorModel
			if err := tx.Where("project_advisor_project_id = ?", project.ProjectID).Find(&advisors).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Failed to load project advisors")
			}
			for j := range advisors {
				newAdvisor := projectModel.ProjectAdvisorModel{
					ProjectAdvisorID:        uuid.New(),
					ProjectAdvisorProjectID: newProject.ProjectID,
					ProjectAdvisorUserID:    advisors[j].ProjectAdvisorUserID,
				}
				if err := tx.Create(&newAdvisor).Error; err != nil {
					return fiber.NewError(fiber.StatusInternalServerError, "Failed to migrate project advisor")
				}
			}
			migratedTeams++
		}
		return nil
	})
	if err != nil {
		return err
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Section continued to project", fiber.Map{
		"section":        newSection,
		"migrated_teams": migratedTeams,
	})
}
