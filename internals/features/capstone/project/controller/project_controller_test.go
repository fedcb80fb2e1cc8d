package controller_test

import (
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"capstonehub_backend/internals/constants"
	sectionModel "capstonehub_backend/internals/features/academics/section/model"
	termModel "capstonehub_backend/internals/features/academics/term/model"
	projectModel "capstonehub_backend/internals/features/capstone/project/model"
	projectRoute "capstonehub_backend/internals/features/capstone/project/route"
	teamModel "capstonehub_backend/internals/features/capstone/team/model"
	userModel "capstonehub_backend/internals/features/users/user/model"
	"capstonehub_backend/internals/testutil"
)

type projectEnv struct {
	db      *gorm.DB
	app     *fiber.App
	section *sectionModel.SectionModel
}

func newProjectEnv(t *testing.T) *projectEnv {
	t.Helper()

	db := testutil.OpenDB(t)
	app := testutil.NewApp()
	api := app.Group("/api")
	projectRoute.ProjectRoutes(api, db)
	projectRoute.AdminProjectRoutes(api.Group("/admin"), db)

	term := &termModel.TermModel{
		TermID:           uuid.New(),
		TermAcademicYear: "2025/2026",
		TermSemester:     1,
		TermStartDate:    time.Now().AddDate(0, -1, 0),
		TermEndDate:      time.Now().AddDate(0, 5, 0),
	}
	require.NoError(t, db.Create(term).Error)

	section := &sectionModel.SectionModel{
		SectionID:          uuid.New(),
		SectionTermID:      term.TermID,
		SectionCode:        "CAP-D",
		SectionName:        "Capstone D",
		SectionCourseType:  sectionModel.CourseTypeProject,
		SectionMinTeamSize: 1,
		SectionMaxTeamSize: 3,
	}
	require.NoError(t, db.Create(section).Error)

	return &projectEnv{db: db, app: app, section: section}
}

// newTeam seeds a team with one student member and returns both.
func (e *projectEnv) newTeam(t *testing.T, groupNumber int) (*teamModel.TeamModel, *userModel.UserModel) {
	t.Helper()

	student := testutil.SeedUser(t, e.db, constants.RoleStudent, "member")
	team := &teamModel.TeamModel{
		TeamID:          uuid.New(),
		TeamSectionID:   e.section.SectionID,
		TeamGroupNumber: groupNumber,
		TeamName:        "Team",
	}
	require.NoError(t, e.db.Create(team).Error)
	require.NoError(t, e.db.Create(&teamModel.TeamMemberModel{
		TeamMemberID:       uuid.New(),
		TeamMemberTeamID:   team.TeamID,
		TeamMemberUserID:   student.ID,
		TeamMemberIsLeader: true,
	}).Error)
	return team, student
}

func TestCreateProjectOnePerTeam(t *testing.T) {
	env := newProjectEnv(t)
	team, student := env.newTeam(t, 1)
	principal := &testutil.Principal{ID: student.ID, Role: constants.RoleStudent}

	resp, _ := testutil.DoJSON(t, env.app, fiber.MethodPost, "/api/projects", principal,
		fiber.Map{"team_id": team.TeamID, "title": "Smart Attendance", "abstract": "CV based"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, _ = testutil.DoJSON(t, env.app, fiber.MethodPost, "/api/projects", principal,
		fiber.Map{"team_id": team.TeamID, "title": "Second Idea"})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestUpdateProjectLockedAfterApproval(t *testing.T) {
	env := newProjectEnv(t)
	team, student := env.newTeam(t, 1)
	principal := &testutil.Principal{ID: student.ID, Role: constants.RoleStudent}

	project := projectModel.ProjectModel{
		ProjectID:     uuid.New(),
		ProjectTeamID: team.TeamID,
		ProjectTitle:  "Locked In",
		ProjectStatus: projectModel.ProjectStatusApproved,
	}
	require.NoError(t, env.db.Create(&project).Error)

	resp, _ := testutil.DoJSON(t, env.app, fiber.MethodPut,
		"/api/projects/"+project.ProjectID.String(), principal,
		fiber.Map{"title": "Renamed"})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestAssignAdvisorCapacity(t *testing.T) {
	env := newProjectEnv(t)
	advisor := testutil.SeedUser(t, env.db, constants.RoleAdvisor, "busy")
	admin := testutil.SeedUser(t, env.db, constants.RoleAdmin, "admin")
	adminPrincipal := &testutil.Principal{ID: admin.ID, Role: constants.RoleAdmin}

	projects := make([]projectModel.ProjectModel, 0, 3)
	for i := 1; i <= 3; i++ {
		team, _ := env.newTeam(t, i)
		p := projectModel.ProjectModel{
			ProjectID:     uuid.New(),
			ProjectTeamID: team.TeamID,
			ProjectTitle:  "Project",
			ProjectStatus: projectModel.ProjectStatusPending,
		}
		require.NoError(t, env.db.Create(&p).Error)
		projects = append(projects, p)
	}

	for i := 0; i < projectModel.AdvisorCapacity; i++ {
		resp, _ := testutil.DoJSON(t, env.app, fiber.MethodPost,
			"/api/admin/projects/"+projects[i].ProjectID.String()+"/advisors",
			adminPrincipal, fiber.Map{"advisor_id": advisor.ID})
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	}

	// third assignment exceeds capacity
	resp, _ := testutil.DoJSON(t, env.app, fiber.MethodPost,
		"/api/admin/projects/"+projects[2].ProjectID.String()+"/advisors",
		adminPrincipal, fiber.Map{"advisor_id": advisor.ID})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	// listing flags the advisor as at capacity
	resp, body := testutil.DoJSON(t, env.app, fiber.MethodGet, "/api/advisors",
		adminPrincipal, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	rows := body["data"].([]interface{})
	require.Len(t, rows, 1)
	row := rows[0].(map[string]interface{})
	assert.EqualValues(t, 2, row["load"])
	assert.Equal(t, true, row["at_capacity"])
}

func TestRejectedProjectFreesAdvisorCapacity(t *testing.T) {
	env := newProjectEnv(t)
	advisor := testutil.SeedUser(t, env.db, constants.RoleAdvisor, "freed")
	admin := testutil.SeedUser(t, env.db, constants.RoleAdmin, "admin")
	adminPrincipal := &testutil.Principal{ID: admin.ID, Role: constants.RoleAdmin}

	statuses := []string{
		projectModel.ProjectStatusRejected,
		projectModel.ProjectStatusRejected,
	}
	for i, status := range statuses {
		team, _ := env.newTeam(t, i+1)
		p := projectModel.ProjectModel{
			ProjectID:     uuid.New(),
			ProjectTeamID: team.TeamID,
			ProjectTitle:  "Rejected",
			ProjectStatus: status,
		}
		require.NoError(t, env.db.Create(&p).Error)
		require.NoError(t, env.db.Create(&projectModel.ProjectAdvisorModel{
			ProjectAdvisorID:        uuid.New(),
			ProjectAdvisorProjectID: p.ProjectID,
			ProjectAdvisorUserID:    advisor.ID,
		}).Error)
	}

	team, _ := env.newTeam(t, 3)
	fresh := projectModel.ProjectModel{
		ProjectID:     uuid.New(),
		ProjectTeamID: team.TeamID,
		ProjectTitle:  "Fresh",
		ProjectStatus: projectModel.ProjectStatusPending,
	}
	require.NoError(t, env.db.Create(&fresh).Error)

	// rejected projects don't count against the capacity of 2
	resp, _ := testutil.DoJSON(t, env.app, fiber.MethodPost,
		"/api/admin/projects/"+fresh.ProjectID.String()+"/advisors",
		adminPrincipal, fiber.Map{"advisor_id": advisor.ID})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
}
