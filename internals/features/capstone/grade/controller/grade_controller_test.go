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
	gradeModel "capstonehub_backend/internals/features/capstone/grade/model"
	gradeRoute "capstonehub_backend/internals/features/capstone/grade/route"
	projectModel "capstonehub_backend/internals/features/capstone/project/model"
	teamModel "capstonehub_backend/internals/features/capstone/team/model"
	userModel "capstonehub_backend/internals/features/users/user/model"
	"capstonehub_backend/internals/testutil"
)

type gradeEnv struct {
	db       *gorm.DB
	app      *fiber.App
	term     *termModel.TermModel
	section  *sectionModel.SectionModel
	project  *projectModel.ProjectModel
	admin    *userModel.UserModel
	students []*userModel.UserModel
}

func newGradeEnv(t *testing.T, studentCount int) *gradeEnv {
	t.Helper()

	db := testutil.OpenDB(t)
	app := testutil.NewApp()
	api := app.Group("/api")
	gradeRoute.GradeRoutes(api, db)
	gradeRoute.AdminGradeRoutes(api.Group("/admin"), db)

	term := &termModel.TermModel{
		TermID:           uuid.New(),
		TermAcademicYear: "2025/2026",
		TermSemester:     2,
		TermStartDate:    time.Now().AddDate(0, -1, 0),
		TermEndDate:      time.Now().AddDate(0, 5, 0),
	}
	require.NoError(t, db.Create(term).Error)

	section := &sectionModel.SectionModel{
		SectionID:          uuid.New(),
		SectionTermID:      term.TermID,
		SectionCode:        "CAP-C",
		SectionName:        "Capstone C",
		SectionCourseType:  sectionModel.CourseTypeProject,
		SectionMinTeamSize: 1,
		SectionMaxTeamSize: 5,
	}
	require.NoError(t, db.Create(section).Error)

	team := &teamModel.TeamModel{
		TeamID:          uuid.New(),
		TeamSectionID:   section.SectionID,
		TeamGroupNumber: 1,
		TeamName:        "Graded",
	}
	require.NoError(t, db.Create(team).Error)

	project := &projectModel.ProjectModel{
		ProjectID:     uuid.New(),
		ProjectTeamID: team.TeamID,
		ProjectTitle:  "Graded Project",
		ProjectStatus: projectModel.ProjectStatusApproved,
	}
	require.NoError(t, db.Create(project).Error)

	admin := testutil.SeedUser(t, db, constants.RoleAdmin, "grader")
	students := make([]*userModel.UserModel, 0, studentCount)
	for i := 0; i < studentCount; i++ {
		u := testutil.SeedUser(t, db, constants.RoleStudent, "student")
		require.NoError(t, db.Create(&teamModel.TeamMemberModel{
			TeamMemberID:     uuid.New(),
			TeamMemberTeamID: team.TeamID,
			TeamMemberUserID: u.ID,
		}).Error)
		students = append(students, u)
	}

	return &gradeEnv{
		db: db, app: app, term: term, section: section,
		project: project, admin: admin, students: students,
	}
}

func (e *gradeEnv) asAdmin() *testutil.Principal {
	return &testutil.Principal{ID: e.admin.ID, Role: constants.RoleAdmin}
}

func (e *gradeEnv) batch(items []fiber.Map) fiber.Map {
	return fiber.Map{"section_id": e.section.SectionID, "grades": items}
}

func TestBatchUpsertSkipsInvalidScore(t *testing.T) {
	env := newGradeEnv(t, 5)

	items := make([]fiber.Map, 0, 5)
	scores := []string{"A", "B+", "C", "D", "X"}
	for i, s := range scores {
		items = append(items, fiber.Map{
			"student_id": env.students[i].ID,
			"project_id": env.project.ProjectID,
			"score":      s,
		})
	}

	resp, body := testutil.DoJSON(t, env.app, fiber.MethodPost,
		"/api/admin/grades/batch", env.asAdmin(), env.batch(items))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	data := body["data"].(map[string]interface{})
	assert.Len(t, data["applied"], 4)
	skipped := data["skipped"].([]interface{})
	require.Len(t, skipped, 1)
	entry := skipped[0].(map[string]interface{})
	assert.Equal(t, "X", entry["score"])
	assert.Equal(t, "invalid score", entry["reason"])

	var rows int64
	require.NoError(t, env.db.Model(&gradeModel.GradeModel{}).Count(&rows).Error)
	assert.EqualValues(t, 4, rows)
}

func TestBatchUpsertIdempotent(t *testing.T) {
	env := newGradeEnv(t, 2)

	items := []fiber.Map{
		{"student_id": env.students[0].ID, "project_id": env.project.ProjectID, "score": "A"},
		{"student_id": env.students[1].ID, "project_id": env.project.ProjectID, "score": "B"},
	}

	for i := 0; i < 2; i++ {
		resp, _ := testutil.DoJSON(t, env.app, fiber.MethodPost,
			"/api/admin/grades/batch", env.asAdmin(), env.batch(items))
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	var rows int64
	require.NoError(t, env.db.Model(&gradeModel.GradeModel{}).Count(&rows).Error)
	assert.EqualValues(t, 2, rows)
}

func TestBatchUpsertUpdatesScore(t *testing.T) {
	env := newGradeEnv(t, 1)

	resp, _ := testutil.DoJSON(t, env.app, fiber.MethodPost,
		"/api/admin/grades/batch", env.asAdmin(), env.batch([]fiber.Map{
			{"student_id": env.students[0].ID, "project_id": env.project.ProjectID, "score": "C"},
		}))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = testutil.DoJSON(t, env.app, fiber.MethodPost,
		"/api/admin/grades/batch", env.asAdmin(), env.batch([]fiber.Map{
			{"student_id": env.students[0].ID, "project_id": env.project.ProjectID, "score": "A"},
		}))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var grade gradeModel.GradeModel
	require.NoError(t, env.db.
		Where("grade_student_id = ?", env.students[0].ID).
		First(&grade).Error)
	assert.Equal(t, "A", grade.GradeScore)
	assert.Equal(t, env.admin.ID, grade.GradeEvaluatorID)
}

func TestMyGrades(t *testing.T) {
	env := newGradeEnv(t, 1)
	student := env.students[0]

	resp, _ := testutil.DoJSON(t, env.app, fiber.MethodPost,
		"/api/admin/grades/batch", env.asAdmin(), env.batch([]fiber.Map{
			{"student_id": student.ID, "project_id": env.project.ProjectID, "score": "B+"},
		}))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, body := testutil.DoJSON(t, env.app, fiber.MethodGet,
		"/api/grades/my?term_id="+env.term.TermID.String(),
		&testutil.Principal{ID: student.ID, Role: constants.RoleStudent}, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	rows := body["data"].([]interface{})
	require.Len(t, rows, 1)
	assert.Equal(t, "B+", rows[0].(map[string]interface{})["grade_score"])
}
