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
	enrollmentModel "capstonehub_backend/internals/features/academics/enrollment/model"
	sectionModel "capstonehub_backend/internals/features/academics/section/model"
	termModel "capstonehub_backend/internals/features/academics/term/model"
	eventModel "capstonehub_backend/internals/features/capstone/event/model"
	gradeModel "capstonehub_backend/internals/features/capstone/grade/model"
	projectModel "capstonehub_backend/internals/features/capstone/project/model"
	teamModel "capstonehub_backend/internals/features/capstone/team/model"
	teamRoute "capstonehub_backend/internals/features/capstone/team/route"
	notificationModel "capstonehub_backend/internals/features/collab/notification/model"
	taskModel "capstonehub_backend/internals/features/collab/task/model"
	userModel "capstonehub_backend/internals/features/users/user/model"
	authMiddleware "capstonehub_backend/internals/middlewares/auth"
	"capstonehub_backend/internals/testutil"
)

type teamEnv struct {
	db      *gorm.DB
	app     *fiber.App
	term    *termModel.TermModel
	section *sectionModel.SectionModel
}

func newTeamEnv(t *testing.T) *teamEnv {
	t.Helper()

	db := testutil.OpenDB(t)
	app := testutil.NewApp()
	api := app.Group("/api")
	teamRoute.TeamRoutes(api, db)
	teamRoute.AdminTeamRoutes(api.Group("/admin"), db)

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
		SectionCode:        "CAP-A",
		SectionName:        "Capstone A",
		SectionCourseType:  sectionModel.CourseTypeProject,
		SectionMinTeamSize: 1,
		SectionMaxTeamSize: 3,
	}
	require.NoError(t, db.Create(section).Error)

	return &teamEnv{db: db, app: app, term: term, section: section}
}

func (e *teamEnv) enrollStudent(t *testing.T, name string) *userModel.UserModel {
	t.Helper()
	u := testutil.SeedUser(t, e.db, constants.RoleStudent, name)
	require.NoError(t, e.db.Create(&enrollmentModel.EnrollmentModel{
		EnrollmentID:        uuid.New(),
		EnrollmentSectionID: e.section.SectionID,
		EnrollmentUserID:    u.ID,
	}).Error)
	return u
}

func (e *teamEnv) asStudent(u *userModel.UserModel) *testutil.Principal {
	return &testutil.Principal{ID: u.ID, Role: constants.RoleStudent}
}

func TestCreateTeamLockedSection(t *testing.T) {
	env := newTeamEnv(t)
	student := env.enrollStudent(t, "alice")

	require.NoError(t, env.db.Model(env.section).
		Update("section_team_locked", true).Error)

	resp, _ := testutil.DoJSON(t, env.app, fiber.MethodPost, "/api/teams",
		env.asStudent(student),
		fiber.Map{"section_id": env.section.SectionID, "name": "Locked Out"})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	var cnt int64
	require.NoError(t, env.db.Model(&teamModel.TeamModel{}).Count(&cnt).Error)
	assert.Zero(t, cnt)
}

func TestCreateTeamAlreadyInTeam(t *testing.T) {
	env := newTeamEnv(t)
	student := env.enrollStudent(t, "bob")

	resp, _ := testutil.DoJSON(t, env.app, fiber.MethodPost, "/api/teams",
		env.asStudent(student),
		fiber.Map{"section_id": env.section.SectionID, "name": "First"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, _ = testutil.DoJSON(t, env.app, fiber.MethodPost, "/api/teams",
		env.asStudent(student),
		fiber.Map{"section_id": env.section.SectionID, "name": "Second"})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestCreateTeamGroupNumbersIncrement(t *testing.T) {
	env := newTeamEnv(t)
	first := env.enrollStudent(t, "first")
	second := env.enrollStudent(t, "second")

	resp, _ := testutil.DoJSON(t, env.app, fiber.MethodPost, "/api/teams",
		env.asStudent(first),
		fiber.Map{"section_id": env.section.SectionID, "name": "One"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, _ = testutil.DoJSON(t, env.app, fiber.MethodPost, "/api/teams",
		env.asStudent(second),
		fiber.Map{"section_id": env.section.SectionID, "name": "Two"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var teams []teamModel.TeamModel
	require.NoError(t, env.db.Order("team_group_number ASC").Find(&teams).Error)
	require.Len(t, teams, 2)
	assert.Equal(t, 1, teams[0].TeamGroupNumber)
	assert.Equal(t, 2, teams[1].TeamGroupNumber)
}

func TestInviteAcceptFlow(t *testing.T) {
	env := newTeamEnv(t)
	leader := env.enrollStudent(t, "leader")
	invitee := env.enrollStudent(t, "invitee")

	resp, body := testutil.DoJSON(t, env.app, fiber.MethodPost, "/api/teams",
		env.asStudent(leader),
		fiber.Map{"section_id": env.section.SectionID, "name": "Inviters"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	teamID := body["data"].(map[string]interface{})["team_id"].(string)

	resp, body = testutil.DoJSON(t, env.app, fiber.MethodPost, "/api/teams/"+teamID+"/invites",
		env.asStudent(leader),
		fiber.Map{"student_id": invitee.ID})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	inviteID := body["data"].(map[string]interface{})["notification_id"].(string)

	resp, _ = testutil.DoJSON(t, env.app, fiber.MethodPost, "/api/invites/"+inviteID+"/accept",
		env.asStudent(invitee), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var members int64
	require.NoError(t, env.db.Model(&teamModel.TeamMemberModel{}).
		Where("team_member_team_id = ?", teamID).Count(&members).Error)
	assert.EqualValues(t, 2, members)

	var invite notificationModel.NotificationModel
	require.NoError(t, env.db.Where("notification_id = ?", inviteID).First(&invite).Error)
	require.NotNil(t, invite.NotificationInviteStatus)
	assert.Equal(t, notificationModel.InviteStatusAccepted, *invite.NotificationInviteStatus)
	assert.True(t, invite.NotificationIsRead)
}

func TestAcceptInviteWhileAlreadyTeamed(t *testing.T) {
	env := newTeamEnv(t)
	leaderA := env.enrollStudent(t, "leader-a")
	leaderB := env.enrollStudent(t, "leader-b")
	invitee := env.enrollStudent(t, "popular")

	resp, body := testutil.DoJSON(t, env.app, fiber.MethodPost, "/api/teams",
		env.asStudent(leaderA),
		fiber.Map{"section_id": env.section.SectionID, "name": "Alpha"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	teamA := body["data"].(map[string]interface{})["team_id"].(string)

	resp, body = testutil.DoJSON(t, env.app, fiber.MethodPost, "/api/teams",
		env.asStudent(leaderB),
		fiber.Map{"section_id": env.section.SectionID, "name": "Beta"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	teamB := body["data"].(map[string]interface{})["team_id"].(string)

	resp, body = testutil.DoJSON(t, env.app, fiber.MethodPost, "/api/teams/"+teamA+"/invites",
		env.asStudent(leaderA), fiber.Map{"student_id": invitee.ID})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	inviteA := body["data"].(map[string]interface{})["notification_id"].(string)

	resp, body = testutil.DoJSON(t, env.app, fiber.MethodPost, "/api/teams/"+teamB+"/invites",
		env.asStudent(leaderB), fiber.Map{"student_id": invitee.ID})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	inviteB := body["data"].(map[string]interface{})["notification_id"].(string)

	resp, _ = testutil.DoJSON(t, env.app, fiber.MethodPost, "/api/invites/"+inviteA+"/accept",
		env.asStudent(invitee), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// second accept: the invitee already joined a team in this section
	resp, _ = testutil.DoJSON(t, env.app, fiber.MethodPost, "/api/invites/"+inviteB+"/accept",
		env.asStudent(invitee), nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	var members int64
	require.NoError(t, env.db.Model(&teamModel.TeamMemberModel{}).
		Where("team_member_user_id = ?", invitee.ID).Count(&members).Error)
	assert.EqualValues(t, 1, members)
}

func TestRejectInvite(t *testing.T) {
	env := newTeamEnv(t)
	leader := env.enrollStudent(t, "leader")
	invitee := env.enrollStudent(t, "decliner")

	resp, body := testutil.DoJSON(t, env.app, fiber.MethodPost, "/api/teams",
		env.asStudent(leader),
		fiber.Map{"section_id": env.section.SectionID, "name": "Rejected"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	teamID := body["data"].(map[string]interface{})["team_id"].(string)

	resp, body = testutil.DoJSON(t, env.app, fiber.MethodPost, "/api/teams/"+teamID+"/invites",
		env.asStudent(leader), fiber.Map{"student_id": invitee.ID})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	inviteID := body["data"].(map[string]interface{})["notification_id"].(string)

	resp, _ = testutil.DoJSON(t, env.app, fiber.MethodPost, "/api/invites/"+inviteID+"/reject",
		env.asStudent(invitee), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var members int64
	require.NoError(t, env.db.Model(&teamModel.TeamMemberModel{}).
		Where("team_member_team_id = ?", teamID).Count(&members).Error)
	assert.EqualValues(t, 1, members)

	var invite notificationModel.NotificationModel
	require.NoError(t, env.db.Where("notification_id = ?", inviteID).First(&invite).Error)
	require.NotNil(t, invite.NotificationInviteStatus)
	assert.Equal(t, notificationModel.InviteStatusRejected, *invite.NotificationInviteStatus)
}

func TestAdminDeleteTeamCascades(t *testing.T) {
	env := newTeamEnv(t)
	leader := env.enrollStudent(t, "leader")
	advisor := testutil.SeedUser(t, env.db, constants.RoleAdvisor, "advisor")
	admin := testutil.SeedUser(t, env.db, constants.RoleAdmin, "admin")

	resp, body := testutil.DoJSON(t, env.app, fiber.MethodPost, "/api/teams",
		env.asStudent(leader),
		fiber.Map{"section_id": env.section.SectionID, "name": "Doomed"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	teamID := uuid.MustParse(body["data"].(map[string]interface{})["team_id"].(string))

	// seed the full dependency chain under the team
	project := projectModel.ProjectModel{
		ProjectID:     uuid.New(),
		ProjectTeamID: teamID,
		ProjectTitle:  "Doomed Project",
		ProjectStatus: projectModel.ProjectStatusApproved,
	}
	require.NoError(t, env.db.Create(&project).Error)
	require.NoError(t, env.db.Create(&projectModel.ProjectAdvisorModel{
		ProjectAdvisorID:        uuid.New(),
		ProjectAdvisorProjectID: project.ProjectID,
		ProjectAdvisorUserID:    advisor.ID,
	}).Error)
	require.NoError(t, env.db.Create(&gradeModel.GradeModel{
		GradeID:          uuid.New(),
		GradeStudentID:   leader.ID,
		GradeProjectID:   project.ProjectID,
		GradeTermID:      env.term.TermID,
		GradeScore:       "A",
		GradeEvaluatorID: admin.ID,
	}).Error)

	event := eventModel.EventModel{
		EventID:        uuid.New(),
		EventSectionID: env.section.SectionID,
		EventTitle:     "Milestone 1",
		EventDueDate:   time.Now().AddDate(0, 0, 7),
	}
	require.NoError(t, env.db.Create(&event).Error)
	require.NoError(t, env.db.Create(&eventModel.SubmissionModel{
		SubmissionID:      uuid.New(),
		SubmissionTeamID:  teamID,
		SubmissionEventID: event.EventID,
		SubmissionStatus:  eventModel.SubmissionStatusSubmitted,
	}).Error)

	task := taskModel.TaskModel{
		TaskID:        uuid.New(),
		TaskTeamID:    teamID,
		TaskTitle:     "Write report",
		TaskStatus:    taskModel.TaskStatusTodo,
		TaskCreatedBy: leader.ID,
	}
	require.NoError(t, env.db.Create(&task).Error)
	require.NoError(t, env.db.Create(&taskModel.TaskAssignmentModel{
		TaskAssignmentID:     uuid.New(),
		TaskAssignmentTaskID: task.TaskID,
		TaskAssignmentUserID: leader.ID,
	}).Error)
	require.NoError(t, env.db.Create(&taskModel.TaskCommentModel{
		TaskCommentID:     uuid.New(),
		TaskCommentTaskID: task.TaskID,
		TaskCommentUserID: leader.ID,
		TaskCommentText:   "on it",
	}).Error)
	require.NoError(t, env.db.Create(&taskModel.TaskAttachmentModel{
		TaskAttachmentID:     uuid.New(),
		TaskAttachmentTaskID: task.TaskID,
		TaskAttachmentName:   "draft",
		TaskAttachmentLink:   "https://example.edu/draft.pdf",
	}).Error)

	resp, _ = testutil.DoJSON(t, env.app, fiber.MethodDelete, "/api/admin/teams/"+teamID.String(),
		&testutil.Principal{ID: admin.ID, Role: constants.RoleAdmin}, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	counts := map[string]interface{}{
		"teams":            &teamModel.TeamModel{},
		"team_members":     &teamModel.TeamMemberModel{},
		"projects":         &projectModel.ProjectModel{},
		"project_advisors": &projectModel.ProjectAdvisorModel{},
		"grades":           &gradeModel.GradeModel{},
		"submissions":      &eventModel.SubmissionModel{},
		"tasks":            &taskModel.TaskModel{},
		"task_assignments": &taskModel.TaskAssignmentModel{},
		"task_comments":    &taskModel.TaskCommentModel{},
		"task_attachments": &taskModel.TaskAttachmentModel{},
	}
	for table, model := range counts {
		var cnt int64
		require.NoError(t, env.db.Model(model).Count(&cnt).Error)
		assert.Zerof(t, cnt, "orphan rows left in %s", table)
	}

	var teamNotifications int64
	require.NoError(t, env.db.Model(&notificationModel.NotificationModel{}).
		Where("notification_team_id = ?", teamID).Count(&teamNotifications).Error)
	assert.Zero(t, teamNotifications)
}

func TestAdminRoutesRejectStudentsWithEnvelope(t *testing.T) {
	db := testutil.OpenDB(t)
	app := testutil.NewApp()
	api := app.Group("/api")
	admin := api.Group("/admin",
		authMiddleware.OnlyRoles("Admin access required", constants.RoleAdmin))
	teamRoute.AdminTeamRoutes(admin, db)

	student := testutil.SeedUser(t, db, constants.RoleStudent, "student")
	resp, body := testutil.DoJSON(t, app, fiber.MethodDelete,
		"/api/admin/teams/"+uuid.NewString(),
		&testutil.Principal{ID: student.ID, Role: constants.RoleStudent}, nil)

	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON)
	assert.EqualValues(t, fiber.StatusForbidden, body["code"])
	assert.Equal(t, "error", body["status"])
	assert.Equal(t, "Admin access required", body["message"])
}
