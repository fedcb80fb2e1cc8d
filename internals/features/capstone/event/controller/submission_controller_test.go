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
	eventRoute "capstonehub_backend/internals/features/capstone/event/route"
	projectModel "capstonehub_backend/internals/features/capstone/project/model"
	teamModel "capstonehub_backend/internals/features/capstone/team/model"
	notificationModel "capstonehub_backend/internals/features/collab/notification/model"
	userModel "capstonehub_backend/internals/features/users/user/model"
	"capstonehub_backend/internals/testutil"
)

type submissionEnv struct {
	db      *gorm.DB
	app     *fiber.App
	section *sectionModel.SectionModel
	team    *teamModel.TeamModel
	student *userModel.UserModel
	advisor *userModel.UserModel
	event   *eventModel.EventModel
}

func newSubmissionEnv(t *testing.T) *submissionEnv {
	t.Helper()

	db := testutil.OpenDB(t)
	app := testutil.NewApp()
	api := app.Group("/api")
	eventRoute.EventRoutes(api, db)
	eventRoute.AdminEventRoutes(api.Group("/admin"), db)

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
		SectionCode:        "CAP-B",
		SectionName:        "Capstone B",
		SectionCourseType:  sectionModel.CourseTypeProject,
		SectionMinTeamSize: 1,
		SectionMaxTeamSize: 3,
	}
	require.NoError(t, db.Create(section).Error)

	student := testutil.SeedUser(t, db, constants.RoleStudent, "student")
	advisor := testutil.SeedUser(t, db, constants.RoleAdvisor, "advisor")
	require.NoError(t, db.Create(&enrollmentModel.EnrollmentModel{
		EnrollmentID:        uuid.New(),
		EnrollmentSectionID: section.SectionID,
		EnrollmentUserID:    student.ID,
	}).Error)

	team := &teamModel.TeamModel{
		TeamID:          uuid.New(),
		TeamSectionID:   section.SectionID,
		TeamGroupNumber: 1,
		TeamName:        "Builders",
	}
	require.NoError(t, db.Create(team).Error)
	require.NoError(t, db.Create(&teamModel.TeamMemberModel{
		TeamMemberID:       uuid.New(),
		TeamMemberTeamID:   team.TeamID,
		TeamMemberUserID:   student.ID,
		TeamMemberIsLeader: true,
	}).Error)

	project := &projectModel.ProjectModel{
		ProjectID:     uuid.New(),
		ProjectTeamID: team.TeamID,
		ProjectTitle:  "Thesis System",
		ProjectStatus: projectModel.ProjectStatusApproved,
	}
	require.NoError(t, db.Create(project).Error)
	require.NoError(t, db.Create(&projectModel.ProjectAdvisorModel{
		ProjectAdvisorID:        uuid.New(),
		ProjectAdvisorProjectID: project.ProjectID,
		ProjectAdvisorUserID:    advisor.ID,
	}).Error)

	event := &eventModel.EventModel{
		EventID:        uuid.New(),
		EventSectionID: section.SectionID,
		EventTitle:     "Proposal Defense",
		EventDueDate:   time.Now().AddDate(0, 0, 7),
		EventWeight:    20,
	}
	require.NoError(t, db.Create(event).Error)

	return &submissionEnv{
		db: db, app: app, section: section, team: team,
		student: student, advisor: advisor, event: event,
	}
}

func (e *submissionEnv) asStudent() *testutil.Principal {
	return &testutil.Principal{ID: e.student.ID, Role: constants.RoleStudent}
}

func (e *submissionEnv) asAdvisor() *testutil.Principal {
	return &testutil.Principal{ID: e.advisor.ID, Role: constants.RoleAdvisor}
}

func (e *submissionEnv) submit(t *testing.T, link string) string {
	t.Helper()
	body := fiber.Map{}
	if link != "" {
		body["file_link"] = link
	}
	resp, decoded := testutil.DoJSON(t, e.app, fiber.MethodPost,
		"/api/events/"+e.event.EventID.String()+"/submit", e.asStudent(), body)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	return decoded["data"].(map[string]interface{})["submission_id"].(string)
}

func TestSubmissionLifecycle(t *testing.T) {
	env := newSubmissionEnv(t)

	// first submit creates the row already SUBMITTED
	submissionID := env.submit(t, "https://example.edu/v1.pdf")

	var row eventModel.SubmissionModel
	require.NoError(t, env.db.Where("submission_id = ?", submissionID).First(&row).Error)
	assert.Equal(t, eventModel.SubmissionStatusSubmitted, row.SubmissionStatus)
	require.NotNil(t, row.SubmissionSubmittedAt)

	// advisor asks for changes
	resp, _ := testutil.DoJSON(t, env.app, fiber.MethodPatch,
		"/api/submissions/"+submissionID+"/review", env.asAdvisor(),
		fiber.Map{"status": "NEEDS_REVISION", "feedback": "cite your sources"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	require.NoError(t, env.db.Where("submission_id = ?", submissionID).First(&row).Error)
	assert.Equal(t, eventModel.SubmissionStatusNeedsRevision, row.SubmissionStatus)
	require.NotNil(t, row.SubmissionFeedback)
	assert.Equal(t, "cite your sources", *row.SubmissionFeedback)

	// resubmission keeps the old feedback until the next decision
	resp, _ = testutil.DoJSON(t, env.app, fiber.MethodPost,
		"/api/events/"+env.event.EventID.String()+"/submit", env.asStudent(),
		fiber.Map{"file_link": "https://example.edu/v2.pdf"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	require.NoError(t, env.db.Where("submission_id = ?", submissionID).First(&row).Error)
	assert.Equal(t, eventModel.SubmissionStatusSubmitted, row.SubmissionStatus)
	require.NotNil(t, row.SubmissionFeedback)
	assert.Equal(t, "cite your sources", *row.SubmissionFeedback)
	require.NotNil(t, row.SubmissionFileLink)
	assert.Equal(t, "https://example.edu/v2.pdf", *row.SubmissionFileLink)

	// approval is terminal
	resp, _ = testutil.DoJSON(t, env.app, fiber.MethodPatch,
		"/api/submissions/"+submissionID+"/review", env.asAdvisor(),
		fiber.Map{"status": "APPROVED"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = testutil.DoJSON(t, env.app, fiber.MethodPatch,
		"/api/submissions/"+submissionID+"/review", env.asAdvisor(),
		fiber.Map{"status": "NEEDS_REVISION", "feedback": "too late"})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp, _ = testutil.DoJSON(t, env.app, fiber.MethodPost,
		"/api/events/"+env.event.EventID.String()+"/submit", env.asStudent(),
		fiber.Map{"file_link": "https://example.edu/v3.pdf"})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	require.NoError(t, env.db.Where("submission_id = ?", submissionID).First(&row).Error)
	assert.Equal(t, eventModel.SubmissionStatusApproved, row.SubmissionStatus)
}

func TestReviewRequiresFeedbackForRevision(t *testing.T) {
	env := newSubmissionEnv(t)
	submissionID := env.submit(t, "https://example.edu/v1.pdf")

	resp, _ := testutil.DoJSON(t, env.app, fiber.MethodPatch,
		"/api/submissions/"+submissionID+"/review", env.asAdvisor(),
		fiber.Map{"status": "NEEDS_REVISION"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestReviewRejectsUnassignedAdvisor(t *testing.T) {
	env := newSubmissionEnv(t)
	submissionID := env.submit(t, "https://example.edu/v1.pdf")

	stranger := testutil.SeedUser(t, env.db, constants.RoleAdvisor, "stranger")
	resp, _ := testutil.DoJSON(t, env.app, fiber.MethodPatch,
		"/api/submissions/"+submissionID+"/review",
		&testutil.Principal{ID: stranger.ID, Role: constants.RoleAdvisor},
		fiber.Map{"status": "APPROVED"})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestReviewNotifiesTeam(t *testing.T) {
	env := newSubmissionEnv(t)
	submissionID := env.submit(t, "https://example.edu/v1.pdf")

	resp, _ := testutil.DoJSON(t, env.app, fiber.MethodPatch,
		"/api/submissions/"+submissionID+"/review", env.asAdvisor(),
		fiber.Map{"status": "APPROVED"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var n notificationModel.NotificationModel
	require.NoError(t, env.db.
		Where("notification_user_id = ? AND notification_type = ?",
			env.student.ID, notificationModel.TypeSubmissionReviewed).
		First(&n).Error)
	assert.Equal(t, env.advisor.ID, *n.NotificationActorID)
}

func TestTeamProgressCountsApproved(t *testing.T) {
	env := newSubmissionEnv(t)

	second := &eventModel.EventModel{
		EventID:        uuid.New(),
		EventSectionID: env.section.SectionID,
		EventTitle:     "Final Defense",
		EventDueDate:   time.Now().AddDate(0, 1, 0),
	}
	require.NoError(t, env.db.Create(second).Error)

	submissionID := env.submit(t, "https://example.edu/v1.pdf")
	resp, _ := testutil.DoJSON(t, env.app, fiber.MethodPatch,
		"/api/submissions/"+submissionID+"/review", env.asAdvisor(),
		fiber.Map{"status": "APPROVED"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, body := testutil.DoJSON(t, env.app, fiber.MethodGet,
		"/api/teams/"+env.team.TeamID.String()+"/progress", env.asStudent(), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	assert.EqualValues(t, 2, data["total_events"])
	assert.EqualValues(t, 1, data["approved"])
	assert.EqualValues(t, 50, data["percent"])
}

func TestReviewConflictBodyIsJSONEnvelope(t *testing.T) {
	env := newSubmissionEnv(t)
	submissionID := env.submit(t, "https://example.edu/v1.pdf")

	resp, _ := testutil.DoJSON(t, env.app, fiber.MethodPatch,
		"/api/submissions/"+submissionID+"/review", env.asAdvisor(),
		fiber.Map{"status": "APPROVED"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, body := testutil.DoJSON(t, env.app, fiber.MethodPatch,
		"/api/submissions/"+submissionID+"/review", env.asAdvisor(),
		fiber.Map{"status": "APPROVED"})
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON)
	assert.EqualValues(t, fiber.StatusConflict, body["code"])
	assert.Equal(t, "error", body["status"])
	assert.Equal(t, "Submission is already approved", body["message"])
}

func TestUpcomingDeadlinesWindow(t *testing.T) {
	env := newSubmissionEnv(t)

	// beyond the 14-day window, must not appear
	far := &eventModel.EventModel{
		EventID:        uuid.New(),
		EventSectionID: env.section.SectionID,
		EventTitle:     "Far Future",
		EventDueDate:   time.Now().AddDate(0, 2, 0),
	}
	require.NoError(t, env.db.Create(far).Error)

	resp, body := testutil.DoJSON(t, env.app, fiber.MethodGet,
		"/api/deadlines", env.asStudent(), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	items := body["data"].([]interface{})
	require.Len(t, items, 1)
	item := items[0].(map[string]interface{})
	assert.Equal(t, env.event.EventID.String(), item["event_id"])
	assert.Equal(t, eventModel.SubmissionStatusPending, item["status"])
}

func TestUpcomingDeadlinesSortedAcrossTeams(t *testing.T) {
	env := newSubmissionEnv(t)

	// second membership in another section with a sooner deadline
	other := &sectionModel.SectionModel{
		SectionID:          uuid.New(),
		SectionTermID:      env.section.SectionTermID,
		SectionCode:        "CAP-C",
		SectionName:        "Capstone C",
		SectionCourseType:  sectionModel.CourseTypeProject,
		SectionMinTeamSize: 1,
		SectionMaxTeamSize: 3,
	}
	require.NoError(t, env.db.Create(other).Error)

	otherTeam := &teamModel.TeamModel{
		TeamID:          uuid.New(),
		TeamSectionID:   other.SectionID,
		TeamGroupNumber: 1,
		TeamName:        "Sprinters",
	}
	require.NoError(t, env.db.Create(otherTeam).Error)
	require.NoError(t, env.db.Create(&teamModel.TeamMemberModel{
		TeamMemberID:     uuid.New(),
		TeamMemberTeamID: otherTeam.TeamID,
		TeamMemberUserID: env.student.ID,
	}).Error)

	soon := &eventModel.EventModel{
		EventID:        uuid.New(),
		EventSectionID: other.SectionID,
		EventTitle:     "Draft Review",
		EventDueDate:   time.Now().AddDate(0, 0, 2),
	}
	require.NoError(t, env.db.Create(soon).Error)

	resp, body := testutil.DoJSON(t, env.app, fiber.MethodGet,
		"/api/deadlines", env.asStudent(), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	items := body["data"].([]interface{})
	require.Len(t, items, 2)

	first := items[0].(map[string]interface{})
	second := items[1].(map[string]interface{})
	assert.Equal(t, soon.EventID.String(), first["event_id"])
	assert.Equal(t, env.event.EventID.String(), second["event_id"])

	prev := -1
	for _, raw := range items {
		days := int(raw.(map[string]interface{})["days_remaining"].(float64))
		require.GreaterOrEqual(t, days, prev)
		prev = days
	}
}
