package echoapi_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/lessonnotes/core/role"
	"github.com/trezcool/lessonnotes/core/submission"
)

func Test_submissionApi_query(t *testing.T) {
	env := setup(t)

	path := func(params ...string) string {
		v := make(url.Values)
		for i := 0; i+1 < len(params); i += 2 {
			v.Add(params[i], params[i+1])
		}
		return "/v1/submissions?" + v.Encode()
	}
	janeToken := getToken(t, env.conf, role.Identity{Role: role.NameTeacher, Name: "Mrs. Jane Smith"})
	adminToken := getToken(t, env.conf, role.Identity{Role: role.NameAdmin})

	env.run(t, []httpTest{
		{name: "admin sees all", path: path("role", "admin"), wantCode: http.StatusOK, wantData: mock(t, 1, 2, 3, 4, 5)},
		{name: "siso sees all", path: path("role", "siso"), wantCode: http.StatusOK, wantData: mock(t, 1, 2, 3, 4, 5)},
		{name: "admin token", path: "/v1/submissions", token: adminToken, wantCode: http.StatusOK, wantData: mock(t, 1, 2, 3, 4, 5)},
		{name: "teacher by name", path: path("teacher", "Mr. John Doe"), wantCode: http.StatusOK, wantData: mock(t, 1)},
		{name: "teacher token", path: "/v1/submissions", token: janeToken, wantCode: http.StatusOK, wantData: mock(t, 2)},
		{name: "token wins over query", path: path("role", "admin"), token: janeToken, wantCode: http.StatusOK, wantData: mock(t, 2)},
		{name: "teacher without name", path: "/v1/submissions", wantCode: http.StatusOK, wantData: mock(t)},
		{name: "unknown role", path: path("role", "student"), wantCode: http.StatusBadRequest, wantData: marchallObj(t, errUnknownRole)},
		{
			name: "invalid token", path: "/v1/submissions", token: "not-a-jwt", wantCode: http.StatusUnauthorized,
			wantData: marchallObj(t, httpErr{Error: "invalid or expired jwt"}),
		},
		// filtering
		{name: "class", path: path("role", "admin", "class", "JHS 1"), wantCode: http.StatusOK, wantData: mock(t, 1, 3)},
		{name: "class=all", path: path("role", "admin", "class", "all"), wantCode: http.StatusOK, wantData: mock(t, 1, 2, 3, 4, 5)},
		{name: "unknown class", path: path("role", "admin", "class", "JHS 9"), wantCode: http.StatusOK, wantData: mock(t)},
		{name: "week", path: path("role", "admin", "week", "5"), wantCode: http.StatusOK, wantData: mock(t, 3)},
		{name: "week=all", path: path("role", "admin", "week", "All"), wantCode: http.StatusOK, wantData: mock(t, 1, 2, 3, 4, 5)},
		{
			name: "invalid week", path: path("role", "admin", "week", "six"), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"week": "enter a valid week number"}),
		},
		{name: "status", path: path("role", "admin", "status", "needs_correction"), wantCode: http.StatusOK, wantData: mock(t, 4)},
		{
			name: "unknown status", path: path("role", "admin", "status", "archived"), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"status": "unknown status"}),
		},
		{name: "class & week", path: path("role", "admin", "class", "JHS 2", "week", "6"), wantCode: http.StatusOK, wantData: mock(t, 2, 5)},
		// ordering
		{name: "week ascending", path: path("role", "admin", "ordering", "week"), wantCode: http.StatusOK, wantData: mock(t, 3, 1, 2, 4, 5)},
		{name: "week descending", path: path("role", "admin", "ordering", "-week"), wantCode: http.StatusOK, wantData: mock(t, 1, 2, 4, 5, 3)},
		{
			name: "week, -uploadedOn", path: path("role", "admin", "ordering", "week,-uploadedOn"),
			wantCode: http.StatusOK, wantData: mock(t, 3, 1, 4, 2, 5),
		},
		{name: "unknown field ignored", path: path("role", "admin", "ordering", "-lol"), wantCode: http.StatusOK, wantData: mock(t, 1, 2, 3, 4, 5)},
	})
}

func Test_submissionApi_create(t *testing.T) {
	env := setup(t)
	token := getToken(t, env.conf, role.Identity{Role: role.NameTeacher, Name: "Mr. John Doe"})

	created := submission.Submission{
		ID: 6, Teacher: "Mr. John Doe", Subject: "Mathematics", Class: "JHS 1", Week: 7, Term: 1,
		Status: submission.StatusPending, UploadedOn: "2025-06-20",
	}

	env.run(t, []httpTest{
		{
			name: "validation", method: http.MethodPost, path: "/v1/submissions", token: token,
			body:     []byte(`{"subject": " ", "week": 16}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{
				"subject": "this field cannot be blank",
				"class":   "this field cannot be blank",
				"week":    "week must be 15 or less",
			}),
		},
		{
			name: "admin has no teacher name", method: http.MethodPost, path: "/v1/submissions?role=admin",
			body:     []byte(`{"subject": "Mathematics", "class": "JHS 1", "week": 7}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"teacher": "this field is required"}),
		},
		{
			name: "created", method: http.MethodPost, path: "/v1/submissions", token: token,
			body:     []byte(`{"subject": " Mathematics ", "class": "JHS 1", "week": 7}`),
			wantCode: http.StatusCreated,
			wantData: marchallObj(t, created),
		},
		{name: "listed", path: "/v1/submissions", token: token, wantCode: http.StatusOK, wantData: marchallList(t, submission.MockSubmissions()[0], created)},
	})
}

func Test_submissionApi_retrieve(t *testing.T) {
	env := setup(t)

	env.run(t, []httpTest{
		{name: "found", path: "/v1/submissions/3?role=admin", wantCode: http.StatusOK, wantData: marchallObj(t, submission.MockSubmissions()[2])},
		{name: "unknown id", path: "/v1/submissions/99?role=admin", wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound)},
		{name: "invalid id", path: "/v1/submissions/abc?role=admin", wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound)},
	})
}

func Test_submissionApi_review(t *testing.T) {
	env := setup(t)
	path := "/v1/submissions/1/review?role=admin"

	rejected := submission.MockSubmissions()[0]
	rejected.Status = submission.StatusRejected
	rejected.Feedback = null.StringFrom("missing objectives")

	approved := rejected
	approved.Status = submission.StatusApproved
	approved.Feedback = null.String{}

	env.run(t, []httpTest{
		{
			name: "feedback required", method: http.MethodPut, path: path,
			body: []byte(`{"status": "Rejected", "feedback": "   "}`), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"feedback": "Feedback is required for this action."}),
		},
		{name: "left untouched", path: "/v1/submissions/1?role=admin", wantCode: http.StatusOK, wantData: marchallObj(t, submission.MockSubmissions()[0])},
		{
			name: "status required", method: http.MethodPut, path: path,
			body: []byte(`{"feedback": "ok"}`), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"status": "this field is required"}),
		},
		{
			name: "unknown status", method: http.MethodPut, path: path,
			body: []byte(`{"status": "Archived"}`), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"status": "invalid status; expected one of: Pending, Approved, Needs Correction, Rejected"}),
		},
		{
			name: "rejected", method: http.MethodPut, path: path,
			body: []byte(`{"status": "Rejected", "feedback": " missing objectives "}`), wantCode: http.StatusOK,
			wantData: marchallObj(t, rejected),
		},
		{
			name: "approved clears feedback", method: http.MethodPut, path: path,
			body: []byte(`{"status": "Approved"}`), wantCode: http.StatusOK,
			wantData: marchallObj(t, approved),
		},
		{
			name: "approved with feedback", method: http.MethodPut, path: path,
			body: []byte(`{"status": "Approved", "feedback": "nice"}`), wantCode: http.StatusOK,
			wantData: marchallObj(t, approved),
		},
		{name: "feedback not stored", path: "/v1/submissions/1?role=admin", wantCode: http.StatusOK, wantData: marchallObj(t, approved)},
		{
			name: "unknown id", method: http.MethodPut, path: "/v1/submissions/99/review?role=admin",
			body: []byte(`{"status": "Approved"}`), wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound),
		},
	})
}

func Test_reports(t *testing.T) {
	env := setup(t)

	counts := func(approved, pending, rejected, corrections int) []submission.StatusCount {
		return []submission.StatusCount{
			{Status: submission.StatusApproved, Count: approved},
			{Status: submission.StatusPending, Count: pending},
			{Status: submission.StatusRejected, Count: rejected},
			{Status: submission.StatusNeedsCorrection, Count: corrections},
		}
	}

	env.run(t, []httpTest{
		{name: "by status", path: "/v1/reports/status?role=siso", wantCode: http.StatusOK, wantData: marchallObj(t, counts(2, 1, 1, 1))},
		{
			name: "by status, teacher scope", path: "/v1/reports/status?teacher=Mrs.+Jane+Smith",
			wantCode: http.StatusOK, wantData: marchallObj(t, counts(1, 0, 0, 0)),
		},
		{
			name: "by teacher, teacher scope", path: "/v1/reports/teachers?teacher=Mr.+Alex+Johnson", wantCode: http.StatusOK,
			wantData: marchallList(t, submission.TeacherReport{TeacherName: "Mr. Alex Johnson", Data: counts(0, 0, 1, 0)}),
		},
		{
			name: "stats", path: "/v1/reports/stats?role=admin", wantCode: http.StatusOK,
			wantData: marchallObj(t, submission.Stats{
				TotalSubmissions: 5, TotalTeachers: 5, PendingReview: 1, CorrectionsRequested: 1,
				ApprovedThisWeek: 2, MissingSubmissions: 1, CurrentWeek: 6,
			}),
		},
		{
			name: "headteacher report", method: http.MethodPost, path: "/v1/reports/headteacher?role=siso", wantCode: http.StatusOK,
			wantData: marchallObj(t, map[string]string{"success": "Report has been generated and sent to the Headteacher."}),
		},
	})

	sent := env.mailSvc.SentMessages()
	require.Len(t, sent, 1)
	assert.Equal(t, "headteacher@school.com", sent[0].To[0].Address)
	assert.Equal(t, "Lesson notes report - week 6", sent[0].Subject)
	assert.Contains(t, sent[0].TextContent, "Mrs. Jane Smith: Approved=1 Pending=0 Rejected=0 Needs Correction=0")
}
