package submission

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/lessonnotes/core"
)

type memRepository struct {
	mu    sync.Mutex
	subs  []Submission
	saves int
}

func (repo *memRepository) Load(context.Context) ([]Submission, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if repo.subs == nil {
		return MockSubmissions(), nil
	}
	subs := make([]Submission, len(repo.subs))
	copy(subs, repo.subs)
	return subs, nil
}

func (repo *memRepository) Save(_ context.Context, subs []Submission) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.subs = make([]Submission, len(subs))
	copy(repo.subs, subs)
	repo.saves++
	return nil
}

type mailRecorder struct {
	messages []*core.EmailMessage
}

func (m *mailRecorder) SendMessages(messages ...*core.EmailMessage) {
	m.messages = append(m.messages, messages...)
}

type countRecorder struct {
	created     int
	transitions map[Status]int
}

func (r *countRecorder) SubmissionCreated(Submission) { r.created++ }
func (r *countRecorder) StatusChanged(_, to Status) {
	if r.transitions == nil {
		r.transitions = make(map[Status]int)
	}
	r.transitions[to]++
}

func setup(t *testing.T) (*Service, *memRepository, *mailRecorder, *countRecorder) {
	t.Helper()
	repo := new(memRepository)
	mailer := new(mailRecorder)
	recorder := new(countRecorder)
	return NewService(repo, mailer, recorder, core.NewTestConfig()), repo, mailer, recorder
}

func TestService_Create(t *testing.T) {
	svc, repo, _, recorder := setup(t)
	ctx := context.Background()

	NowFunc = func() time.Time { return time.Date(2025, 6, 20, 9, 30, 0, 0, time.UTC) }
	defer func() { NowFunc = time.Now }()

	sub, err := svc.Create(ctx, " Mr. John Doe ", NewSubmission{Subject: "Mathematics", Class: "JHS 1", Week: 7})
	require.NoError(t, err)
	assert.Equal(t, Submission{
		ID:         6,
		Teacher:    "Mr. John Doe",
		Subject:    "Mathematics",
		Class:      "JHS 1",
		Week:       7,
		Term:       1,
		Status:     StatusPending,
		UploadedOn: "2025-06-20",
	}, sub)
	assert.Len(t, repo.subs, 6)
	assert.Equal(t, 1, recorder.created)

	next, err := svc.Create(ctx, "Ms. Emily Davis", NewSubmission{Subject: "Social Studies", Class: "JHS 3", Week: 7, Term: 2})
	require.NoError(t, err)
	assert.Equal(t, 7, next.ID)
	assert.Equal(t, 2, next.Term)

	_, err = svc.Create(ctx, "  ", NewSubmission{Subject: "x", Class: "y", Week: 1})
	assert.True(t, core.IsValidationError(err))
	assert.Len(t, repo.subs, 7)
}

func TestService_Review(t *testing.T) {
	ctx := context.Background()

	t.Run("rejected with feedback", func(t *testing.T) {
		svc, repo, _, recorder := setup(t)
		repo.subs = []Submission{{ID: 1, Teacher: "T", Status: StatusPending}}

		sub, err := svc.Review(ctx, 1, Review{Status: "Rejected", Feedback: "missing objectives"})
		require.NoError(t, err)
		assert.Equal(t, StatusRejected, sub.Status)
		assert.Equal(t, "missing objectives", sub.Feedback.String)

		stored, err := svc.GetByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, sub, stored)
		assert.Equal(t, 1, recorder.transitions[StatusRejected])
	})

	t.Run("rejected without feedback", func(t *testing.T) {
		svc, repo, _, recorder := setup(t)
		repo.subs = []Submission{{ID: 1, Teacher: "T", Status: StatusPending}}

		_, err := svc.Review(ctx, 1, Review{Status: "Rejected", Feedback: ""})
		assert.True(t, core.IsValidationError(err))

		stored, err := svc.GetByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, StatusPending, stored.Status)
		assert.Zero(t, repo.saves, "nothing saved after a failed review")
		assert.Empty(t, recorder.transitions)
	})

	t.Run("not found", func(t *testing.T) {
		svc, _, _, _ := setup(t)
		_, err := svc.Review(ctx, 42, Review{Status: "Approved"})
		assert.Equal(t, ErrNotFound, errors.Cause(err))
	})
}

func TestService_Query(t *testing.T) {
	svc, _, _, _ := setup(t)
	ctx := context.Background()

	johnOnly := func(subs []Submission) []Submission {
		var own []Submission
		for _, s := range subs {
			if s.Teacher == "Mr. John Doe" {
				own = append(own, s)
			}
		}
		return own
	}

	all, err := svc.Query(ctx, nil, QueryFilter{}, []core.Ordering{{Field: OrderByID}})
	require.NoError(t, err)
	assert.Equal(t, []int{5, 4, 3, 2, 1}, ids(all))

	own, err := svc.Query(ctx, johnOnly, QueryFilter{}, nil)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, ids(own))

	stats, err := svc.Stats(ctx, johnOnly)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalSubmissions)
}

func TestService_SendHeadteacherReport(t *testing.T) {
	svc, _, mailer, _ := setup(t)

	require.NoError(t, svc.SendHeadteacherReport(context.Background()))
	require.Len(t, mailer.messages, 1)

	msg := mailer.messages[0]
	assert.Equal(t, "headteacher@school.com", msg.To[0].Address)
	assert.Equal(t, "headteacher_report", msg.TemplateName)
	assert.Equal(t, "Lesson notes report - week 6", msg.Subject)
	require.Len(t, msg.Attachments, 1)
	assert.Equal(t, "teacher-report.csv", msg.Attachments[0].Filename)

	report, ok := msg.TemplateData.(HeadteacherReport)
	require.True(t, ok)
	assert.Len(t, report.Teachers, 5)
}

func TestReportCSV(t *testing.T) {
	data, err := reportCSV(ReportByTeacher(MockSubmissions()[:1]))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Equal(t, []string{
		"Teacher,Approved,Pending,Rejected,Needs Correction",
		"Mr. John Doe,0,1,0,0",
	}, lines)
}
