package submission

import (
	"bytes"
	"context"
	"encoding/csv"
	"net/mail"
	"strconv"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/lessonnotes/core"
)

var NowFunc = time.Now // mockable

type (
	// Repository loads and saves the whole submission collection at once.
	Repository interface {
		// Load never fails on missing or unreadable data: it returns the bundled dataset instead.
		Load(ctx context.Context) ([]Submission, error)
		Save(ctx context.Context, subs []Submission) error
	}

	// Recorder is notified of workflow events (metrics).
	Recorder interface {
		SubmissionCreated(sub Submission)
		StatusChanged(from, to Status)
	}

	// Scope restricts a collection to what the caller may see; nil means everything.
	Scope func(subs []Submission) []Submission

	HeadteacherReport struct {
		Stats    Stats
		Teachers []TeacherReport
		Statuses []Status
	}

	Service struct {
		mu          sync.Mutex // serializes load-mutate-save cycles
		repo        Repository
		mailSvc     core.EmailService
		recorder    Recorder
		headteacher mail.Address
	}
)

func NewService(repo Repository, mailSvc core.EmailService, recorder Recorder, conf *core.Config) *Service {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &Service{
		repo:        repo,
		mailSvc:     mailSvc,
		recorder:    recorder,
		headteacher: mail.Address{Name: "Headteacher", Address: conf.HeadteacherEmail},
	}
}

func (svc *Service) load(ctx context.Context, scope Scope) ([]Submission, error) {
	subs, err := svc.repo.Load(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "loading submissions")
	}
	if scope != nil {
		subs = scope(subs)
	}
	return subs, nil
}

// Query returns the scoped submissions matching filter, sorted by orderings.
func (svc *Service) Query(ctx context.Context, scope Scope, filter QueryFilter, orderings []core.Ordering) ([]Submission, error) {
	subs, err := svc.load(ctx, scope)
	if err != nil {
		return nil, err
	}
	return Sort(Filter(subs, filter), orderings...), nil
}

func (svc *Service) GetByID(ctx context.Context, id int) (Submission, error) {
	subs, err := svc.load(ctx, nil)
	if err != nil {
		return Submission{}, err
	}
	for _, s := range subs {
		if s.ID == id {
			return s, nil
		}
	}
	return Submission{}, ErrNotFound
}

// Create appends a Pending submission uploaded today by teacher.
func (svc *Service) Create(ctx context.Context, teacher string, ns NewSubmission) (Submission, error) {
	teacher = core.CleanString(teacher)
	if teacher == "" {
		return Submission{}, core.NewValidationError(nil, core.FieldError{Field: "teacher", Error: "this field is required"})
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()

	subs, err := svc.load(ctx, nil)
	if err != nil {
		return Submission{}, err
	}

	term := ns.Term
	if term == 0 {
		term = 1
	}
	sub := Submission{
		ID:         nextID(subs),
		Teacher:    teacher,
		Subject:    core.CleanString(ns.Subject),
		Class:      core.CleanString(ns.Class),
		Week:       ns.Week,
		Term:       term,
		Status:     StatusPending,
		UploadedOn: NowFunc().Format(dateLayout),
	}
	if err := svc.repo.Save(ctx, append(subs, sub)); err != nil {
		return Submission{}, errors.Wrap(err, "saving submissions")
	}
	svc.recorder.SubmissionCreated(sub)
	return sub, nil
}

// Review moves a submission to a new status. Invalid reviews leave the collection untouched.
func (svc *Service) Review(ctx context.Context, id int, r Review) (Submission, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	subs, err := svc.load(ctx, nil)
	if err != nil {
		return Submission{}, err
	}
	idx := -1
	for i, s := range subs {
		if s.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Submission{}, ErrNotFound
	}

	prev := subs[idx]
	sub, err := Transition(prev, r)
	if err != nil {
		return prev, err
	}
	subs[idx] = sub
	if err := svc.repo.Save(ctx, subs); err != nil {
		return Submission{}, errors.Wrap(err, "saving submissions")
	}
	svc.recorder.StatusChanged(prev.Status, sub.Status)
	return sub, nil
}

// Reset replaces the stored collection.
func (svc *Service) Reset(ctx context.Context, subs []Submission) error {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	return errors.Wrap(svc.repo.Save(ctx, subs), "saving submissions")
}

func (svc *Service) ReportByStatus(ctx context.Context, scope Scope) ([]StatusCount, error) {
	subs, err := svc.load(ctx, scope)
	if err != nil {
		return nil, err
	}
	return ReportByStatus(subs), nil
}

func (svc *Service) ReportByTeacher(ctx context.Context, scope Scope) ([]TeacherReport, error) {
	subs, err := svc.load(ctx, scope)
	if err != nil {
		return nil, err
	}
	return ReportByTeacher(subs), nil
}

func (svc *Service) Stats(ctx context.Context, scope Scope) (Stats, error) {
	subs, err := svc.load(ctx, scope)
	if err != nil {
		return Stats{}, err
	}
	return ComputeStats(subs), nil
}

// SendHeadteacherReport emails the per-teacher report, with a CSV copy attached.
func (svc *Service) SendHeadteacherReport(ctx context.Context) error {
	subs, err := svc.load(ctx, nil)
	if err != nil {
		return err
	}
	report := HeadteacherReport{
		Stats:    ComputeStats(subs),
		Teachers: ReportByTeacher(subs),
		Statuses: Statuses,
	}

	msg := &core.EmailMessage{
		To:           []mail.Address{svc.headteacher},
		Subject:      "Lesson notes report - week " + strconv.Itoa(report.Stats.CurrentWeek),
		TemplateName: "headteacher_report",
		TemplateData: report,
	}
	csvData, err := reportCSV(report.Teachers)
	if err != nil {
		return errors.Wrap(err, "writing report csv")
	}
	if err := msg.Attach(bytes.NewReader(csvData), "teacher-report.csv", "text/csv"); err != nil {
		return errors.Wrap(err, "attaching report csv")
	}

	svc.mailSvc.SendMessages(msg)
	return nil
}

func reportCSV(reports []TeacherReport) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"Teacher"}
	for _, s := range Statuses {
		header = append(header, string(s))
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, r := range reports {
		row := []string{r.TeacherName}
		for _, c := range r.Data {
			row = append(row, strconv.Itoa(c.Count))
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func nextID(subs []Submission) int {
	var max int
	for _, s := range subs {
		if s.ID > max {
			max = s.ID
		}
	}
	return max + 1
}

type nopRecorder struct{}

func (nopRecorder) SubmissionCreated(Submission) {}
func (nopRecorder) StatusChanged(_, _ Status)    {}
