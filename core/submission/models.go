package submission

import (
	"encoding/json"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/lessonnotes/core"
)

// Status of a lesson note in the review workflow.
// The values are the strings stored in the persisted blob.
type Status string

const (
	StatusPending         Status = "Pending"
	StatusApproved        Status = "Approved"
	StatusNeedsCorrection Status = "Needs Correction"
	StatusRejected        Status = "Rejected"
)

const (
	MaxWeek = 15
	MaxTerm = 3

	dateLayout = "2006-01-02"
)

var (
	// Statuses in report order.
	Statuses = []Status{StatusApproved, StatusPending, StatusRejected, StatusNeedsCorrection}

	ErrNotFound      = errors.New("submission not found")
	ErrUnknownStatus = errors.New("unknown status")

	statusLookup = func() map[string]Status {
		lookup := make(map[string]Status, len(Statuses))
		for _, s := range Statuses {
			lookup[statusKey(string(s))] = s
		}
		return lookup
	}()
)

func statusKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(s)
}

// ParseStatus accepts the stored form ("Needs Correction") as well as compact spellings
// such as "NeedsCorrection" or "needs_correction".
func ParseStatus(s string) (Status, error) {
	if status, ok := statusLookup[statusKey(s)]; ok {
		return status, nil
	}
	return "", ErrUnknownStatus
}

// RequiresFeedback reports whether moving into this status needs reviewer feedback.
func (s Status) RequiresFeedback() bool {
	return s == StatusNeedsCorrection || s == StatusRejected
}

func (s *Status) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	status, err := ParseStatus(raw)
	if err != nil {
		return errors.Wrapf(err, "%q", raw)
	}
	*s = status
	return nil
}

type (
	Submission struct {
		ID         int         `json:"id"`
		Teacher    string      `json:"teacher"`
		Subject    string      `json:"subject"`
		Class      string      `json:"class"`
		Week       int         `json:"week"`
		Term       int         `json:"term"`
		Status     Status      `json:"status"`
		UploadedOn string      `json:"uploadedOn"`
		Feedback   null.String `json:"feedback"`
	}

	NewSubmission struct {
		Subject string `json:"subject" form:"subject" validate:"notblank"`
		Class   string `json:"class" form:"class" validate:"notblank"`
		Week    int    `json:"week" form:"week" validate:"required,min=1,max=15"`
		Term    int    `json:"term" form:"term" validate:"omitempty,min=1,max=3"`
	}

	// Review is a reviewer's decision on a submission.
	Review struct {
		Status   string `json:"status" validate:"required"`
		Feedback string `json:"feedback"`
	}

	// QueryFilter selects submissions; zero values mean "show all".
	QueryFilter struct {
		Class  string
		Week   int
		Status Status
	}

	StatusCount struct {
		Status Status `json:"status"`
		Count  int    `json:"count"`
	}

	TeacherReport struct {
		TeacherName string        `json:"teacherName"`
		Data        []StatusCount `json:"data"`
	}

	Stats struct {
		TotalSubmissions     int `json:"totalSubmissions"`
		TotalTeachers        int `json:"totalTeachers"`
		PendingReview        int `json:"pendingReview"`
		CorrectionsRequested int `json:"correctionsRequested"`
		ApprovedThisWeek     int `json:"approvedThisWeek"`
		MissingSubmissions   int `json:"missingSubmissions"`
		CurrentWeek          int `json:"currentWeek"`
	}
)

func (ns *NewSubmission) Validate(validate *validator.Validate) error {
	ns.Subject = core.CleanString(ns.Subject)
	ns.Class = core.CleanString(ns.Class)
	return validate.Struct(ns)
}

func (r *Review) Validate(validate *validator.Validate) error {
	r.Status = core.CleanString(r.Status)
	r.Feedback = core.CleanString(r.Feedback)
	return validate.Struct(r)
}

// IsEmpty reports whether the filter keeps every submission.
func (f QueryFilter) IsEmpty() bool {
	return f.Class == "" && f.Week == 0 && f.Status == ""
}
