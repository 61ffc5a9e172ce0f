// Package role holds the closed set of roles the application is used under.
// Each role decides which submissions it sees and what its dashboard shows.
package role

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/lessonnotes/core"
	"github.com/trezcool/lessonnotes/core/profile"
	"github.com/trezcool/lessonnotes/core/submission"
)

const (
	NameTeacher   = "teacher"
	NameAdmin     = "admin"
	NameInspector = "siso"
)

var (
	ErrUnknownRole = errors.New("unknown role")

	// Names lists the accepted role names.
	Names = []string{NameTeacher, NameAdmin, NameInspector}

	defaultHeader = Header{Name: "Teacher", Email: "teacher@school.com"}
	adminHeader   = Header{Name: "Head Teacher", Email: "admin@school.com"}
)

type (
	// Identity is who the caller claims to be. Name is only meaningful for teachers.
	Identity struct {
		Role string `json:"role"`
		Name string `json:"name"`
	}

	Header struct {
		Name   string `json:"name"`
		Email  string `json:"email"`
		Avatar string `json:"avatar,omitempty"`
	}

	NavItem struct {
		Label string `json:"label"`
		Path  string `json:"path"`
	}

	Action struct {
		Label  string `json:"label"`
		Method string `json:"method"`
		Path   string `json:"path"`
	}

	Dashboard struct {
		Role        string                     `json:"role"`
		Title       string                     `json:"title"`
		Navigation  []NavItem                  `json:"navigation"`
		Stats       submission.Stats           `json:"stats"`
		Submissions []submission.Submission    `json:"submissions"`
		Teachers    []submission.TeacherReport `json:"teachers,omitempty"`
		Actions     []Action                   `json:"actions,omitempty"`
	}

	// Source is where dashboards read submissions from.
	Source interface {
		Query(ctx context.Context, scope submission.Scope, filter submission.QueryFilter, orderings []core.Ordering) ([]submission.Submission, error)
		Stats(ctx context.Context, scope submission.Scope) (submission.Stats, error)
		ReportByTeacher(ctx context.Context, scope submission.Scope) ([]submission.TeacherReport, error)
	}

	Role interface {
		Name() string
		// Scope keeps the submissions the role may see.
		Scope(subs []submission.Submission) []submission.Submission
		Header(p profile.Profile) Header
		Dashboard(ctx context.Context, src Source) (Dashboard, error)
	}
)

var (
	_ Role = Teacher{}
	_ Role = Admin{}
	_ Role = Inspector{}

	_ Source = (*submission.Service)(nil)
)

// Parse returns the Role of id. An empty role name means teacher.
func Parse(id Identity) (Role, error) {
	switch core.CleanString(id.Role, true) {
	case NameTeacher, "":
		return Teacher{TeacherName: core.CleanString(id.Name)}, nil
	case NameAdmin:
		return Admin{}, nil
	case NameInspector:
		return Inspector{}, nil
	}
	return nil, ErrUnknownRole
}

func profileHeader(p profile.Profile) Header {
	h := defaultHeader
	if p.Name != "" {
		h.Name = p.Name
	}
	if p.Email != "" {
		h.Email = p.Email
	}
	h.Avatar = p.Avatar
	return h
}

// Teacher sees and submits their own lesson notes.
type Teacher struct {
	TeacherName string
}

func (Teacher) Name() string { return NameTeacher }

// Scope keeps the submissions whose teacher is r.TeacherName.
func (r Teacher) Scope(subs []submission.Submission) []submission.Submission {
	owned := make([]submission.Submission, 0)
	if r.TeacherName == "" {
		return owned
	}
	for _, s := range subs {
		if core.CleanString(s.Teacher) == r.TeacherName {
			owned = append(owned, s)
		}
	}
	return owned
}

func (Teacher) Header(p profile.Profile) Header { return profileHeader(p) }

func (r Teacher) Dashboard(ctx context.Context, src Source) (Dashboard, error) {
	subs, err := src.Query(ctx, r.Scope, submission.QueryFilter{}, []core.Ordering{{Field: submission.OrderByID}})
	if err != nil {
		return Dashboard{}, errors.Wrap(err, "querying submissions")
	}
	return Dashboard{
		Role:  NameTeacher,
		Title: "Teacher Dashboard",
		Navigation: []NavItem{
			{Label: "Dashboard", Path: "/dashboard"},
			{Label: "Submit Note", Path: "/submit"},
			{Label: "My Submissions", Path: "/submissions"},
			{Label: "Settings", Path: "/settings"},
		},
		Stats:       submission.ComputeStats(subs),
		Submissions: subs,
		Actions:     []Action{{Label: "Submit Lesson Note", Method: "POST", Path: "/v1/submissions"}},
	}, nil
}

// Admin is the head teacher reviewing every submission.
type Admin struct{}

func (Admin) Name() string { return NameAdmin }

func (Admin) Scope(subs []submission.Submission) []submission.Submission { return subs }

func (Admin) Header(p profile.Profile) Header {
	h := adminHeader
	h.Avatar = p.Avatar
	return h
}

func (r Admin) Dashboard(ctx context.Context, src Source) (Dashboard, error) {
	stats, err := src.Stats(ctx, r.Scope)
	if err != nil {
		return Dashboard{}, errors.Wrap(err, "computing stats")
	}
	recent, err := src.Query(ctx, r.Scope, submission.QueryFilter{}, []core.Ordering{
		{Field: submission.OrderByUploadedOn, Ascending: false},
		{Field: submission.OrderByID, Ascending: false},
	})
	if err != nil {
		return Dashboard{}, errors.Wrap(err, "querying submissions")
	}
	if len(recent) > recentLimit {
		recent = recent[:recentLimit]
	}
	return Dashboard{
		Role:  NameAdmin,
		Title: "Admin Dashboard",
		Navigation: []NavItem{
			{Label: "Dashboard", Path: "/dashboard"},
			{Label: "Review Notes", Path: "/review"},
			{Label: "Reports", Path: "/reports"},
			{Label: "Settings", Path: "/settings"},
		},
		Stats:       stats,
		Submissions: recent,
	}, nil
}

const recentLimit = 5

// Inspector is the school inspection officer (SISO), mostly reading reports.
type Inspector struct{}

func (Inspector) Name() string { return NameInspector }

func (Inspector) Scope(subs []submission.Submission) []submission.Submission { return subs }

func (Inspector) Header(p profile.Profile) Header { return profileHeader(p) }

func (r Inspector) Dashboard(ctx context.Context, src Source) (Dashboard, error) {
	stats, err := src.Stats(ctx, r.Scope)
	if err != nil {
		return Dashboard{}, errors.Wrap(err, "computing stats")
	}
	teachers, err := src.ReportByTeacher(ctx, r.Scope)
	if err != nil {
		return Dashboard{}, errors.Wrap(err, "reporting by teacher")
	}
	subs, err := src.Query(ctx, r.Scope, submission.QueryFilter{}, []core.Ordering{{Field: submission.OrderByWeek, Ascending: false}})
	if err != nil {
		return Dashboard{}, errors.Wrap(err, "querying submissions")
	}
	return Dashboard{
		Role:  NameInspector,
		Title: "SISO Dashboard",
		Navigation: []NavItem{
			{Label: "Dashboard", Path: "/dashboard"},
			{Label: "Reports", Path: "/reports"},
			{Label: "Settings", Path: "/settings"},
		},
		Stats:       stats,
		Submissions: subs,
		Teachers:    teachers,
		Actions:     []Action{{Label: "Report to Headteacher", Method: "POST", Path: "/v1/reports/headteacher"}},
	}, nil
}
