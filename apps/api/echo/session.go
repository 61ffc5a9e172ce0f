package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/lessonnotes/core/role"
)

type (
	SessionRequest struct {
		Role string `json:"role"`
		Name string `json:"name"`
	}

	SessionResponse struct {
		Token string `json:"token"`
		Role  string `json:"role"`
		Name  string `json:"name,omitempty"`
	}

	DashboardResponse struct {
		Header role.Header `json:"header"`
		role.Dashboard
	}

	SuccessResponse struct {
		Success string `json:"success"`
	}
)

// createSession issues a token carrying the chosen role. It authenticates nobody.
func (s *Server) createSession(ctx echo.Context) error {
	var data SessionRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to SessionRequest")
	}

	r, err := role.Parse(role.Identity{Role: data.Role, Name: data.Name})
	if err != nil {
		return errUnknownRole
	}
	id := role.Identity{Role: r.Name()}
	if t, ok := r.(role.Teacher); ok {
		id.Name = t.TeacherName
	}

	token, err := GenerateToken(id, s.conf)
	if err != nil {
		return errors.Wrap(err, "generating token")
	}
	return ctx.JSON(http.StatusOK, SessionResponse{Token: token, Role: id.Role, Name: id.Name})
}

func (s *Server) queryRoles(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, role.Names)
}

func (s *Server) dashboard(ctx echo.Context) error {
	r := getContextRole(ctx)
	rctx := ctx.Request().Context()

	p, err := s.header.profile(rctx)
	if err != nil {
		return errors.Wrap(err, "reading profile")
	}
	d, err := r.Dashboard(rctx, s.deps.SubmissionSvc)
	if err != nil {
		return errors.Wrap(err, "building dashboard")
	}
	return ctx.JSON(http.StatusOK, DashboardResponse{Header: r.Header(p), Dashboard: d})
}
