package echoapi

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/lessonnotes/core/role"
)

// identityMiddleware resolves who is calling: the session token when there is one,
// otherwise the `role` and `teacher` query parameters.
// A teacher without a name is the one of the stored profile.
func (s *Server) identityMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		var id role.Identity
		if claims, ok := getContextClaims(ctx); ok {
			id = role.Identity{Role: claims.Role, Name: claims.Name}
		} else {
			id = role.Identity{Role: ctx.QueryParam("role"), Name: ctx.QueryParam("teacher")}
		}

		r, err := role.Parse(id)
		if err != nil {
			return errUnknownRole
		}
		if t, ok := r.(role.Teacher); ok && t.TeacherName == "" {
			p, err := s.header.profile(ctx.Request().Context())
			if err != nil {
				return errors.Wrap(err, "reading profile")
			}
			t.TeacherName = p.Name
			r = t
		}
		id.Role = r.Name()
		if t, ok := r.(role.Teacher); ok {
			id.Name = t.TeacherName
		} else {
			id.Name = ""
		}

		ctx.Set(contextIdentityKey, id)
		ctx.Set(contextRoleKey, r)
		return next(ctx)
	}
}
