package echoapi

import (
	"net/http"
	"net/url"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/lessonnotes/core/subject"
)

type subjectApi struct {
	list     *subject.List
	validate *validator.Validate
}

func registerSubjectAPI(g *echo.Group, list *subject.List, validate *validator.Validate) {
	api := subjectApi{list: list, validate: validate}

	sg := g.Group("/subjects")
	sg.GET("", api.query)
	sg.POST("", api.create)
	sg.DELETE("/:name", api.destroy)
}

// Handlers

func (api *subjectApi) query(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.list.All())
}

func (api *subjectApi) create(ctx echo.Context) error {
	var data subject.NewSubject
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSubject")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}
	if err := api.list.Add(data.Name); err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, api.list.All())
}

// destroy is a no-op for unknown subjects.
func (api *subjectApi) destroy(ctx echo.Context) error {
	name := ctx.Param("name")
	if unescaped, err := url.PathUnescape(name); err == nil {
		name = unescaped
	}
	api.list.Remove(name)
	return ctx.NoContent(http.StatusNoContent)
}
