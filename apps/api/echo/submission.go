package echoapi

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/lessonnotes/core/role"
	"github.com/trezcool/lessonnotes/core/submission"
)

const msgReportSent = "Report has been generated and sent to the Headteacher."

type submissionApi struct {
	svc      *submission.Service
	validate *validator.Validate
}

func registerSubmissionAPI(g *echo.Group, svc *submission.Service, validate *validator.Validate) {
	api := submissionApi{svc: svc, validate: validate}

	sg := g.Group("/submissions")
	sg.GET("", api.query)
	sg.POST("", api.create)
	sg.GET("/:id", api.retrieve)
	sg.PUT("/:id/review", api.review)

	rg := g.Group("/reports")
	rg.GET("/status", api.reportByStatus)
	rg.GET("/teachers", api.reportByTeacher)
	rg.GET("/stats", api.stats)
	rg.POST("/headteacher", api.sendHeadteacherReport)
}

func scope(ctx echo.Context) submission.Scope {
	return getContextRole(ctx).Scope
}

func paramID(ctx echo.Context) (int, error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return 0, errHttpNotFound
	}
	return id, nil
}

// Handlers

func (api *submissionApi) query(ctx echo.Context) error {
	var q SubmissionQuery
	if err := q.Bind(ctx); err != nil {
		return err
	}
	ordering := new(Ordering)
	ordering.Bind(ctx)

	subs, err := api.svc.Query(ctx.Request().Context(), scope(ctx), q.Filter, ordering.Orderings)
	if err != nil {
		return errors.Wrap(err, "querying submissions")
	}
	return ctx.JSON(http.StatusOK, subs)
}

func (api *submissionApi) create(ctx echo.Context) error {
	var data submission.NewSubmission
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSubmission")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	var teacher string
	if t, ok := getContextRole(ctx).(role.Teacher); ok {
		teacher = t.TeacherName
	}
	sub, err := api.svc.Create(ctx.Request().Context(), teacher, data)
	if err != nil {
		return errors.Wrap(err, "creating submission")
	}
	return ctx.JSON(http.StatusCreated, sub)
}

func (api *submissionApi) retrieve(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	sub, err := api.svc.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "finding submission by ID")
	}
	return ctx.JSON(http.StatusOK, sub)
}

func (api *submissionApi) review(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}

	var data submission.Review
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Review")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	sub, err := api.svc.Review(ctx.Request().Context(), id, data)
	if err != nil {
		return errors.Wrap(err, "reviewing submission")
	}
	return ctx.JSON(http.StatusOK, sub)
}

func (api *submissionApi) reportByStatus(ctx echo.Context) error {
	report, err := api.svc.ReportByStatus(ctx.Request().Context(), scope(ctx))
	if err != nil {
		return errors.Wrap(err, "reporting by status")
	}
	return ctx.JSON(http.StatusOK, report)
}

func (api *submissionApi) reportByTeacher(ctx echo.Context) error {
	report, err := api.svc.ReportByTeacher(ctx.Request().Context(), scope(ctx))
	if err != nil {
		return errors.Wrap(err, "reporting by teacher")
	}
	return ctx.JSON(http.StatusOK, report)
}

func (api *submissionApi) stats(ctx echo.Context) error {
	stats, err := api.svc.Stats(ctx.Request().Context(), scope(ctx))
	if err != nil {
		return errors.Wrap(err, "computing stats")
	}
	return ctx.JSON(http.StatusOK, stats)
}

func (api *submissionApi) sendHeadteacherReport(ctx echo.Context) error {
	if err := api.svc.SendHeadteacherReport(ctx.Request().Context()); err != nil {
		return errors.Wrap(err, "sending headteacher report")
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: msgReportSent})
}
