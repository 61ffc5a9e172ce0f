package echoapi

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/lessonnotes/core"
	"github.com/trezcool/lessonnotes/core/submission"
)

var (
	orderingParam = "ordering"
	allValue      = "all"

	errInvalidWeek   = "enter a valid week number"
	errUnknownStatus = "unknown status"
)

type Ordering struct {
	Orderings []core.Ordering
}

func (ord *Ordering) Bind(ctx echo.Context) {
	val := ctx.QueryParam(orderingParam)
	if val == "" {
		return
	}

	for _, field := range strings.Split(val, ",") {
		field = strings.TrimSpace(field)
		descending := strings.HasPrefix(field, "-")
		if descending {
			field = field[1:] // drop "-"
		}
		if !submission.IsOrderingField(field) {
			continue
		}
		ord.Orderings = append(ord.Orderings, core.Ordering{Field: field, Ascending: !descending})
	}
}

// SubmissionQuery reads the `class`, `week` and `status` filters; empty or "all" means no filter.
type SubmissionQuery struct {
	Filter submission.QueryFilter
}

func isAll(val string) bool {
	return val == "" || strings.EqualFold(val, allValue)
}

func (q *SubmissionQuery) Bind(ctx echo.Context) error {
	var fldErrs []core.FieldError

	if class := core.CleanString(ctx.QueryParam("class")); !isAll(class) {
		q.Filter.Class = class
	}

	if week := core.CleanString(ctx.QueryParam("week")); !isAll(week) {
		n, err := strconv.Atoi(week)
		if err != nil || n < 1 {
			fldErrs = append(fldErrs, core.FieldError{Field: "week", Error: errInvalidWeek})
		} else {
			q.Filter.Week = n
		}
	}

	if status := core.CleanString(ctx.QueryParam("status")); !isAll(status) {
		s, err := submission.ParseStatus(status)
		if err != nil {
			fldErrs = append(fldErrs, core.FieldError{Field: "status", Error: errUnknownStatus})
		} else {
			q.Filter.Status = s
		}
	}

	if fldErrs != nil {
		return core.NewValidationError(nil, fldErrs...)
	}
	return nil
}
