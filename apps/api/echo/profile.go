package echoapi

import (
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/lessonnotes/core"
	"github.com/trezcool/lessonnotes/core/profile"
)

const (
	avatarField         = "avatar"
	msgPasswordChanged  = "Password has been changed."
	errAvatarFileMissed = "this field is required"
)

type (
	profileApi struct {
		svc      *profile.Service
		header   *headerCache
		validate *validator.Validate
	}

	AvatarRequest struct {
		Avatar string `json:"avatar"`
	}
)

func registerProfileAPI(g *echo.Group, svc *profile.Service, header *headerCache, validate *validator.Validate) {
	api := profileApi{svc: svc, header: header, validate: validate}

	g.GET("/header", api.retrieveHeader)

	pg := g.Group("/profile")
	pg.GET("", api.retrieve)
	pg.PUT("", api.update)
	pg.PUT("/avatar", api.updateAvatar)
	pg.PUT("/password", api.changePassword)
	pg.GET("/notifications", api.retrieveNotifications)
	pg.PUT("/notifications", api.updateNotifications)
}

// Handlers

func (api *profileApi) retrieveHeader(ctx echo.Context) error {
	p, err := api.header.profile(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "reading profile")
	}
	return ctx.JSON(http.StatusOK, getContextRole(ctx).Header(p))
}

func (api *profileApi) retrieve(ctx echo.Context) error {
	p, err := api.svc.Get(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "reading profile")
	}
	return ctx.JSON(http.StatusOK, p)
}

func (api *profileApi) update(ctx echo.Context) error {
	var data profile.UpdateProfile
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateProfile")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	p, err := api.svc.Update(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "updating profile")
	}
	return ctx.JSON(http.StatusOK, p)
}

// updateAvatar accepts either a multipart `avatar` file or a JSON `{"avatar": "<data URI>"}` body.
func (api *profileApi) updateAvatar(ctx echo.Context) error {
	rctx := ctx.Request().Context()

	if strings.HasPrefix(ctx.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		fh, err := ctx.FormFile(avatarField)
		if err != nil {
			if err == http.ErrMissingFile {
				return core.NewValidationError(nil, core.FieldError{Field: avatarField, Error: errAvatarFileMissed})
			}
			return errors.Wrap(err, "reading avatar file")
		}
		f, err := fh.Open()
		if err != nil {
			return errors.Wrap(err, "opening avatar file")
		}
		defer f.Close()

		data, err := io.ReadAll(io.LimitReader(f, api.maxAvatarBytes()))
		if err != nil {
			return errors.Wrap(err, "reading avatar file")
		}
		p, err := api.svc.SetAvatar(rctx, data)
		if err != nil {
			return errors.Wrap(err, "setting avatar")
		}
		return ctx.JSON(http.StatusOK, p)
	}

	var data AvatarRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to AvatarRequest")
	}
	p, err := api.svc.SetAvatarDataURI(rctx, data.Avatar)
	if err != nil {
		return errors.Wrap(err, "setting avatar")
	}
	return ctx.JSON(http.StatusOK, p)
}

// maxAvatarBytes reads one byte past the limit, enough for SetAvatar to reject the file.
func (api *profileApi) maxAvatarBytes() int64 {
	if max := api.svc.MaxAvatarBytes(); max > 0 {
		return max + 1
	}
	return 32 << 20
}

func (api *profileApi) changePassword(ctx echo.Context) error {
	var data profile.ChangePassword
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ChangePassword")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	if err := api.svc.ChangePassword(ctx.Request().Context(), data); err != nil {
		return errors.Wrap(err, "changing password")
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: msgPasswordChanged})
}

func (api *profileApi) retrieveNotifications(ctx echo.Context) error {
	prefs, err := api.svc.Preferences(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "reading notification preferences")
	}
	return ctx.JSON(http.StatusOK, prefs)
}

func (api *profileApi) updateNotifications(ctx echo.Context) error {
	rctx := ctx.Request().Context()

	// fields left out keep their current value
	prefs, err := api.svc.Preferences(rctx)
	if err != nil {
		return errors.Wrap(err, "reading notification preferences")
	}
	if err := ctx.Bind(&prefs); err != nil {
		return errors.Wrap(err, "binding to NotificationPreferences")
	}

	prefs, err = api.svc.SetPreferences(rctx, prefs)
	if err != nil {
		return errors.Wrap(err, "saving notification preferences")
	}
	return ctx.JSON(http.StatusOK, prefs)
}
