package profile

import (
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/lessonnotes/core"
)

// Storage keys, one per independently persisted value.
const (
	KeyName          = "teacherName"
	KeyEmail         = "teacherEmail"
	KeyAvatar        = "teacherAvatar"
	KeyPassword      = "teacherPassword"
	KeyNotifications = "notificationPreferences"
)

type (
	Profile struct {
		Name   string `json:"name"`
		Email  string `json:"email"`
		Avatar string `json:"avatar"` // data URI
	}

	// UpdateProfile writes the non-empty fields only.
	UpdateProfile struct {
		Name  string `json:"name" validate:"omitempty,max=100"`
		Email string `json:"email" validate:"omitempty,email"`
	}

	ChangePassword struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword" validate:"required"`
		ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=NewPassword"`
	}

	NotificationPreferences struct {
		Email bool `json:"email"`
		InApp bool `json:"inApp"`
	}
)

func DefaultNotificationPreferences() NotificationPreferences {
	return NotificationPreferences{Email: true, InApp: true}
}

func (up *UpdateProfile) Validate(validate *validator.Validate) error {
	up.Name = core.CleanString(up.Name)
	up.Email = core.CleanString(up.Email, true /* lower */)
	if up.Name == "" && up.Email == "" {
		return core.NewValidationError(nil,
			core.FieldError{Field: "name", Error: errNameOrEmail},
			core.FieldError{Field: "email", Error: errNameOrEmail},
		)
	}
	return validate.Struct(up)
}

func (cp *ChangePassword) Validate(validate *validator.Validate) error {
	return validate.Struct(cp)
}
