package profile

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/trezcool/lessonnotes/core"
)

// Store keeps each profile value under its own key.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

type Service struct {
	store       Store
	broadcaster *Broadcaster
	avatar      core.AvatarConfig
}

func NewService(store Store, conf *core.Config) *Service {
	return &Service{
		store:       store,
		broadcaster: NewBroadcaster(),
		avatar:      conf.Avatar,
	}
}

// Subscribe registers fn to be called after every profile change.
func (svc *Service) Subscribe(fn func()) (unsubscribe func()) {
	return svc.broadcaster.Subscribe(fn)
}

func (svc *Service) get(ctx context.Context, key string) (string, error) {
	val, _, err := svc.store.Get(ctx, key)
	return val, errors.Wrapf(err, "reading %s", key)
}

// Get returns the stored profile; unset fields are empty.
func (svc *Service) Get(ctx context.Context) (Profile, error) {
	var p Profile
	var err error
	if p.Name, err = svc.get(ctx, KeyName); err != nil {
		return Profile{}, err
	}
	if p.Email, err = svc.get(ctx, KeyEmail); err != nil {
		return Profile{}, err
	}
	if p.Avatar, err = svc.get(ctx, KeyAvatar); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// Update writes the provided name and/or email.
// Subscribers are notified once whenever anything was written, even if a later write fails.
func (svc *Service) Update(ctx context.Context, up UpdateProfile) (Profile, error) {
	var written bool
	defer func() {
		if written {
			svc.broadcaster.Notify()
		}
	}()

	if up.Name != "" {
		if err := svc.store.Set(ctx, KeyName, up.Name); err != nil {
			return Profile{}, errors.Wrap(err, "saving name")
		}
		written = true
	}
	if up.Email != "" {
		if err := svc.store.Set(ctx, KeyEmail, up.Email); err != nil {
			return Profile{}, errors.Wrap(err, "saving email")
		}
		written = true
	}
	return svc.Get(ctx)
}

// SetAvatar stores an uploaded PNG or JPEG image as the profile picture.
func (svc *Service) SetAvatar(ctx context.Context, data []byte) (Profile, error) {
	if svc.avatar.MaxBytes > 0 && int64(len(data)) > svc.avatar.MaxBytes {
		return Profile{}, avatarError(errAvatarTooLarge)
	}
	uri, err := EncodeAvatar(data, svc.avatar.MaxSide)
	if err != nil {
		return Profile{}, err
	}
	if err := svc.store.Set(ctx, KeyAvatar, uri); err != nil {
		return Profile{}, errors.Wrap(err, "saving avatar")
	}
	svc.broadcaster.Notify()
	return svc.Get(ctx)
}

// SetAvatarDataURI is SetAvatar for an image already encoded as a data URI.
func (svc *Service) SetAvatarDataURI(ctx context.Context, uri string) (Profile, error) {
	data, err := DecodeDataURI(uri)
	if err != nil {
		return Profile{}, err
	}
	return svc.SetAvatar(ctx, data)
}

// ChangePassword checks the current password (when one is set) and the password policy
// before storing the new password hash.
func (svc *Service) ChangePassword(ctx context.Context, cp ChangePassword) error {
	hash, ok, err := svc.store.Get(ctx, KeyPassword)
	if err != nil {
		return errors.Wrap(err, "reading password")
	}
	if ok && hash != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(cp.CurrentPassword)); err != nil {
			return core.NewValidationError(nil, core.FieldError{Field: "currentPassword", Error: errCurrentPassword})
		}
	}

	p, err := svc.Get(ctx)
	if err != nil {
		return err
	}
	if msg := checkPassword(cp.NewPassword, p.Name, p.Email); msg != "" {
		return core.NewValidationError(nil, core.FieldError{Field: "newPassword", Error: msg})
	}
	return svc.SetPassword(ctx, cp.NewPassword)
}

// SetPassword stores the hash of pwd without any check.
func (svc *Service) SetPassword(ctx context.Context, pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return errors.Wrap(err, "hashing password")
	}
	return errors.Wrap(svc.store.Set(ctx, KeyPassword, string(hash)), "saving password")
}

func (svc *Service) Preferences(ctx context.Context) (NotificationPreferences, error) {
	prefs := DefaultNotificationPreferences()
	raw, ok, err := svc.store.Get(ctx, KeyNotifications)
	if err != nil {
		return prefs, errors.Wrap(err, "reading notification preferences")
	}
	if !ok || raw == "" {
		return prefs, nil
	}
	if err := json.Unmarshal([]byte(raw), &prefs); err != nil {
		return DefaultNotificationPreferences(), nil
	}
	return prefs, nil
}

func (svc *Service) SetPreferences(ctx context.Context, prefs NotificationPreferences) (NotificationPreferences, error) {
	data, err := json.Marshal(prefs)
	if err != nil {
		return NotificationPreferences{}, err
	}
	if err := svc.store.Set(ctx, KeyNotifications, string(data)); err != nil {
		return NotificationPreferences{}, errors.Wrap(err, "saving notification preferences")
	}
	return prefs, nil
}

// MaxAvatarBytes is the size limit of an uploaded avatar; 0 means none.
func (svc *Service) MaxAvatarBytes() int64 {
	return svc.avatar.MaxBytes
}
