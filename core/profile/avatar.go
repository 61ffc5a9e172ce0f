package profile

import (
	"bytes"
	"encoding/base64"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"

	"github.com/trezcool/lessonnotes/core"
)

var (
	avatarFormats = map[string]imaging.Format{
		"image/png":  imaging.PNG,
		"image/jpeg": imaging.JPEG,
	}

	errAvatarRequired    = "this field is required"
	errAvatarUnsupported = "unsupported image file type; use a PNG or JPEG image"
	errAvatarInvalid     = "the image could not be read"
	errAvatarTooLarge    = "the image is too large"
	errDataURIInvalid    = "invalid data URI"
)

func avatarError(msg string) error {
	return core.NewValidationError(nil, core.FieldError{Field: "avatar", Error: msg})
}

// EncodeAvatar checks that data is a PNG or JPEG image, shrinks it to fit in a
// maxSide x maxSide box when bigger, and returns it as a base64 data URI.
func EncodeAvatar(data []byte, maxSide int) (string, error) {
	if len(data) == 0 {
		return "", avatarError(errAvatarRequired)
	}

	mime := mimetype.Detect(data)
	var contentType string
	var format imaging.Format
	for ct, f := range avatarFormats {
		if mime.Is(ct) {
			contentType, format = ct, f
			break
		}
	}
	if contentType == "" {
		return "", avatarError(errAvatarUnsupported)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return "", avatarError(errAvatarInvalid)
	}

	if b := img.Bounds(); maxSide > 0 && (b.Dx() > maxSide || b.Dy() > maxSide) {
		var buf bytes.Buffer
		resized := imaging.Fit(img, maxSide, maxSide, imaging.Lanczos)
		if err := imaging.Encode(&buf, resized, format, imaging.JPEGQuality(85)); err != nil {
			return "", err
		}
		data = buf.Bytes()
	}

	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// DecodeDataURI returns the payload of a base64 data URI.
func DecodeDataURI(uri string) ([]byte, error) {
	uri = strings.TrimSpace(uri)
	if !strings.HasPrefix(uri, "data:") {
		return nil, avatarError(errDataURIInvalid)
	}
	idx := strings.Index(uri, ",")
	if idx < 0 || !strings.HasSuffix(uri[:idx], ";base64") {
		return nil, avatarError(errDataURIInvalid)
	}
	data, err := base64.StdEncoding.DecodeString(uri[idx+1:])
	if err != nil {
		return nil, avatarError(errDataURIInvalid)
	}
	return data, nil
}
