package echoapi

import (
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/trezcool/lessonnotes/core"
	"github.com/trezcool/lessonnotes/core/role"
)

const (
	contextTokenKey    = "sessionToken"
	contextIdentityKey = "identity"
	contextRoleKey     = "role"
)

// Claims represents the session identity transmitted via a JWT.
type Claims struct {
	jwt.StandardClaims
	Role string `json:"role"`
	Name string `json:"name,omitempty"`
}

func newJWTConfig(conf *core.Config) middleware.JWTConfig {
	return middleware.JWTConfig{
		// no Authorization header: the identity comes from the query string
		Skipper: func(ctx echo.Context) bool {
			return ctx.Request().Header.Get(echo.HeaderAuthorization) == ""
		},
		SigningKey:    []byte(conf.SecretKey),
		SigningMethod: middleware.AlgorithmHS256,
		ContextKey:    contextTokenKey,
		Claims:        new(Claims),
	}
}

func newClaims(id role.Identity, conf *core.Config) *Claims {
	now := time.Now()
	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    conf.AppName,
			Subject:   id.Role,
			ExpiresAt: now.Add(conf.Server.SessionExpirationDelta).Unix(),
			IssuedAt:  now.Unix(),
		},
		Role: id.Role,
		Name: id.Name,
	}
}

// GenerateToken generates a signed JWT token string carrying id.
func GenerateToken(id role.Identity, conf *core.Config) (string, error) {
	token := jwt.NewWithClaims(jwt.GetSigningMethod(middleware.AlgorithmHS256), newClaims(id, conf))
	ss, err := token.SignedString([]byte(conf.SecretKey))
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return ss, nil
}

func getContextClaims(ctx echo.Context) (Claims, bool) {
	if token, ok := ctx.Get(contextTokenKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, true
		}
	}
	return Claims{}, false
}

func getContextIdentity(ctx echo.Context) role.Identity {
	id, _ := ctx.Get(contextIdentityKey).(role.Identity)
	return id
}

func getContextRole(ctx echo.Context) role.Role {
	if r, ok := ctx.Get(contextRoleKey).(role.Role); ok {
		return r
	}
	return role.Teacher{}
}
