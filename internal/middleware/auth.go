// Package middleware provides the request-authentication gate, the
// authorization guard protected routes rely on, and the Redis response
// cache.
package middleware

import (
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/allergy-tracker/internal/apperror"
	"github.com/iliyamo/allergy-tracker/internal/auth"
)

const principalKey = "principal"

const bearerPrefix = "Bearer "

// Authenticate extracts a bearer token from the Authorization header
// and, when the codec accepts it, attaches the resolved user id to the
// request context. It never fails the request: a missing, malformed or
// invalid token just leaves the request anonymous, and each endpoint's
// own guard decides whether that matters.
func Authenticate(codec *auth.Codec) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(header, bearerPrefix) {
				return next(c)
			}
			token := header[len(bearerPrefix):]
			if !codec.Validate(token) {
				return next(c)
			}
			userID, err := codec.Subject(token)
			if err != nil {
				return next(c)
			}
			c.Set(principalKey, userID)
			return next(c)
		}
	}
}

// RequireAuth rejects requests that reached a protected endpoint
// without an authenticated principal.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := Principal(c); !ok {
				return apperror.ErrUnauthenticated
			}
			return next(c)
		}
	}
}

// Principal returns the authenticated user id attached by Authenticate,
// if any.
func Principal(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get(principalKey).(uuid.UUID)
	return id, ok
}
