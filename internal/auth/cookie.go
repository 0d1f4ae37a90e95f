package auth

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// SessionCookieName is the single cookie carrying the raw refresh token.
const SessionCookieName = "refreshToken"

const cookiePath = "/"

// SessionCookies owns the lifecycle of the refresh-token cookie: one
// named, HTTP-only cookie scoped to the root path whose Max-Age equals
// the refresh token validity.
type SessionCookies struct {
	maxAge int
	secure bool
}

// NewSessionCookies builds a manager whose cookies live as long as the
// refresh token. The Secure flag is deployment-configurable and is off
// in the default dev configuration.
func NewSessionCookies(refreshTTL time.Duration, secure bool) *SessionCookies {
	return &SessionCookies{maxAge: int(refreshTTL.Seconds()), secure: secure}
}

// Set attaches the refresh-token cookie to the response.
func (s *SessionCookies) Set(c echo.Context, refreshToken string) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    refreshToken,
		Path:     cookiePath,
		MaxAge:   s.maxAge,
		HttpOnly: true,
		Secure:   s.secure,
	})
}

// Clear attaches an empty, already-expired cookie so the client drops
// its session immediately.
func (s *SessionCookies) Clear(c echo.Context) {
	// net/http serializes a negative MaxAge as Max-Age=0.
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     cookiePath,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
	})
}

// Read scans the request cookies for the session cookie and returns its
// value. The first matching cookie wins; absent or malformed cookie
// headers simply report false.
func (s *SessionCookies) Read(c echo.Context) (string, bool) {
	for _, ck := range c.Request().Cookies() {
		if ck.Name == SessionCookieName {
			return ck.Value, true
		}
	}
	return "", false
}
