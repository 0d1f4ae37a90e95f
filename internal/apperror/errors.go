// Package apperror defines the client-facing error taxonomy and the
// central Echo error handler that maps each error to a fixed HTTP
// status and JSON body.
package apperror

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Error is an expected, client-facing failure carrying its HTTP status.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

var (
	ErrEmailAlreadyInUse   = &Error{http.StatusConflict, "Email already in use"}
	ErrInvalidCredentials  = &Error{http.StatusUnauthorized, "Invalid credentials"}
	ErrInvalidRefreshToken = &Error{http.StatusUnauthorized, "Invalid refresh token"}
	ErrUserNotFound        = &Error{http.StatusUnauthorized, "User not found"}
	ErrUnauthenticated     = &Error{http.StatusUnauthorized, "Authentication required"}
	ErrEntryNotFound       = &Error{http.StatusNotFound, "Entry not found"}
	ErrExposureNotFound    = &Error{http.StatusNotFound, "Exposure type not found"}
	ErrExposureExists      = &Error{http.StatusConflict, "Exposure type already exists"}
)

// HTTPErrorHandler renders every error escaping a handler. Expected
// errors keep their status and message and log at warn level; anything
// else logs with full detail and surfaces as a generic 500 so internal
// detail never leaks to the client.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := "An unexpected error occurred"

	var appErr *Error
	var echoErr *echo.HTTPError
	switch {
	case errors.As(err, &appErr):
		status = appErr.Status
		message = appErr.Message
		log.Printf("warn: %s %s -> %d %s", c.Request().Method, c.Path(), status, message)
	case errors.As(err, &echoErr):
		status = echoErr.Code
		if m, ok := echoErr.Message.(string); ok {
			message = m
		}
	default:
		log.Printf("error: %s %s failed: %v", c.Request().Method, c.Path(), err)
	}

	body := echo.Map{
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"status":    status,
		"error":     http.StatusText(status),
		"message":   message,
	}
	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)
		return
	}
	_ = c.JSON(status, body)
}
