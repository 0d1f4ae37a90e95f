package apperror

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, err error) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	HTTPErrorHandler(err, c)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestHTTPErrorHandlerExpectedError(t *testing.T) {
	rec, body := render(t, ErrInvalidCredentials)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, float64(http.StatusUnauthorized), body["status"])
	assert.Equal(t, "Unauthorized", body["error"])
	assert.Equal(t, "Invalid credentials", body["message"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestHTTPErrorHandlerUnexpectedError(t *testing.T) {
	rec, body := render(t, errors.New("connection refused: db host down"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "An unexpected error occurred", body["message"])
	assert.NotContains(t, rec.Body.String(), "db host down",
		"internal detail must not leak to the client")
}

func TestHTTPErrorHandlerEchoError(t *testing.T) {
	rec, body := render(t, echo.NewHTTPError(http.StatusBadRequest, "invalid body"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid body", body["message"])
}
