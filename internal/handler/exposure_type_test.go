package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/allergy-tracker/internal/handler"
)

func TestExposureTypeCatalog(t *testing.T) {
	app := newTestApp(t)
	registered, _ := app.register(t, "a@b.com", "pw123456")
	bearer := withBearer(registered.AccessToken)

	rec := app.do(http.MethodPost, "/api/exposure-types",
		`{"name":"pollen","description":"tree and grass pollen"}`, bearer)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var created handler.ExposureTypeDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "pollen", created.Name)
	require.NotNil(t, created.Description)

	t.Run("duplicate value conflicts", func(t *testing.T) {
		rec := app.do(http.MethodPost, "/api/exposure-types", `{"name":"pollen"}`, bearer)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("list returns the catalog", func(t *testing.T) {
		rec := app.do(http.MethodGet, "/api/exposure-types", "", bearer)
		require.Equal(t, http.StatusOK, rec.Code)
		var list []handler.ExposureTypeDTO
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
		assert.Len(t, list, 1)
	})

	t.Run("get by id", func(t *testing.T) {
		rec := app.do(http.MethodGet, "/api/exposure-types/"+created.ID.String(), "", bearer)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("unknown id is 404", func(t *testing.T) {
		rec := app.do(http.MethodGet, "/api/exposure-types/"+uuid.NewString(), "", bearer)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("anonymous is rejected", func(t *testing.T) {
		rec := app.do(http.MethodGet, "/api/exposure-types", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
