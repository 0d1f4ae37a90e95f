package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/allergy-tracker/internal/apperror"
	"github.com/iliyamo/allergy-tracker/internal/model"
	"github.com/iliyamo/allergy-tracker/internal/repository"
)

// ExposureTypeHandler serves the exposure-type catalog. The catalog is
// shared across users, so these handlers never consult the principal
// beyond the route guard.
type ExposureTypeHandler struct {
	exposures ExposureTypeStore
}

func NewExposureTypeHandler(exposures ExposureTypeStore) *ExposureTypeHandler {
	return &ExposureTypeHandler{exposures: exposures}
}

// List returns all exposure types.
func (h *ExposureTypeHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	types, err := h.exposures.List(ctx)
	if err != nil {
		return err
	}
	dtos := make([]ExposureTypeDTO, 0, len(types))
	for _, et := range types {
		dtos = append(dtos, exposureTypeToDTO(et))
	}
	return c.JSON(http.StatusOK, dtos)
}

// Get returns one exposure type by id.
func (h *ExposureTypeHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperror.ErrExposureNotFound
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	et, err := h.exposures.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.ErrExposureNotFound
		}
		return err
	}
	return c.JSON(http.StatusOK, exposureTypeToDTO(et))
}

// Create adds a new exposure type to the catalog.
func (h *ExposureTypeHandler) Create(c echo.Context) error {
	var dto ExposureTypeDTO
	if err := c.Bind(&dto); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	name := strings.TrimSpace(dto.Name)
	if name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}

	et := model.ExposureType{ID: uuid.New(), Value: name, Description: dto.Description}
	if dto.ID != uuid.Nil {
		et.ID = dto.ID
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.exposures.Create(ctx, &et); err != nil {
		if errors.Is(err, repository.ErrValueExists) {
			return apperror.ErrExposureExists
		}
		return err
	}
	return c.JSON(http.StatusOK, exposureTypeToDTO(et))
}
