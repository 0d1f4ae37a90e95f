// Package handler contains the HTTP handlers: the auth orchestration
// endpoints and the entry / exposure-type CRUD that depends on them.
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/allergy-tracker/internal/apperror"
	"github.com/iliyamo/allergy-tracker/internal/middleware"
	"github.com/iliyamo/allergy-tracker/internal/model"
	"github.com/iliyamo/allergy-tracker/internal/queue"
	"github.com/iliyamo/allergy-tracker/internal/repository"
)

// EntryStore persists journal entries scoped to their owner.
type EntryStore interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Entry, error)
	GetByIDAndUser(ctx context.Context, id, userID uuid.UUID) (model.Entry, error)
	Create(ctx context.Context, e *model.Entry, exposureIDs []uuid.UUID) error
	Update(ctx context.Context, e *model.Entry, exposureIDs []uuid.UUID) error
	DeleteByIDAndUser(ctx context.Context, id, userID uuid.UUID) error
}

// ExposureTypeStore is the exposure-type catalog.
type ExposureTypeStore interface {
	List(ctx context.Context) ([]model.ExposureType, error)
	GetByID(ctx context.Context, id uuid.UUID) (model.ExposureType, error)
	GetByValue(ctx context.Context, value string) (model.ExposureType, error)
	Create(ctx context.Context, et *model.ExposureType) error
}

// EntryHandler serves the journal CRUD endpoints. Every operation reads
// the authenticated principal first; entries belonging to other users
// are indistinguishable from missing ones.
type EntryHandler struct {
	entries   EntryStore
	exposures ExposureTypeStore
}

func NewEntryHandler(entries EntryStore, exposures ExposureTypeStore) *EntryHandler {
	return &EntryHandler{entries: entries, exposures: exposures}
}

// List returns all of the caller's entries.
func (h *EntryHandler) List(c echo.Context) error {
	userID, ok := middleware.Principal(c)
	if !ok {
		return apperror.ErrUnauthenticated
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	entries, err := h.entries.ListByUser(ctx, userID)
	if err != nil {
		return err
	}
	dtos := make([]EntryDTO, 0, len(entries))
	for _, e := range entries {
		dtos = append(dtos, entryToDTO(e))
	}
	return c.JSON(http.StatusOK, dtos)
}

// Get returns one of the caller's entries by id.
func (h *EntryHandler) Get(c echo.Context) error {
	userID, ok := middleware.Principal(c)
	if !ok {
		return apperror.ErrUnauthenticated
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperror.ErrEntryNotFound
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	entry, err := h.entries.GetByIDAndUser(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.ErrEntryNotFound
		}
		return err
	}
	return c.JSON(http.StatusOK, entryToDTO(entry))
}

// Create stores a new entry and publishes an entry.recorded event.
func (h *EntryHandler) Create(c echo.Context) error {
	userID, ok := middleware.Principal(c)
	if !ok {
		return apperror.ErrUnauthenticated
	}
	var dto EntryDTO
	if err := c.Bind(&dto); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	dto.ID = uuid.Nil
	entry := entryFromDTO(dto, userID)

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	exposureIDs, exposureValues, err := h.resolveExposures(ctx, dto.Exposures)
	if err != nil {
		return err
	}
	if err := h.entries.Create(ctx, &entry, exposureIDs); err != nil {
		return err
	}
	entry.Exposures = exposureValues

	event := queue.EntryRecordedEvent{
		EntryID:    entry.ID.String(),
		UserID:     userID.String(),
		OccurredOn: entry.OccurredOn.Format("2006-01-02"),
		Total:      entry.UpperRespiratory + entry.LowerRespiratory + entry.Skin + entry.Eyes,
		Exposures:  exposureValues,
	}
	go func() { _ = queue.PublishEntryRecorded(context.Background(), event) }()

	return c.JSON(http.StatusCreated, entryToDTO(entry))
}

// Update rewrites one of the caller's entries.
func (h *EntryHandler) Update(c echo.Context) error {
	userID, ok := middleware.Principal(c)
	if !ok {
		return apperror.ErrUnauthenticated
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperror.ErrEntryNotFound
	}
	var dto EntryDTO
	if err := c.Bind(&dto); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	dto.ID = id
	entry := entryFromDTO(dto, userID)

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	exposureIDs, exposureValues, err := h.resolveExposures(ctx, dto.Exposures)
	if err != nil {
		return err
	}
	if err := h.entries.Update(ctx, &entry, exposureIDs); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.ErrEntryNotFound
		}
		return err
	}
	entry.Exposures = exposureValues
	return c.JSON(http.StatusOK, entryToDTO(entry))
}

// Delete removes one of the caller's entries.
func (h *EntryHandler) Delete(c echo.Context) error {
	userID, ok := middleware.Principal(c)
	if !ok {
		return apperror.ErrUnauthenticated
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperror.ErrEntryNotFound
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.entries.DeleteByIDAndUser(ctx, id, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.ErrEntryNotFound
		}
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// resolveExposures maps exposure names to catalog rows. Unknown names
// are skipped rather than rejected, matching the UI's free-form tag
// picker.
func (h *EntryHandler) resolveExposures(ctx context.Context, names []string) ([]uuid.UUID, []string, error) {
	ids := []uuid.UUID{}
	values := []string{}
	for _, name := range names {
		et, err := h.exposures.GetByValue(ctx, name)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				continue
			}
			return nil, nil, err
		}
		ids = append(ids, et.ID)
		values = append(values, et.Value)
	}
	return ids, values, nil
}
