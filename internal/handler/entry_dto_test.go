package handler

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/allergy-tracker/internal/model"
)

func TestEntryToDTO(t *testing.T) {
	note := "windy day"
	e := model.Entry{
		ID:               uuid.New(),
		UserID:           uuid.New(),
		OccurredOn:       time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		UpperRespiratory: 2,
		LowerRespiratory: 1,
		Skin:             0,
		Eyes:             3,
		Note:             &note,
		Exposures:        []string{"pollen"},
	}

	dto := entryToDTO(e)
	assert.Equal(t, e.ID, dto.ID)
	assert.Equal(t, 6, dto.Total)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), dto.OccurredOn)
	assert.Equal(t, []string{"pollen"}, dto.Exposures)
	assert.Equal(t, &note, dto.Note)
}

func TestEntryToDTONilExposures(t *testing.T) {
	dto := entryToDTO(model.Entry{ID: uuid.New()})
	assert.NotNil(t, dto.Exposures)
	assert.Empty(t, dto.Exposures)
	assert.Nil(t, dto.Note)
	assert.Zero(t, dto.Total)
}

func TestEntryFromDTO(t *testing.T) {
	userID := uuid.New()

	t.Run("generates id for new entries", func(t *testing.T) {
		e := entryFromDTO(EntryDTO{OccurredOn: time.Date(2026, 3, 1, 15, 30, 0, 0, time.UTC)}, userID)
		assert.NotEqual(t, uuid.Nil, e.ID)
		assert.Equal(t, userID, e.UserID)
		assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), e.OccurredOn,
			"instant is truncated to its day")
	})

	t.Run("keeps the id on updates", func(t *testing.T) {
		id := uuid.New()
		e := entryFromDTO(EntryDTO{ID: id}, userID)
		assert.Equal(t, id, e.ID)
	})
}
