package handler

import (
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/allergy-tracker/internal/model"
)

// EntryDTO is the wire shape of a journal entry. OccurredOn is an
// instant pinned to the start of the entry's day in UTC; Total is
// derived from the four severities and never stored.
type EntryDTO struct {
	ID               uuid.UUID `json:"id"`
	OccurredOn       time.Time `json:"occurredOn"`
	UpperRespiratory int       `json:"upperRespiratory"`
	LowerRespiratory int       `json:"lowerRespiratory"`
	Skin             int       `json:"skin"`
	Eyes             int       `json:"eyes"`
	Total            int       `json:"total"`
	Exposures        []string  `json:"exposures"`
	Note             *string   `json:"note"`
}

// ExposureTypeDTO is the wire shape of an exposure type.
type ExposureTypeDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
}

func entryToDTO(e model.Entry) EntryDTO {
	exposures := e.Exposures
	if exposures == nil {
		exposures = []string{}
	}
	return EntryDTO{
		ID:               e.ID,
		OccurredOn:       time.Date(e.OccurredOn.Year(), e.OccurredOn.Month(), e.OccurredOn.Day(), 0, 0, 0, 0, time.UTC),
		UpperRespiratory: e.UpperRespiratory,
		LowerRespiratory: e.LowerRespiratory,
		Skin:             e.Skin,
		Eyes:             e.Eyes,
		Total:            e.UpperRespiratory + e.LowerRespiratory + e.Skin + e.Eyes,
		Exposures:        exposures,
		Note:             e.Note,
	}
}

// entryFromDTO maps the wire shape onto a model row for the given user.
// A zero dto.ID means the caller is creating a new entry.
func entryFromDTO(dto EntryDTO, userID uuid.UUID) model.Entry {
	id := dto.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	return model.Entry{
		ID:               id,
		UserID:           userID,
		OccurredOn:       dto.OccurredOn.UTC().Truncate(24 * time.Hour),
		UpperRespiratory: dto.UpperRespiratory,
		LowerRespiratory: dto.LowerRespiratory,
		Skin:             dto.Skin,
		Eyes:             dto.Eyes,
		Note:             dto.Note,
	}
}

func exposureTypeToDTO(et model.ExposureType) ExposureTypeDTO {
	return ExposureTypeDTO{ID: et.ID, Name: et.Value, Description: et.Description}
}
