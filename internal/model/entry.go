package model

import (
	"time"

	"github.com/google/uuid"
)

// Entry is one dated journal record of symptom severities. The four
// severity values are small non-negative integers; Note is optional
// free text. Exposures holds the values of the linked exposure types
// (via the entry_exposure_types join table), loaded alongside the row.
type Entry struct {
	ID               uuid.UUID // entries.id
	UserID           uuid.UUID // entries.user_id
	OccurredOn       time.Time // entries.occurred_on (DATE)
	UpperRespiratory int       // entries.upper_respiratory_value
	LowerRespiratory int       // entries.lower_respiratory_value
	Skin             int       // entries.skin_value
	Eyes             int       // entries.eyes_value
	Note             *string   // entries.note_value (nullable)
	CreatedAt        time.Time // entries.created_at
	UpdatedAt        time.Time // entries.updated_at
	Exposures        []string  // exposure_types.value, joined
}
