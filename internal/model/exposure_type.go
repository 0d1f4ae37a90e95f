package model

import "github.com/google/uuid"

// ExposureType is a taggable exposure kind (pollen, dust, ...). Value
// is unique across the table; Description is optional.
type ExposureType struct {
	ID          uuid.UUID // exposure_types.id
	Value       string    // exposure_types.value
	Description *string   // exposure_types.description (nullable)
}
