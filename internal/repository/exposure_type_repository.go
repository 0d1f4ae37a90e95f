package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/iliyamo/allergy-tracker/internal/model"
)

// ExposureTypeRepo persists the catalog of exposure kinds. Value has a
// unique index so two types can never share a name.
type ExposureTypeRepo struct{ DB *sql.DB }

func NewExposureTypeRepo(db *sql.DB) *ExposureTypeRepo { return &ExposureTypeRepo{DB: db} }

// List returns every exposure type, ordered by value.
func (r *ExposureTypeRepo) List(ctx context.Context) ([]model.ExposureType, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,value,description FROM exposure_types ORDER BY value")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.ExposureType{}
	for rows.Next() {
		et, err := scanExposureType(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, et)
	}
	return out, rows.Err()
}

// GetByID fetches one exposure type by id.
func (r *ExposureTypeRepo) GetByID(ctx context.Context, id uuid.UUID) (model.ExposureType, error) {
	return r.get(ctx,
		"SELECT id,value,description FROM exposure_types WHERE id=? LIMIT 1", id.String())
}

// GetByValue fetches one exposure type by its unique value.
func (r *ExposureTypeRepo) GetByValue(ctx context.Context, value string) (model.ExposureType, error) {
	return r.get(ctx,
		"SELECT id,value,description FROM exposure_types WHERE value=? LIMIT 1", value)
}

// Create inserts an exposure type; a duplicate value maps to ErrValueExists.
func (r *ExposureTypeRepo) Create(ctx context.Context, et *model.ExposureType) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO exposure_types (id, value, description) VALUES (?,?,?)",
		et.ID.String(), et.Value, et.Description)
	if err != nil && strings.Contains(err.Error(), duplicateKeyCode) {
		return ErrValueExists
	}
	return err
}

func (r *ExposureTypeRepo) get(ctx context.Context, query string, arg any) (model.ExposureType, error) {
	et, err := scanExposureType(r.DB.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return model.ExposureType{}, ErrNotFound
	}
	return et, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExposureType(s rowScanner) (model.ExposureType, error) {
	var (
		et   model.ExposureType
		id   string
		desc sql.NullString
	)
	if err := s.Scan(&id, &et.Value, &desc); err != nil {
		return model.ExposureType{}, err
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return model.ExposureType{}, err
	}
	et.ID = parsed
	if desc.Valid {
		et.Description = &desc.String
	}
	return et, nil
}
