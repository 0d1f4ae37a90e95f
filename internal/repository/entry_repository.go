package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/allergy-tracker/internal/model"
)

const dateLayout = "2006-01-02"

const entryColumns = "id,user_id,occurred_on,upper_respiratory_value," +
	"lower_respiratory_value,skin_value,eyes_value,note_value,created_at,updated_at"

// EntryRepo persists journal entries and their exposure links. Every
// read and delete is scoped to the owning user so one user can never
// touch another's entries.
type EntryRepo struct{ DB *sql.DB }

func NewEntryRepo(db *sql.DB) *EntryRepo { return &EntryRepo{DB: db} }

// ListByUser returns the user's entries, newest first, with exposure
// values attached.
func (r *EntryRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Entry, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+entryColumns+" FROM entries WHERE user_id=? ORDER BY occurred_on DESC, created_at DESC",
		userID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []model.Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	exposures, err := r.exposuresForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].Exposures = exposures[entries[i].ID]
		if entries[i].Exposures == nil {
			entries[i].Exposures = []string{}
		}
	}
	return entries, nil
}

// GetByIDAndUser fetches one entry owned by the user, or ErrNotFound.
func (r *EntryRepo) GetByIDAndUser(ctx context.Context, id, userID uuid.UUID) (model.Entry, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+entryColumns+" FROM entries WHERE id=? AND user_id=? LIMIT 1",
		id.String(), userID.String())
	e, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Entry{}, ErrNotFound
		}
		return model.Entry{}, err
	}
	e.Exposures, err = r.exposuresForEntry(ctx, id)
	return e, err
}

// Create inserts the entry and its exposure links in one transaction.
func (r *EntryRepo) Create(ctx context.Context, e *model.Entry, exposureIDs []uuid.UUID) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO entries (id, user_id, occurred_on, upper_respiratory_value,
		 lower_respiratory_value, skin_value, eyes_value, note_value)
		 VALUES (?,?,?,?,?,?,?,?)`,
		e.ID.String(), e.UserID.String(), e.OccurredOn.Format(dateLayout),
		e.UpperRespiratory, e.LowerRespiratory, e.Skin, e.Eyes, e.Note)
	if err != nil {
		return err
	}
	if err := insertExposureLinks(ctx, tx, e.ID, exposureIDs); err != nil {
		return err
	}
	return tx.Commit()
}

// Update rewrites the entry row and replaces its exposure links. The
// WHERE clause carries the user id, so updating a foreign or missing
// entry reports ErrNotFound.
func (r *EntryRepo) Update(ctx context.Context, e *model.Entry, exposureIDs []uuid.UUID) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`UPDATE entries SET occurred_on=?, upper_respiratory_value=?,
		 lower_respiratory_value=?, skin_value=?, eyes_value=?, note_value=?, updated_at=NOW()
		 WHERE id=? AND user_id=?`,
		e.OccurredOn.Format(dateLayout), e.UpperRespiratory, e.LowerRespiratory,
		e.Skin, e.Eyes, e.Note, e.ID.String(), e.UserID.String())
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		// RowsAffected is 0 both when the row is missing and when the
		// update is a no-op, so confirm the row exists before failing.
		var exists int
		err := tx.QueryRowContext(ctx,
			"SELECT 1 FROM entries WHERE id=? AND user_id=? LIMIT 1",
			e.ID.String(), e.UserID.String()).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM entry_exposure_types WHERE entry_id=?", e.ID.String()); err != nil {
		return err
	}
	if err := insertExposureLinks(ctx, tx, e.ID, exposureIDs); err != nil {
		return err
	}
	return tx.Commit()
}

// DeleteByIDAndUser removes the entry and its links, or ErrNotFound.
func (r *EntryRepo) DeleteByIDAndUser(ctx context.Context, id, userID uuid.UUID) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`DELETE l FROM entry_exposure_types l
		 JOIN entries e ON e.id = l.entry_id
		 WHERE e.id=? AND e.user_id=?`, id.String(), userID.String()); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx,
		"DELETE FROM entries WHERE id=? AND user_id=?", id.String(), userID.String())
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return ErrNotFound
	}
	return tx.Commit()
}

func insertExposureLinks(ctx context.Context, tx *sql.Tx, entryID uuid.UUID, exposureIDs []uuid.UUID) error {
	for _, expID := range exposureIDs {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO entry_exposure_types (entry_id, exposure_type_id) VALUES (?,?)",
			entryID.String(), expID.String()); err != nil {
			return err
		}
	}
	return nil
}

func (r *EntryRepo) exposuresForEntry(ctx context.Context, entryID uuid.UUID) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT et.value FROM entry_exposure_types l
		 JOIN exposure_types et ON et.id = l.exposure_type_id
		 WHERE l.entry_id=? ORDER BY et.value`, entryID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	values := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

func (r *EntryRepo) exposuresForUser(ctx context.Context, userID uuid.UUID) (map[uuid.UUID][]string, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT l.entry_id, et.value FROM entry_exposure_types l
		 JOIN exposure_types et ON et.id = l.exposure_type_id
		 JOIN entries e ON e.id = l.entry_id
		 WHERE e.user_id=? ORDER BY et.value`, userID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[uuid.UUID][]string{}
	for rows.Next() {
		var entryID, v string
		if err := rows.Scan(&entryID, &v); err != nil {
			return nil, err
		}
		id, err := uuid.Parse(entryID)
		if err != nil {
			return nil, err
		}
		out[id] = append(out[id], v)
	}
	return out, rows.Err()
}

func scanEntry(s rowScanner) (model.Entry, error) {
	var (
		e          model.Entry
		id, userID string
		occurredOn time.Time
		note       sql.NullString
	)
	err := s.Scan(&id, &userID, &occurredOn, &e.UpperRespiratory,
		&e.LowerRespiratory, &e.Skin, &e.Eyes, &note, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return model.Entry{}, err
	}
	if e.ID, err = uuid.Parse(id); err != nil {
		return model.Entry{}, err
	}
	if e.UserID, err = uuid.Parse(userID); err != nil {
		return model.Entry{}, err
	}
	e.OccurredOn = occurredOn
	if note.Valid {
		e.Note = &note.String
	}
	return e, nil
}
