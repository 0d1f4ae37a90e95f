package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/iliyamo/allergy-tracker/internal/model"
)

// duplicateKeyCode is MySQL error 1062 (ER_DUP_ENTRY).
const duplicateKeyCode = "1062"

// UserRepo is the credential store: lookup by email/id, insert, with
// uniqueness on email enforced by the database.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts the user row. A duplicate email maps to ErrEmailExists
// even when the caller's pre-check raced with another registration.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (id, email, password_hash) VALUES (?,?,?)",
		u.ID.String(), u.Email, u.PasswordHash)
	if err != nil {
		if strings.Contains(err.Error(), duplicateKeyCode) {
			return ErrEmailExists
		}
		return err
	}
	return nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return r.get(ctx,
		"SELECT id,email,password_hash,created_at,updated_at FROM users WHERE email=? LIMIT 1",
		email)
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	return r.get(ctx,
		"SELECT id,email,password_hash,created_at,updated_at FROM users WHERE id=? LIMIT 1",
		id.String())
}

func (r *UserRepo) get(ctx context.Context, query string, arg any) (model.User, error) {
	var (
		u  model.User
		id string
	)
	err := r.DB.QueryRowContext(ctx, query, arg).
		Scan(&id, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, ErrNotFound
		}
		return model.User{}, err
	}
	u.ID, err = uuid.Parse(id)
	return u, err
}
