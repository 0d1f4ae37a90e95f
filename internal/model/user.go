package model

import (
	"time"

	"github.com/google/uuid"
)

// User mirrors the `users` table. Email is stored normalized (trimmed,
// lower-cased) and carries a unique index; PasswordHash is the peppered
// bcrypt digest. Rows are created on register and read on
// login/refresh, never mutated by the auth core.
type User struct {
	ID           uuid.UUID // users.id
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}
