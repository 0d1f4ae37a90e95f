// Package repository implements MySQL-backed stores for users, entries
// and exposure types. Sentinel errors let handlers distinguish failure
// modes without inspecting driver errors.
package repository

import "errors"

// ErrEmailExists is returned when an insert hits the unique index on
// users.email. The index, not the pre-check in the handler, is the
// authoritative guard against concurrent duplicate registrations.
var ErrEmailExists = errors.New("email already exists")

// ErrNotFound is returned by lookups that match no row owned by the
// caller. Handlers translate it into the resource-specific 404.
var ErrNotFound = errors.New("not found")

// ErrValueExists is returned when an exposure type insert collides with
// the unique index on exposure_types.value.
var ErrValueExists = errors.New("value already exists")
