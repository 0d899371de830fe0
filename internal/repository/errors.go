// Package repository defines the storage contracts of the gallery and two
// implementations: a process-lifetime memory store and a SQL store that runs
// on MySQL or SQLite. Both honour the same invariants (unique emails,
// idempotent appends, owner-scoped lookups), so the services above never
// depend on which one is wired.
package repository

import "errors"

// ErrEmailExists is returned by InsertUser when the email is taken.
// Handlers translate it into a duplicate-email response.
var ErrEmailExists = errors.New("email already exists")

// ErrNotFound is returned when a looked-up record does not exist, or exists
// but belongs to somebody else.
var ErrNotFound = errors.New("not found")
