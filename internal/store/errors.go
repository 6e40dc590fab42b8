package store

import (
	"errors"
	"strings"
)

var (
	// ErrEmptyName rejects item or list writes with a blank name.
	ErrEmptyName = errors.New("name must not be empty")

	// ErrNotFound is returned when an item or list does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateName is returned when a list insert hits the unique name
	// index. Callers should re-fetch: someone else created the list first.
	ErrDuplicateName = errors.New("list name already exists")
)

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	// modernc.org/sqlite reports SQLITE_CONSTRAINT_UNIQUE in the error text.
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
