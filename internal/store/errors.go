package store

import (
	"database/sql"

	"github.com/pkg/errors"
)

var (
	// ErrNotFound is returned when a referenced id does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned on duplicate saves, e.g. a (word, book)
	// vocabulary pair that already exists.
	ErrConflict = errors.New("already exists")
	// ErrValidation is returned when a required field is missing or out
	// of range at the write boundary.
	ErrValidation = errors.New("invalid input")
)

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
