package repository

import (
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
)

// ErrNotFound is returned when the requested row does not exist or is not visible.
var ErrNotFound = errors.New("not found")

func mapNoRows(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// timeNow stamps updated_at on partial updates.
var timeNow = func() time.Time { return time.Now().UTC() }
