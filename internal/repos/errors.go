package repos

import (
	"database/sql"
	"errors"
)

var ErrNotFound = errors.New("not found")

// NotFound normalizes the driver's no-rows error.
func NotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows) || errors.Is(err, ErrNotFound)
}
