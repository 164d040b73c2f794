package repository

import (
	"errors"
	"strings"

	"github.com/uptrace/bun/driver/pgdriver"
)

var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateEmail is returned when creating a user with an email that
	// is already registered.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrDuplicateInterest is returned when the (user, startup) interest
	// already exists. The unique index raises this under concurrent creates
	// even when the mediator's pre-check passed.
	ErrDuplicateInterest = errors.New("interest already exists")
)

// isUniqueViolation reports whether err is a unique-constraint violation
// from either supported driver.
func isUniqueViolation(err error) bool {
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) && pgErr.IntegrityViolation() {
		return true
	}
	// modernc.org/sqlite surfaces constraint failures as plain errors. Match
	// the UNIQUE prefix only; a foreign-key failure is not a duplicate.
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
