package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	// ErrSlotTaken means an active booking already starts at that time.
	ErrSlotTaken = errors.New("slot already booked")
	// ErrDuplicateID means the booking id is already stored.
	ErrDuplicateID = errors.New("booking id already exists")
	// ErrSlotLocked means another writer holds the slot lock.
	ErrSlotLocked = errors.New("slot locked by another request")
)

const pgUniqueViolation = "23505"

// uniqueViolation reports whether err is a unique-constraint failure and
// returns the violated constraint or column hint when the driver exposes one.
func uniqueViolation(err error) (bool, string) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation, pgErr.ConstraintName
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true, ""
	}

	// sqlite: "UNIQUE constraint failed: bookings.start_date"
	msg := err.Error()
	if i := strings.Index(msg, "UNIQUE constraint failed: "); i >= 0 {
		hint := msg[i+len("UNIQUE constraint failed: "):]
		if j := strings.IndexAny(hint, " ,("); j >= 0 {
			hint = hint[:j]
		}
		return true, hint
	}
	return false, ""
}
